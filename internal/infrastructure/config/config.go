package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/entity"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "NLI_"

// Config holds the service configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
	Model    ModelConfig    `yaml:"model"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

// DatabaseConfig holds prediction history storage settings.
// Driver is "postgres", "sqlite" or "none".
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
}

// RedisConfig holds prediction cache settings
type RedisConfig struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// LogConfig holds logger settings.
// Output is "stdout" or "stderr".
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// ModelConfig holds model server settings and the class-to-label taxonomy
type ModelConfig struct {
	BaseURL string          `yaml:"base_url"`
	Timeout time.Duration   `yaml:"timeout"`
	Labels  entity.LabelMap `yaml:"labels"`
}

// Load builds the configuration from defaults, an optional .env file, an optional
// YAML file named by NLI_CONFIG_FILE and NLI_* environment variables, in that order.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()

	if path := os.Getenv(EnvPrefix + "CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			User:     "nli",
			Password: "nli",
			DBName:   "nli",
			SSLMode:  "disable",
			Path:     "nli.db",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
			DB:   0,
			TTL:  24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Model: ModelConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 10 * time.Second,
			Labels:  entity.DefaultLabelMap(),
		},
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	// A labels section replaces the default taxonomy instead of merging into it
	var probe struct {
		Model struct {
			Labels entity.LabelMap `yaml:"labels"`
		} `yaml:"model"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(probe.Model.Labels) > 0 {
		c.Model.Labels = nil
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	strs := map[string]*string{
		"SERVER_HOST":       &c.Server.Host,
		"SERVER_MODE":       &c.Server.Mode,
		"DATABASE_DRIVER":   &c.Database.Driver,
		"DATABASE_HOST":     &c.Database.Host,
		"DATABASE_USER":     &c.Database.User,
		"DATABASE_PASSWORD": &c.Database.Password,
		"DATABASE_DBNAME":   &c.Database.DBName,
		"DATABASE_SSLMODE":  &c.Database.SSLMode,
		"DATABASE_PATH":     &c.Database.Path,
		"REDIS_HOST":        &c.Redis.Host,
		"REDIS_PASSWORD":    &c.Redis.Password,
		"LOG_LEVEL":         &c.Log.Level,
		"LOG_FORMAT":        &c.Log.Format,
		"LOG_OUTPUT":        &c.Log.Output,
		"MODEL_BASE_URL":    &c.Model.BaseURL,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"SERVER_PORT":   &c.Server.Port,
		"DATABASE_PORT": &c.Database.Port,
		"REDIS_PORT":    &c.Redis.Port,
		"REDIS_DB":      &c.Redis.DB,
	}
	for key, dst := range ints {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"REDIS_TTL":     &c.Redis.TTL,
		"MODEL_TIMEOUT": &c.Model.Timeout,
	}
	for key, dst := range durations {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
			}
			*dst = d
		}
	}

	return nil
}

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Database.Driver {
	case "postgres", "sqlite", "none":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Model.BaseURL == "" {
		return errors.New("model base_url is required")
	}
	if c.Model.Timeout <= 0 {
		return fmt.Errorf("invalid model timeout %s", c.Model.Timeout)
	}
	if len(c.Model.Labels) == 0 {
		return errors.New("model labels must not be empty")
	}
	for class, label := range c.Model.Labels {
		if class < 0 {
			return fmt.Errorf("invalid class index %d", class)
		}
		if label == "" {
			return fmt.Errorf("empty label for class %d", class)
		}
	}
	return nil
}

// Addr returns the Redis host:port address
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
