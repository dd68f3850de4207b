package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/adapter/client"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/adapter/http/router"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/adapter/repository/postgres"
	rediscache "github.com/ressKim-io/EvoGuard/nli-service/internal/adapter/repository/redis"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/infrastructure/cache"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/infrastructure/config"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/infrastructure/database"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/infrastructure/logger"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/infrastructure/metrics"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	predictionCfg := usecase.PredictionConfig{
		CacheTTL: cfg.Redis.TTL,
		Logger:   log,
	}

	// Initialize database (optional, driver "none" disables history)
	db, err := database.NewDB(&cfg.Database, log)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if db != nil {
		if err := database.AutoMigrate(db); err != nil {
			log.Error("Failed to run migrations", zap.Error(err))
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("Database migrations completed", zap.String("driver", cfg.Database.Driver))
		predictionCfg.Repository = postgres.NewPredictionRepository(db)
	}

	// Initialize Redis (optional, continue without it)
	var redisClient *redis.Client
	if rc, err := cache.NewRedisClient(&cfg.Redis); err != nil {
		log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
	} else {
		log.Info("Connected to Redis", zap.String("address", cfg.Redis.Addr()))
		redisClient = rc
		predictionCfg.Cache = rediscache.NewPredictionCache(redisClient)
	}

	// Resolve the model server's inference strategy once
	mlClient := client.NewMLClient(cfg.Model.BaseURL, cfg.Model.Timeout)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Model.Timeout)
	loaded, err := client.LoadPipeline(loadCtx, mlClient)
	cancelLoad()
	if err != nil {
		log.Error("Failed to load model pipeline", zap.String("base_url", cfg.Model.BaseURL), zap.Error(err))
		return fmt.Errorf("failed to load model pipeline: %w", err)
	}
	log.Info("Model pipeline loaded",
		zap.String("strategy", string(loaded.Pipeline.Strategy())),
		zap.String("model_version", loaded.Version),
	)

	predictor := usecase.NewPredictor(loaded.Pipeline, cfg.Model.Labels, log)
	recorder := metrics.NewRecorder()
	predictionCfg.Observer = recorder
	predictionCfg.ModelVersion = loaded.Version

	// Setup router
	r := router.Setup(router.Dependencies{
		DB:           db,
		Redis:        redisClient,
		Model:        mlClient,
		PredictionUC: usecase.NewPredictionUsecase(predictor, predictionCfg),
		Metrics:      recorder,
		Logger:       log,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := database.Close(db); err != nil {
		log.Warn("Failed to close database", zap.Error(err))
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server exited")
	return nil
}
