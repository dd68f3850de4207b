package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ModelChecker reports whether the model server can serve predictions
type ModelChecker interface {
	Ready(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
	model ModelChecker
}

// NewHealthHandler creates a new health handler. Nil dependencies are reported as not configured.
func NewHealthHandler(db *gorm.DB, redis *redis.Client, model ModelChecker) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redis,
		model: model,
	}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

type probe struct {
	name       string
	configured bool
	check      func(ctx context.Context) error
}

func (h *HealthHandler) probes() []probe {
	return []probe{
		{"database", h.db != nil, func(ctx context.Context) error {
			sqlDB, err := h.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}},
		{"redis", h.redis != nil, func(ctx context.Context) error {
			return h.redis.Ping(ctx).Err()
		}},
		{"model", h.model != nil, func(ctx context.Context) error {
			return h.model.Ready(ctx)
		}},
	}
}

// Health handles GET /health. Components are probed concurrently.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var (
		mu         sync.Mutex
		components = make(map[string]string)
		healthy    = true
		eg         errgroup.Group
	)

	// Unconfigured entries are filled before any probe goroutine starts
	var active []probe
	for _, p := range h.probes() {
		if !p.configured {
			components[p.name] = "not configured"
			continue
		}
		active = append(active, p)
	}

	for _, p := range active {
		p := p
		eg.Go(func() error {
			status := "ok"
			err := p.check(ctx)
			if err != nil {
				status = "error: " + err.Error()
			}

			mu.Lock()
			defer mu.Unlock()
			components[p.name] = status
			if err != nil {
				healthy = false
			}
			return nil
		})
	}
	_ = eg.Wait()

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthStatus{
		Status:     status,
		Components: components,
	})
}

// Ready handles GET /ready. The service is ready once the model server is.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if h.model != nil {
		if err := h.model.Ready(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "model server unavailable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
