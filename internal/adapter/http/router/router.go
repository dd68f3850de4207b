package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/adapter/http/handler"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/adapter/http/middleware"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/infrastructure/metrics"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/usecase"
)

// Dependencies holds what the router wires into handlers. DB, Redis and Model may be nil.
type Dependencies struct {
	DB           *gorm.DB
	Redis        *redis.Client
	Model        handler.ModelChecker
	PredictionUC usecase.PredictionUsecase
	Metrics      *metrics.Recorder
	Logger       *zap.Logger
}

// Setup creates and configures the Gin router
func Setup(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis, deps.Model)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	predictionHandler := handler.NewPredictionHandler(deps.PredictionUC)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		predictions := v1.Group("/predictions")
		{
			predictions.POST("", predictionHandler.Predict)
			predictions.GET("", predictionHandler.ListPredictions)
			predictions.GET("/stats", predictionHandler.GetStats)
			predictions.GET("/:id", predictionHandler.GetPrediction)
		}
	}

	return router
}
