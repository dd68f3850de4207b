package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/entity"
)

// PredictionRepository defines the interface for prediction history operations
type PredictionRepository interface {
	// Create stores a prediction
	Create(ctx context.Context, record *entity.PredictionRecord) error

	// GetByID retrieves a prediction by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PredictionRecord, error)

	// List retrieves predictions with pagination, newest first
	List(ctx context.Context, limit, offset int) ([]*entity.PredictionRecord, int64, error)

	// CountByLabel counts stored predictions per label
	CountByLabel(ctx context.Context) ([]entity.LabelCount, error)
}

// PredictionCache stores known outcomes keyed by a pair fingerprint
type PredictionCache interface {
	// Get returns the cached outcome and whether it was found
	Get(ctx context.Context, key string) (*entity.Outcome, bool, error)

	// Set stores an outcome for ttl
	Set(ctx context.Context, key string, outcome entity.Outcome, ttl time.Duration) error
}
