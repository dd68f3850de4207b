package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/entity"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/repository"
)

// Error definitions for prediction usecase
var (
	ErrPredictionNotFound = errors.New("prediction not found")
	ErrInvalidRequest     = errors.New("invalid request")
)

// Default pagination values
const (
	defaultListLimit = 20
	maxListLimit     = 100
)

const cacheKeyPrefix = "nli:prediction:"

// PredictInput represents the input for a prediction
type PredictInput struct {
	Premise    entity.TextRecord `json:"premise"`
	Hypothesis entity.TextRecord `json:"hypothesis"`
	RequestID  string            `json:"request_id"`
}

// PredictionOutput represents the output for prediction operations
type PredictionOutput struct {
	PredictionID   uuid.UUID `json:"prediction_id"`
	RequestID      string    `json:"request_id"`
	PremiseText    string    `json:"premise_text"`
	HypothesisText string    `json:"hypothesis_text"`
	Label          string    `json:"label"`
	RawClass       *int      `json:"raw_class,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	Strategy       string    `json:"strategy"`
	ModelVersion   string    `json:"model_version"`
	LatencyMs      int64     `json:"latency_ms"`
	Cached         bool      `json:"cached"`
	CreatedAt      string    `json:"created_at"`
}

// PredictionListOutput represents paginated prediction history
type PredictionListOutput struct {
	Predictions []*PredictionOutput `json:"predictions"`
	Total       int64               `json:"total"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
	HasMore     bool                `json:"has_more"`
}

// StatsOutput represents label distribution of stored predictions
type StatsOutput struct {
	Total       int64               `json:"total"`
	Labels      []entity.LabelCount `json:"labels"`
	UnknownRate float64             `json:"unknown_rate"`
}

// Observer receives every prediction made by the usecase
type Observer interface {
	ObservePrediction(strategy string, outcome entity.Outcome, cached bool, latency time.Duration)
}

// PredictionUsecase defines the interface for prediction business logic
type PredictionUsecase interface {
	Predict(ctx context.Context, input *PredictInput) (*PredictionOutput, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PredictionOutput, error)
	List(ctx context.Context, limit, offset int) (*PredictionListOutput, error)
	Stats(ctx context.Context) (*StatsOutput, error)
}

// PredictionConfig holds optional collaborators of the prediction usecase.
// Nil collaborators are skipped.
type PredictionConfig struct {
	Repository   repository.PredictionRepository
	Cache        repository.PredictionCache
	Observer     Observer
	ModelVersion string
	CacheTTL     time.Duration
	Logger       *zap.Logger
}

type predictionUsecase struct {
	predictor      *Predictor
	predictionRepo repository.PredictionRepository
	cache          repository.PredictionCache
	observer       Observer
	modelVersion   string
	cacheTTL       time.Duration
	logger         *zap.Logger
}

// NewPredictionUsecase creates a new prediction usecase
func NewPredictionUsecase(predictor *Predictor, cfg PredictionConfig) PredictionUsecase {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &predictionUsecase{
		predictor:      predictor,
		predictionRepo: cfg.Repository,
		cache:          cfg.Cache,
		observer:       cfg.Observer,
		modelVersion:   cfg.ModelVersion,
		cacheTTL:       cfg.CacheTTL,
		logger:         logger,
	}
}

func (u *predictionUsecase) Predict(ctx context.Context, input *PredictInput) (*PredictionOutput, error) {
	if input == nil {
		return nil, ErrInvalidRequest
	}

	requestID := input.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	pair := entity.NewTextPair(input.Premise, input.Hypothesis)
	strategy := string(u.predictor.Strategy())
	record := entity.NewPredictionRecord(requestID, pair, strategy, u.modelVersion)
	log := u.logger.With(zap.String("request_id", requestID))

	start := time.Now()
	key := CacheKey(u.modelVersion, pair)

	outcome, cached := u.lookup(ctx, key, log)
	if !cached {
		outcome = u.predictor.PredictPair(ctx, pair)
		if !outcome.IsUnknown() {
			u.store(ctx, key, outcome, log)
		}
	}
	latency := time.Since(start)

	record.SetOutcome(outcome, latency.Milliseconds(), cached)
	record.CreatedAt = time.Now().UTC()

	if u.observer != nil {
		u.observer.ObservePrediction(strategy, outcome, cached, latency)
	}

	if u.predictionRepo != nil {
		if err := u.predictionRepo.Create(ctx, record); err != nil {
			log.Warn("Failed to store prediction", zap.Error(err))
		}
	}

	return toPredictionOutput(record), nil
}

func (u *predictionUsecase) lookup(ctx context.Context, key string, log *zap.Logger) (entity.Outcome, bool) {
	if u.cache == nil {
		return entity.Outcome{}, false
	}

	outcome, found, err := u.cache.Get(ctx, key)
	if err != nil {
		log.Warn("Prediction cache lookup failed", zap.Error(err))
		return entity.Outcome{}, false
	}
	if !found || outcome == nil {
		return entity.Outcome{}, false
	}

	log.Debug("Prediction cache hit", zap.String("label", outcome.Label))
	return *outcome, true
}

func (u *predictionUsecase) store(ctx context.Context, key string, outcome entity.Outcome, log *zap.Logger) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Set(ctx, key, outcome, u.cacheTTL); err != nil {
		log.Warn("Failed to cache prediction", zap.Error(err))
	}
}

func (u *predictionUsecase) GetByID(ctx context.Context, id uuid.UUID) (*PredictionOutput, error) {
	if u.predictionRepo == nil {
		return nil, ErrPredictionNotFound
	}

	record, err := u.predictionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrPredictionNotFound
	}

	return toPredictionOutput(record), nil
}

func (u *predictionUsecase) List(ctx context.Context, limit, offset int) (*PredictionListOutput, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	if u.predictionRepo == nil {
		return &PredictionListOutput{
			Predictions: []*PredictionOutput{},
			Limit:       limit,
			Offset:      offset,
		}, nil
	}

	records, total, err := u.predictionRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	outputs := make([]*PredictionOutput, len(records))
	for i, r := range records {
		outputs[i] = toPredictionOutput(r)
	}

	return &PredictionListOutput{
		Predictions: outputs,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
		HasMore:     int64(offset+limit) < total,
	}, nil
}

func (u *predictionUsecase) Stats(ctx context.Context) (*StatsOutput, error) {
	stats := &StatsOutput{Labels: []entity.LabelCount{}}
	if u.predictionRepo == nil {
		return stats, nil
	}

	counts, err := u.predictionRepo.CountByLabel(ctx)
	if err != nil {
		return nil, err
	}

	var unknown int64
	for _, c := range counts {
		stats.Total += c.Count
		if c.Label == string(entity.LabelUnknown) {
			unknown += c.Count
		}
	}
	stats.Labels = append(stats.Labels, counts...)
	if stats.Total > 0 {
		stats.UnknownRate = float64(unknown) / float64(stats.Total)
	}

	return stats, nil
}

// CacheKey fingerprints a text pair for a model version
func CacheKey(modelVersion string, pair entity.TextPair) string {
	h := sha256.New()
	h.Write([]byte(modelVersion))
	h.Write([]byte{0})
	h.Write([]byte(pair.PremiseText))
	h.Write([]byte{0})
	h.Write([]byte(pair.HypothesisText))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func toPredictionOutput(r *entity.PredictionRecord) *PredictionOutput {
	return &PredictionOutput{
		PredictionID:   r.ID,
		RequestID:      r.RequestID,
		PremiseText:    r.PremiseText,
		HypothesisText: r.HypothesisText,
		Label:          r.Label,
		RawClass:       r.RawClass,
		Reason:         r.Reason,
		Strategy:       r.Strategy,
		ModelVersion:   r.ModelVersion,
		LatencyMs:      r.LatencyMs,
		Cached:         r.Cached,
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
