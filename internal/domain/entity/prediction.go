package entity

import (
	"time"

	"github.com/google/uuid"
)

// PredictionRecord represents a stored prediction
type PredictionRecord struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	RequestID      string    `json:"request_id" gorm:"type:varchar(64);index"`
	PremiseText    string    `json:"premise_text" gorm:"type:text;not null"`
	HypothesisText string    `json:"hypothesis_text" gorm:"type:text;not null"`
	Label          string    `json:"label" gorm:"type:varchar(50);not null;index"`
	RawClass       *int      `json:"raw_class,omitempty"`
	Reason         string    `json:"reason,omitempty" gorm:"type:varchar(50)"`
	Strategy       string    `json:"strategy" gorm:"type:varchar(20);not null"`
	ModelVersion   string    `json:"model_version" gorm:"type:varchar(100)"`
	LatencyMs      int64     `json:"latency_ms" gorm:"default:0"`
	Cached         bool      `json:"cached" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (PredictionRecord) TableName() string {
	return "predictions"
}

// NewPredictionRecord creates a new PredictionRecord for a pair
func NewPredictionRecord(requestID string, pair TextPair, strategy, modelVersion string) *PredictionRecord {
	return &PredictionRecord{
		ID:             uuid.New(),
		RequestID:      requestID,
		PremiseText:    pair.PremiseText,
		HypothesisText: pair.HypothesisText,
		Strategy:       strategy,
		ModelVersion:   modelVersion,
	}
}

// SetOutcome sets the prediction result for the record
func (r *PredictionRecord) SetOutcome(outcome Outcome, latencyMs int64, cached bool) {
	r.Label = outcome.Label
	r.Reason = string(outcome.Reason)
	r.RawClass = nil
	if outcome.HasClass {
		class := outcome.Class
		r.RawClass = &class
	}
	r.LatencyMs = latencyMs
	r.Cached = cached
}

// IsUnknown returns true if the stored prediction degraded to "unknown"
func (r *PredictionRecord) IsUnknown() bool {
	return r.Label == string(LabelUnknown)
}

// LabelCount is the number of stored predictions carrying a label
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}
