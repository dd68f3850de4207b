package service

import (
	"context"
	"errors"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/entity"
)

// Fault kinds a pipeline can report. Wrap them so errors.Is can classify the failure.
var (
	ErrRuntime          = errors.New("pipeline runtime fault")
	ErrInvalidValue     = errors.New("pipeline invalid value")
	ErrUnsupportedModel = errors.New("model supports neither combined nor split prediction")
)

// Strategy names the inference path a pipeline uses
type Strategy string

const (
	StrategyCombined Strategy = "combined"
	StrategySplit    Strategy = "split"
)

// CombinedPipeline runs feature extraction and classification in one call
type CombinedPipeline interface {
	// PredictOnFrame returns one class index per frame row
	PredictOnFrame(ctx context.Context, frame *entity.Frame) ([]int, error)
}

// SplitPipeline exposes feature extraction and classification as separate steps
type SplitPipeline interface {
	// ExtractFeatures transforms a frame with the fitted feature pipeline.
	// A nil batch means no features could be produced.
	ExtractFeatures(ctx context.Context, frame *entity.Frame) (*entity.FeatureBatch, error)

	// Predict returns one class index per feature row
	Predict(ctx context.Context, features *entity.FeatureBatch) ([]int, error)
}

// Pipeline is a model handle whose inference strategy was fixed when it was built
type Pipeline struct {
	combined CombinedPipeline
	split    SplitPipeline
}

// NewPipeline detects which strategy model supports. Combined is preferred when
// a model implements both.
func NewPipeline(model any) (*Pipeline, error) {
	if m, ok := model.(CombinedPipeline); ok && m != nil {
		return &Pipeline{combined: m}, nil
	}
	if m, ok := model.(SplitPipeline); ok && m != nil {
		return &Pipeline{split: m}, nil
	}
	return nil, ErrUnsupportedModel
}

// NewCombinedPipeline wraps a combined model
func NewCombinedPipeline(model CombinedPipeline) *Pipeline {
	return &Pipeline{combined: model}
}

// NewSplitPipeline wraps a split model
func NewSplitPipeline(model SplitPipeline) *Pipeline {
	return &Pipeline{split: model}
}

// Strategy returns the inference path of the pipeline
func (p *Pipeline) Strategy() Strategy {
	if p.combined != nil {
		return StrategyCombined
	}
	return StrategySplit
}

// Combined returns the combined model, or nil for split pipelines
func (p *Pipeline) Combined() CombinedPipeline {
	return p.combined
}

// Split returns the split model, or nil for combined pipelines
func (p *Pipeline) Split() SplitPipeline {
	return p.split
}
