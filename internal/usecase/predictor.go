package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/entity"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/service"
)

// Predictor maps a premise/hypothesis pair to an NLI label through a fitted pipeline.
// It never returns an error: every failure resolves to the "unknown" label.
type Predictor struct {
	pipeline *service.Pipeline
	labels   entity.LabelMap
	logger   *zap.Logger
}

// NewPredictor creates a new Predictor. labels is copied.
func NewPredictor(pipeline *service.Pipeline, labels entity.LabelMap, logger *zap.Logger) *Predictor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Predictor{
		pipeline: pipeline,
		labels:   labels.Clone(),
		logger:   logger,
	}
}

// Strategy returns the inference path used by the underlying pipeline
func (p *Predictor) Strategy() service.Strategy {
	if p.pipeline == nil {
		return ""
	}
	return p.pipeline.Strategy()
}

// Labels returns a copy of the label map
func (p *Predictor) Labels() entity.LabelMap {
	return p.labels.Clone()
}

// Predict classifies a premise/hypothesis record pair
func (p *Predictor) Predict(ctx context.Context, premise, hypothesis entity.TextRecord) entity.Outcome {
	return p.PredictPair(ctx, entity.NewTextPair(premise, hypothesis))
}

// PredictLabel classifies a record pair and returns only the label
func (p *Predictor) PredictLabel(ctx context.Context, premise, hypothesis entity.TextRecord) string {
	return p.Predict(ctx, premise, hypothesis).Label
}

// PredictPair classifies a text pair
func (p *Predictor) PredictPair(ctx context.Context, pair entity.TextPair) (outcome entity.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic during prediction: %v", r)
			p.logger.Error("Unexpected panic during prediction",
				zap.Any("panic", r),
				zap.Stack("panic_stack"),
			)
			outcome = entity.Unknown(entity.ReasonUnexpectedFault, err)
		}
	}()

	frame := entity.NewFrame(pair)

	predictions, reason, err := p.run(ctx, frame)
	if err != nil {
		return p.fault(err)
	}
	if reason != entity.ReasonNone {
		return entity.Unknown(reason, nil)
	}

	if len(predictions) == 0 {
		p.logger.Error("Model prediction returned no classes")
		return entity.Unknown(entity.ReasonEmptyPrediction, nil)
	}

	class := predictions[0]
	label, ok := p.labels.Lookup(class)
	p.logger.Info("Prediction complete",
		zap.Int("raw_class", class),
		zap.String("label", label),
	)
	if !ok {
		return entity.UnmappedClass(class)
	}
	return entity.Known(label, class)
}

func (p *Predictor) run(ctx context.Context, frame *entity.Frame) ([]int, entity.UnknownReason, error) {
	if p.pipeline == nil {
		return nil, entity.ReasonNone, service.ErrUnsupportedModel
	}

	p.logger.Debug("Predicting", zap.String("strategy", string(p.pipeline.Strategy())))

	if combined := p.pipeline.Combined(); combined != nil {
		predictions, err := combined.PredictOnFrame(ctx, frame)
		return predictions, entity.ReasonNone, err
	}

	p.logger.Warn("Combined pipeline not available, using extract_features + predict")
	split := p.pipeline.Split()

	features, err := split.ExtractFeatures(ctx, frame)
	if err != nil {
		return nil, entity.ReasonNone, err
	}
	if features.IsEmpty() {
		p.logger.Warn("Feature extraction returned empty batch, cannot predict")
		return nil, entity.ReasonEmptyFeatures, nil
	}

	predictions, err := split.Predict(ctx, features)
	return predictions, entity.ReasonNone, err
}

func (p *Predictor) fault(err error) entity.Outcome {
	reason := classifyFault(err)
	switch reason {
	case entity.ReasonRuntimeFault:
		p.logger.Error("Runtime error during prediction", zap.Error(err))
	case entity.ReasonValueFault:
		p.logger.Error("Value error during prediction", zap.Error(err))
	default:
		p.logger.Error("Unexpected error during prediction", zap.Error(err))
	}
	return entity.Unknown(reason, err)
}

func classifyFault(err error) entity.UnknownReason {
	switch {
	case errors.Is(err, service.ErrRuntime):
		return entity.ReasonRuntimeFault
	case errors.Is(err, service.ErrInvalidValue):
		return entity.ReasonValueFault
	default:
		return entity.ReasonUnexpectedFault
	}
}
