package client

import (
	"context"
	"fmt"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/entity"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/service"
)

// CombinedModel adapts MLClient to the CombinedPipeline interface
type CombinedModel struct {
	client *MLClient
}

// NewCombinedModel creates a new CombinedModel
func NewCombinedModel(client *MLClient) *CombinedModel {
	return &CombinedModel{client: client}
}

// PredictOnFrame classifies every frame row on the model server
func (m *CombinedModel) PredictOnFrame(ctx context.Context, frame *entity.Frame) ([]int, error) {
	return m.client.PredictOnDataFrame(ctx, frame)
}

// SplitModel adapts MLClient to the SplitPipeline interface
type SplitModel struct {
	client *MLClient
}

// NewSplitModel creates a new SplitModel
func NewSplitModel(client *MLClient) *SplitModel {
	return &SplitModel{client: client}
}

// ExtractFeatures transforms a frame on the model server
func (m *SplitModel) ExtractFeatures(ctx context.Context, frame *entity.Frame) (*entity.FeatureBatch, error) {
	return m.client.ExtractFeatures(ctx, frame)
}

// Predict classifies a feature batch on the model server
func (m *SplitModel) Predict(ctx context.Context, features *entity.FeatureBatch) ([]int, error) {
	return m.client.Predict(ctx, features)
}

// LoadedModel is a model server handle with its inference strategy fixed
type LoadedModel struct {
	Pipeline *service.Pipeline
	Version  string
}

// LoadPipeline asks the model server for its capabilities once and builds the matching pipeline
func LoadPipeline(ctx context.Context, client *MLClient) (*LoadedModel, error) {
	health, err := client.Health(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query model server: %w", err)
	}
	if !health.ModelLoaded {
		return nil, fmt.Errorf("model server has no model loaded")
	}

	var model any
	switch {
	case health.Has(CapabilityPredictOnDataFrame):
		model = NewCombinedModel(client)
	case health.Has(CapabilityExtractFeatures) && health.Has(CapabilityPredict):
		model = NewSplitModel(client)
	}

	pipeline, err := service.NewPipeline(model)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", health.ModelVersion, err)
	}

	return &LoadedModel{
		Pipeline: pipeline,
		Version:  health.ModelVersion,
	}, nil
}
