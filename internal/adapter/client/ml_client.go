package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/entity"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/service"
)

// Capabilities a model server can advertise on /health
const (
	CapabilityPredictOnDataFrame = "predict_on_dataframe"
	CapabilityExtractFeatures    = "extract_features"
	CapabilityPredict            = "predict"
)

// PredictRequest represents a classification request for a feature batch
type PredictRequest struct {
	Features *entity.FeatureBatch `json:"features"`
}

// PredictResponse represents class indices returned by the model server
type PredictResponse struct {
	Predictions []int `json:"predictions"`
}

// ExtractFeaturesResponse represents the features returned by the model server
type ExtractFeaturesResponse struct {
	Features *entity.FeatureBatch `json:"features"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string   `json:"status"`
	ModelLoaded  bool     `json:"model_loaded"`
	ModelVersion string   `json:"model_version"`
	Capabilities []string `json:"capabilities"`
}

// Has reports whether the server advertises a capability
func (h *HealthResponse) Has(capability string) bool {
	return lo.Contains(h.Capabilities, capability)
}

// MLClient is an HTTP client for the model server
type MLClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewMLClient creates a new model server client
func NewMLClient(baseURL string, timeout time.Duration) *MLClient {
	return &MLClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PredictOnDataFrame runs the fitted feature pipeline and classifier in one call
func (c *MLClient) PredictOnDataFrame(ctx context.Context, frame *entity.Frame) ([]int, error) {
	var result PredictResponse
	if err := c.post(ctx, "/predict_on_dataframe", frame, &result); err != nil {
		return nil, err
	}
	return result.Predictions, nil
}

// ExtractFeatures runs the fitted feature pipeline only
func (c *MLClient) ExtractFeatures(ctx context.Context, frame *entity.Frame) (*entity.FeatureBatch, error) {
	var result ExtractFeaturesResponse
	if err := c.post(ctx, "/extract_features", frame, &result); err != nil {
		return nil, err
	}
	return result.Features, nil
}

// Predict classifies a feature batch
func (c *MLClient) Predict(ctx context.Context, features *entity.FeatureBatch) ([]int, error) {
	var result PredictResponse
	if err := c.post(ctx, "/predict", PredictRequest{Features: features}, &result); err != nil {
		return nil, err
	}
	return result.Predictions, nil
}

// Health checks the model server health
func (c *MLClient) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model server returned status %d", resp.StatusCode)
	}

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// Ready checks if the model server is ready
func (c *MLClient) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ready", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model server not ready: status %d", resp.StatusCode)
	}

	return nil
}

// post sends a JSON request and decodes the JSON response.
// Rejected input maps to service.ErrInvalidValue, other failures to service.ErrRuntime.
func (c *MLClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w: %w", service.ErrInvalidValue, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w: %w", service.ErrRuntime, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		kind := service.ErrRuntime
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity {
			kind = service.ErrInvalidValue
		}
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%w: model server returned status %d", kind, resp.StatusCode)
		}
		return fmt.Errorf("%w: model server returned status %d: %s", kind, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
