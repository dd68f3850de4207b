package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/entity"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/service"
)

func testFrame() *entity.Frame {
	return entity.NewFrame(entity.TextPair{
		PremiseText:    "A man is eating.",
		HypothesisText: "A man is eating food.",
	})
}

func TestMLClient_PredictOnDataFrame(t *testing.T) {
	t.Run("successful prediction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/predict_on_dataframe", r.URL.Path)
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var frame entity.Frame
			err := json.NewDecoder(r.Body).Decode(&frame)
			require.NoError(t, err)
			assert.Equal(t, []string{"A man is eating."}, frame.PremiseText)
			assert.Equal(t, []string{"A man is eating food."}, frame.HypothesisText)

			w.Header().Set("Content-Type", "application/json")
			err = json.NewEncoder(w).Encode(PredictResponse{Predictions: []int{0}})
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		predictions, err := client.PredictOnDataFrame(context.Background(), testFrame())

		require.NoError(t, err)
		assert.Equal(t, []int{0}, predictions)
	})

	t.Run("server error is a runtime fault", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, err := w.Write([]byte("internal error"))
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		_, err := client.PredictOnDataFrame(context.Background(), testFrame())

		assert.ErrorIs(t, err, service.ErrRuntime)
		assert.Contains(t, err.Error(), "500")
		assert.Contains(t, err.Error(), "internal error")
	})

	t.Run("rejected input is a value fault", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		_, err := client.PredictOnDataFrame(context.Background(), testFrame())

		assert.ErrorIs(t, err, service.ErrInvalidValue)
		assert.Contains(t, err.Error(), "422")
	})

	t.Run("connection error is a runtime fault", func(t *testing.T) {
		client := NewMLClient("http://localhost:99999", 1*time.Second)
		_, err := client.PredictOnDataFrame(context.Background(), testFrame())

		assert.ErrorIs(t, err, service.ErrRuntime)
	})

	t.Run("malformed response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, err := w.Write([]byte("not json"))
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		_, err := client.PredictOnDataFrame(context.Background(), testFrame())

		assert.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrRuntime)
		assert.NotErrorIs(t, err, service.ErrInvalidValue)
	})
}

func TestMLClient_ExtractFeatures(t *testing.T) {
	t.Run("returns feature rows", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/extract_features", r.URL.Path)
			resp := ExtractFeaturesResponse{Features: &entity.FeatureBatch{Rows: [][]float64{{1, 0, 3}}}}
			json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		features, err := client.ExtractFeatures(context.Background(), testFrame())

		require.NoError(t, err)
		assert.Equal(t, 1, features.Len())
		assert.Equal(t, []float64{1, 0, 3}, features.Rows[0])
	})

	t.Run("null features", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"features": null}`))
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		features, err := client.ExtractFeatures(context.Background(), testFrame())

		require.NoError(t, err)
		assert.Nil(t, features)
		assert.True(t, features.IsEmpty())
	})
}

func TestMLClient_Predict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)

		var req PredictRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Equal(t, 1, req.Features.Len())

		json.NewEncoder(w).Encode(PredictResponse{Predictions: []int{2}})
	}))
	defer server.Close()

	client := NewMLClient(server.URL, 5*time.Second)
	predictions, err := client.Predict(context.Background(), &entity.FeatureBatch{Rows: [][]float64{{0.5}}})

	require.NoError(t, err)
	assert.Equal(t, []int{2}, predictions)
}

func TestMLClient_Health(t *testing.T) {
	t.Run("healthy service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			assert.Equal(t, "GET", r.Method)

			resp := HealthResponse{
				Status:       "healthy",
				ModelLoaded:  true,
				ModelVersion: "mnb-bow-syntactic-v4",
				Capabilities: []string{CapabilityPredictOnDataFrame},
			}
			json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		result, err := client.Health(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "healthy", result.Status)
		assert.True(t, result.ModelLoaded)
		assert.True(t, result.Has(CapabilityPredictOnDataFrame))
		assert.False(t, result.Has(CapabilityPredict))
	})

	t.Run("unhealthy service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		_, err := client.Health(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})
}

func TestMLClient_Ready(t *testing.T) {
	t.Run("service ready", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/ready", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		err := client.Ready(context.Background())

		assert.NoError(t, err)
	})

	t.Run("service not ready", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, 5*time.Second)
		err := client.Ready(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not ready")
	})
}
