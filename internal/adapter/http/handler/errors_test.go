package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/service"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/usecase"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"prediction not found", usecase.ErrPredictionNotFound, http.StatusNotFound, CodeNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", usecase.ErrPredictionNotFound), http.StatusNotFound, CodeNotFound},
		{"invalid request", usecase.ErrInvalidRequest, http.StatusBadRequest, CodeInvalidRequest},
		{"unsupported model", service.ErrUnsupportedModel, http.StatusServiceUnavailable, CodeModelUnavailable},
		{"deadline exceeded", context.DeadlineExceeded, http.StatusGatewayTimeout, CodeTimeout},
		{"anything else", errors.New("pq: connection reset"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := MapError(tt.err)

			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.NotEmpty(t, apiErr.Message)
			assert.NotContains(t, apiErr.Message, "pq:")
		})
	}
}

func TestAbortWithError(t *testing.T) {
	w, response := serve(t, func(c *gin.Context) {
		abortWithError(c, usecase.ErrPredictionNotFound)
		assert.True(t, c.IsAborted())
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, response.Error)
	assert.Equal(t, CodeNotFound, response.Error.Code)
}

func TestBadRequest(t *testing.T) {
	w, response := serve(t, func(c *gin.Context) {
		badRequest(c, "invalid %s", "prediction id")
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, response.Error)
	assert.Equal(t, "invalid prediction id", response.Error.Message)
}
