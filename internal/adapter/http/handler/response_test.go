package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	router := gin.New()
	router.GET("/test", h)

	req, _ := http.NewRequest("GET", "/test", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func TestRespondSuccess(t *testing.T) {
	w, response := serve(t, func(c *gin.Context) {
		c.Set(RequestIDKey, "test-request-id")
		respondSuccess(c, http.StatusCreated, map[string]string{"label": "entailment"})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, response.Success)
	assert.Equal(t, map[string]any{"label": "entailment"}, response.Data)
	assert.Nil(t, response.Error)
	assert.Equal(t, "test-request-id", response.Meta.RequestID)
	assert.NotEmpty(t, response.Meta.Timestamp)
}

func TestRespondError(t *testing.T) {
	t.Run("returns error response", func(t *testing.T) {
		w, response := serve(t, func(c *gin.Context) {
			c.Set(RequestIDKey, "test-request-id")
			RespondError(c, http.StatusBadRequest, CodeInvalidRequest, "invalid input")
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, response.Success)
		assert.Nil(t, response.Data)
		require.NotNil(t, response.Error)
		assert.Equal(t, "INVALID_REQUEST", response.Error.Code)
		assert.Equal(t, "invalid input", response.Error.Message)
		assert.Equal(t, "test-request-id", response.Meta.RequestID)
	})

	t.Run("generates request ID if not set", func(t *testing.T) {
		_, response := serve(t, func(c *gin.Context) {
			RespondError(c, http.StatusNotFound, "NOT_FOUND", "prediction not found")
		})

		assert.NotEmpty(t, response.Meta.RequestID)
	})
}
