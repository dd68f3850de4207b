package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestContext(method, target, body string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		query  string
		limit  int
		offset int
	}{
		{"", DefaultLimit, 0},
		{"limit=50&offset=10", 50, 10},
		{"limit=200", MaxLimit, 0},
		{"limit=-5", DefaultLimit, 0},
		{"limit=0", DefaultLimit, 0},
		{"limit=abc&offset=xyz", DefaultLimit, 0},
		{"offset=-1", DefaultLimit, 0},
		{"limit=100&offset=300", MaxLimit, 300},
	}

	for _, tt := range tests {
		t.Run("query="+tt.query, func(t *testing.T) {
			c := requestContext(http.MethodGet, "/?"+tt.query, "")

			limit, offset := pageParams(c)

			assert.Equal(t, tt.limit, limit)
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestPredictionID(t *testing.T) {
	c := requestContext(http.MethodGet, "/", "")

	c.Params = gin.Params{{Key: "id", Value: "550e8400-e29b-41d4-a716-446655440000"}}
	id, ok := predictionID(c)
	assert.True(t, ok)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())

	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	_, ok = predictionID(c)
	assert.False(t, ok)
}

func TestBindPredictInput(t *testing.T) {
	t.Run("decodes records and keeps body request id", func(t *testing.T) {
		c := requestContext(http.MethodPost, "/", `{"premise":{"text":"a"},"hypothesis":{"text":"b"},"request_id":"body-id"}`)
		c.Set(RequestIDKey, "header-id")

		input, err := bindPredictInput(c)

		require.NoError(t, err)
		assert.Equal(t, "a", input.Premise.Text())
		assert.Equal(t, "b", input.Hypothesis.Text())
		assert.Equal(t, "body-id", input.RequestID)
	})

	t.Run("falls back to middleware request id", func(t *testing.T) {
		c := requestContext(http.MethodPost, "/", `{"premise":{"text":"a"}}`)
		c.Set(RequestIDKey, "header-id")

		input, err := bindPredictInput(c)

		require.NoError(t, err)
		assert.Equal(t, "header-id", input.RequestID)
		assert.Equal(t, "", input.Hypothesis.Text())
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		body := `{"premise":{"text":"` + strings.Repeat("가", MaxTextLength) + `"}}`
		_, err := bindPredictInput(requestContext(http.MethodPost, "/", body))
		assert.NoError(t, err)
	})

	t.Run("rejects oversized hypothesis", func(t *testing.T) {
		body := `{"hypothesis":{"text":"` + strings.Repeat("a", MaxTextLength+1) + `"}}`
		_, err := bindPredictInput(requestContext(http.MethodPost, "/", body))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hypothesis")
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		_, err := bindPredictInput(requestContext(http.MethodPost, "/", `{"premise":`))
		assert.Error(t, err)
	})
}
