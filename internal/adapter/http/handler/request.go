package handler

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/usecase"
)

// Pagination bounds for list endpoints
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// MaxTextLength bounds premise and hypothesis length, in characters
const MaxTextLength = 10000

// bindPredictInput decodes a prediction request and falls back to the
// middleware request ID when the body carries none.
func bindPredictInput(c *gin.Context) (*usecase.PredictInput, error) {
	var input usecase.PredictInput
	if err := c.ShouldBindJSON(&input); err != nil {
		return nil, err
	}

	fields := []struct {
		name string
		text string
	}{
		{"premise", input.Premise.Text()},
		{"hypothesis", input.Hypothesis.Text()},
	}
	for _, f := range fields {
		if n := utf8.RuneCountInString(f.text); n > MaxTextLength {
			return nil, fmt.Errorf("%s exceeds %d characters (got %d)", f.name, MaxTextLength, n)
		}
	}

	if input.RequestID == "" {
		input.RequestID = c.GetString(RequestIDKey)
	}
	return &input, nil
}

// pageParams reads limit and offset, replacing malformed values with defaults
func pageParams(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.Query("limit"))
	switch {
	case err != nil || limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	offset, err = strconv.Atoi(c.Query("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func predictionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
