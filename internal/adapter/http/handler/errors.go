package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/domain/service"
	"github.com/ressKim-io/EvoGuard/nli-service/internal/usecase"
)

// Error codes returned in the response envelope
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeTimeout          = "TIMEOUT"
	CodeModelUnavailable = "MODEL_UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
)

// APIError is an error translated for the HTTP layer
type APIError struct {
	Status  int
	Code    string
	Message string
}

// first match wins
var errorTable = []struct {
	target error
	api    APIError
}{
	{usecase.ErrPredictionNotFound, APIError{http.StatusNotFound, CodeNotFound, "prediction not found"}},
	{usecase.ErrInvalidRequest, APIError{http.StatusBadRequest, CodeInvalidRequest, "invalid request"}},
	{service.ErrUnsupportedModel, APIError{http.StatusServiceUnavailable, CodeModelUnavailable, "model cannot serve predictions"}},
	{context.DeadlineExceeded, APIError{http.StatusGatewayTimeout, CodeTimeout, "request timed out"}},
}

// MapError translates a usecase error. Unrecognized errors become 500 without leaking details.
func MapError(err error) APIError {
	for _, entry := range errorTable {
		if errors.Is(err, entry.target) {
			return entry.api
		}
	}
	return APIError{http.StatusInternalServerError, CodeInternal, "internal server error"}
}

func abortWithError(c *gin.Context, err error) {
	apiErr := MapError(err)
	RespondError(c, apiErr.Status, apiErr.Code, apiErr.Message)
	c.Abort()
}

func badRequest(c *gin.Context, format string, args ...any) {
	RespondError(c, http.StatusBadRequest, CodeInvalidRequest, fmt.Sprintf(format, args...))
	c.Abort()
}
