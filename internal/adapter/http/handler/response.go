package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key holding the request ID
const RequestIDKey = "request_id"

// Response is the envelope every API endpoint answers with
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *MetaInfo  `json:"meta"`
}

// ErrorInfo carries a machine-readable code and a message
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetaInfo carries per-response metadata
type MetaInfo struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func envelope(c *gin.Context, data any, errInfo *ErrorInfo) Response {
	requestID := c.GetString(RequestIDKey)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return Response{
		Success: errInfo == nil,
		Data:    data,
		Error:   errInfo,
		Meta: &MetaInfo{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			RequestID: requestID,
		},
	}
}

func respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, envelope(c, data, nil))
}

// RespondError writes an error envelope. Middleware uses it outside handlers.
func RespondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, envelope(c, nil, &ErrorInfo{Code: code, Message: message}))
}
