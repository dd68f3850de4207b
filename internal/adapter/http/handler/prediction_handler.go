package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/EvoGuard/nli-service/internal/usecase"
)

// PredictionHandler serves the prediction endpoints
type PredictionHandler struct {
	predictionUC usecase.PredictionUsecase
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionUC usecase.PredictionUsecase) *PredictionHandler {
	return &PredictionHandler{predictionUC: predictionUC}
}

// Predict handles POST /api/v1/predictions.
// An unknown label is still a 200: the reason travels in the body.
func (h *PredictionHandler) Predict(c *gin.Context) {
	input, err := bindPredictInput(c)
	if err != nil {
		badRequest(c, "%s", err.Error())
		return
	}

	output, err := h.predictionUC.Predict(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// GetPrediction handles GET /api/v1/predictions/:id
func (h *PredictionHandler) GetPrediction(c *gin.Context) {
	id, ok := predictionID(c)
	if !ok {
		badRequest(c, "invalid prediction id")
		return
	}

	output, err := h.predictionUC.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// ListPredictions handles GET /api/v1/predictions
func (h *PredictionHandler) ListPredictions(c *gin.Context) {
	limit, offset := pageParams(c)

	output, err := h.predictionUC.List(c.Request.Context(), limit, offset)
	if err != nil {
		abortWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// GetStats handles GET /api/v1/predictions/stats
func (h *PredictionHandler) GetStats(c *gin.Context) {
	output, err := h.predictionUC.Stats(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}
