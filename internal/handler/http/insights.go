package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/review-insights/internal/service"
	"github.com/utafrali/review-insights/pkg/httputil"
)

// InsightHandler handles HTTP requests for review insight endpoints.
type InsightHandler struct {
	service *service.InsightService
	logger  *slog.Logger
}

// NewInsightHandler creates a new insight HTTP handler.
func NewInsightHandler(svc *service.InsightService, logger *slog.Logger) *InsightHandler {
	return &InsightHandler{
		service: svc,
		logger:  logger,
	}
}

// GetInsights handles GET /api/v1/products/{productId}/reviews/insights
func (h *InsightHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "product id is required"},
		})
		return
	}

	insights, err := h.service.GetProductSummary(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: insights})
}
