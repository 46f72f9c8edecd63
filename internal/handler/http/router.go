package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/review-insights/internal/service"
	"github.com/utafrali/review-insights/pkg/health"
	"github.com/utafrali/review-insights/pkg/middleware"
)

// NewRouter creates a chi router with all review insights routes registered.
func NewRouter(
	reviewService *service.ReviewService,
	insightService *service.InsightService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("review-insights"))
	r.Use(middleware.Tracing("review-insights"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Review API endpoints (nested under products)
	reviewHandler := NewReviewHandler(reviewService, logger)
	insightHandler := NewInsightHandler(insightService, logger)

	r.Route("/api/v1/products/{productId}/reviews", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", reviewHandler.ListReviews)
		r.Post("/", reviewHandler.CreateReview)
		r.Get("/insights", insightHandler.GetInsights)
	})

	return r
}
