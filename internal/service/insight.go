package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/utafrali/review-insights/internal/domain"
	"github.com/utafrali/review-insights/internal/repository"
	apperrors "github.com/utafrali/review-insights/pkg/errors"
)

var (
	summaryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "review_summary_generation_duration_seconds",
		Help:    "Time spent computing a review summary from scratch",
		Buckets: prometheus.DefBuckets,
	})

	summaryNarrativeSource = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_summary_narrative_source_total",
			Help: "Summaries computed, partitioned by narrative source",
		},
		[]string{"source"},
	)

	summaryCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_summary_cache_requests_total",
			Help: "Summary cache lookups partitioned by outcome",
		},
		[]string{"result"},
	)
)

// Summarizer abstracts the analysis engine.
type Summarizer interface {
	Summarize(ctx context.Context, reviews []domain.Review) *domain.ReviewInsights
}

// InsightService computes and caches review summaries for products.
type InsightService struct {
	repo          repository.ReviewRepository
	cache         SummaryCache
	summarizer    Summarizer
	producer      EventPublisher
	logger        *slog.Logger
	analysisLimit int
}

// NewInsightService creates a new insight service. analysisLimit caps how
// many recent reviews feed the analysis pipeline; zero means the repository
// default.
func NewInsightService(
	repo repository.ReviewRepository,
	cache SummaryCache,
	summarizer Summarizer,
	producer EventPublisher,
	analysisLimit int,
	logger *slog.Logger,
) *InsightService {
	return &InsightService{
		repo:          repo,
		cache:         cache,
		summarizer:    summarizer,
		producer:      producer,
		logger:        logger,
		analysisLimit: analysisLimit,
	}
}

// GetProductSummary returns the review summary for a product, serving from
// cache when possible. A cache miss triggers a full recomputation from the
// stored reviews.
func (s *InsightService) GetProductSummary(ctx context.Context, productID string) (*domain.ReviewInsights, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product_id is required")
	}

	cached, err := s.cache.Get(ctx, productID)
	if err == nil {
		summaryCacheRequests.WithLabelValues("hit").Inc()
		s.logger.DebugContext(ctx, "summary cache hit", slog.String("product_id", productID))
		return cached, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		// A broken cache must not take the endpoint down; recompute instead.
		summaryCacheRequests.WithLabelValues("error").Inc()
		s.logger.WarnContext(ctx, "summary cache read failed",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	} else {
		summaryCacheRequests.WithLabelValues("miss").Inc()
	}

	reviews, err := s.repo.ListAll(ctx, productID, s.analysisLimit)
	if err != nil {
		return nil, fmt.Errorf("load reviews for summary: %w", err)
	}

	start := time.Now()
	insights := s.summarizer.Summarize(ctx, reviews)
	summaryDuration.Observe(time.Since(start).Seconds())

	source := insights.NarrativeSource
	if source == "" {
		source = "none"
	}
	summaryNarrativeSource.WithLabelValues(source).Inc()

	if err := s.cache.Set(ctx, productID, insights); err != nil {
		s.logger.WarnContext(ctx, "failed to cache summary",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishSummaryGenerated(ctx, productID, insights, source); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.summary_generated event",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review summary generated",
		slog.String("product_id", productID),
		slog.Int("total_reviews", insights.TotalReviews),
		slog.String("narrative_source", source),
	)

	return insights, nil
}
