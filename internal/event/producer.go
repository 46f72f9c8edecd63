package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/review-insights/internal/domain"
	pkgkafka "github.com/utafrali/review-insights/pkg/kafka"
)

// Kafka topic constants for review domain events.
const (
	TopicReviewCreated    = "ecommerce.review.created"
	TopicSummaryGenerated = "ecommerce.review.summary_generated"
)

// Aggregate type constants.
const (
	AggregateTypeReview  = "review"
	AggregateTypeProduct = "product"
)

// Source identifier for events originating from this service.
const SourceReviewInsights = "review-insights"

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Title     string `json:"title,omitempty"`
	Body      string `json:"body,omitempty"`
}

// SummaryGeneratedData is the payload for a review.summary_generated event.
// NarrativeSource records which strategy produced the free-text portion.
type SummaryGeneratedData struct {
	ProductID       string `json:"product_id"`
	TotalReviews    int    `json:"total_reviews"`
	AverageRating   string `json:"average_rating"`
	SentimentType   string `json:"sentiment_type"`
	NarrativeSource string `json:"narrative_source"`
}

// Producer publishes review domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the review insights service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Title:     review.Title,
		Body:      review.Body,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.ID, AggregateTypeReview, SourceReviewInsights, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
	)

	return nil
}

// PublishSummaryGenerated publishes a review.summary_generated event after a
// fresh summary is computed for a product.
func (p *Producer) PublishSummaryGenerated(ctx context.Context, productID string, insights *domain.ReviewInsights, narrativeSource string) error {
	data := SummaryGeneratedData{
		ProductID:       productID,
		TotalReviews:    insights.TotalReviews,
		AverageRating:   insights.AverageRating,
		SentimentType:   string(insights.Sentiment.Type),
		NarrativeSource: narrativeSource,
	}

	event, err := pkgkafka.NewEvent(TopicSummaryGenerated, productID, AggregateTypeProduct, SourceReviewInsights, data)
	if err != nil {
		return fmt.Errorf("create review.summary_generated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicSummaryGenerated, event); err != nil {
		return fmt.Errorf("publish review.summary_generated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.summary_generated event",
		slog.String("product_id", productID),
		slog.String("narrative_source", narrativeSource),
	)

	return nil
}
