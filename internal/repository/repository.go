package repository

import (
	"context"

	"github.com/utafrali/review-insights/internal/domain"
)

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// Create inserts a new review into the store.
	Create(ctx context.Context, review *domain.Review) error

	// ListByProductID returns paginated reviews for a product along with the total count.
	ListByProductID(ctx context.Context, productID string, page, perPage int) ([]domain.Review, int, error)

	// ListAll returns up to limit most recent reviews for a product for analysis.
	ListAll(ctx context.Context, productID string, limit int) ([]domain.Review, error)

	// GetSummary returns the average rating and total count of reviews for a product.
	GetSummary(ctx context.Context, productID string) (*domain.ReviewSummary, error)
}
