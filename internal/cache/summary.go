package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/review-insights/internal/domain"
	apperrors "github.com/utafrali/review-insights/pkg/errors"
)

const keyPrefix = "review-insights:"

// SummaryCache stores computed review summaries in Redis so repeated insight
// requests for the same product skip the analysis pipeline.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a Redis-backed summary cache with the given TTL.
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a cached summary by product ID.
func (c *SummaryCache) Get(ctx context.Context, productID string) (*domain.ReviewInsights, error) {
	key := keyPrefix + productID

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("review summary", productID)
		}
		return nil, fmt.Errorf("redis get summary: %w", err)
	}

	var insights domain.ReviewInsights
	if err := json.Unmarshal(data, &insights); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w", err)
	}

	return &insights, nil
}

// Set stores a summary with the configured TTL.
func (c *SummaryCache) Set(ctx context.Context, productID string, insights *domain.ReviewInsights) error {
	key := keyPrefix + productID

	data, err := json.Marshal(insights)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set summary: %w", err)
	}

	return nil
}

// Invalidate removes a product's cached summary, typically after a new review
// arrives.
func (c *SummaryCache) Invalidate(ctx context.Context, productID string) error {
	key := keyPrefix + productID

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del summary: %w", err)
	}

	return nil
}
