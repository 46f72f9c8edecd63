package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/review-insights/internal/domain"
	apperrors "github.com/utafrali/review-insights/pkg/errors"
)

// --- Mock Summarizer ---

type mockSummarizer struct {
	mock.Mock
}

func (m *mockSummarizer) Summarize(ctx context.Context, reviews []domain.Review) *domain.ReviewInsights {
	args := m.Called(ctx, reviews)
	return args.Get(0).(*domain.ReviewInsights)
}

func computedInsights() *domain.ReviewInsights {
	return &domain.ReviewInsights{
		Summary:         "Sản phẩm có 3 đánh giá với điểm trung bình 4.3/5.",
		Highlights:      domain.Highlights{Pros: []string{}, Cons: []string{}},
		Sentiment:       domain.Sentiment{Type: domain.SentimentPositive, Label: "Tích cực"},
		Keywords:        []domain.Keyword{},
		TotalReviews:    3,
		AverageRating:   "4.3",
		TimeTrends:      []domain.TimeTrend{},
		AspectAnalysis:  map[string]domain.AspectScore{},
		NarrativeSource: "rules",
	}
}

func newTestInsightService(repo *mockReviewRepository, cache *mockSummaryCache, summarizer *mockSummarizer, producer *mockEventPublisher) *InsightService {
	return NewInsightService(repo, cache, summarizer, producer, 500, newTestLogger())
}

// --- Tests ---

func TestGetProductSummary_CacheHit(t *testing.T) {
	repo := new(mockReviewRepository)
	cache := new(mockSummaryCache)
	summarizer := new(mockSummarizer)
	producer := new(mockEventPublisher)
	svc := newTestInsightService(repo, cache, summarizer, producer)
	ctx := context.Background()

	want := computedInsights()
	cache.On("Get", ctx, "prod-123").Return(want, nil)

	got, err := svc.GetProductSummary(ctx, "prod-123")

	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertNotCalled(t, "ListAll", mock.Anything, mock.Anything, mock.Anything)
	summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestGetProductSummary_CacheMissComputesAndStores(t *testing.T) {
	repo := new(mockReviewRepository)
	cache := new(mockSummaryCache)
	summarizer := new(mockSummarizer)
	producer := new(mockEventPublisher)
	svc := newTestInsightService(repo, cache, summarizer, producer)
	ctx := context.Background()

	reviews := []domain.Review{{ID: "rev-1", Rating: 5}, {ID: "rev-2", Rating: 4}}
	want := computedInsights()

	cache.On("Get", ctx, "prod-123").Return(nil, apperrors.NotFound("review summary", "prod-123"))
	repo.On("ListAll", ctx, "prod-123", 500).Return(reviews, nil)
	summarizer.On("Summarize", ctx, reviews).Return(want)
	cache.On("Set", ctx, "prod-123", want).Return(nil)
	producer.On("PublishSummaryGenerated", ctx, "prod-123", want, "rules").Return(nil)

	got, err := svc.GetProductSummary(ctx, "prod-123")

	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	summarizer.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestGetProductSummary_CacheReadErrorStillComputes(t *testing.T) {
	repo := new(mockReviewRepository)
	cache := new(mockSummaryCache)
	summarizer := new(mockSummarizer)
	producer := new(mockEventPublisher)
	svc := newTestInsightService(repo, cache, summarizer, producer)
	ctx := context.Background()

	want := computedInsights()

	cache.On("Get", ctx, "prod-123").Return(nil, errors.New("redis down"))
	repo.On("ListAll", ctx, "prod-123", 500).Return([]domain.Review{}, nil)
	summarizer.On("Summarize", ctx, []domain.Review{}).Return(want)
	cache.On("Set", ctx, "prod-123", want).Return(errors.New("redis down"))
	producer.On("PublishSummaryGenerated", ctx, "prod-123", want, "rules").Return(nil)

	got, err := svc.GetProductSummary(ctx, "prod-123")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetProductSummary_PublishFailureDoesNotFailRequest(t *testing.T) {
	repo := new(mockReviewRepository)
	cache := new(mockSummaryCache)
	summarizer := new(mockSummarizer)
	producer := new(mockEventPublisher)
	svc := newTestInsightService(repo, cache, summarizer, producer)
	ctx := context.Background()

	want := computedInsights()

	cache.On("Get", ctx, "prod-123").Return(nil, apperrors.NotFound("review summary", "prod-123"))
	repo.On("ListAll", ctx, "prod-123", 500).Return([]domain.Review{}, nil)
	summarizer.On("Summarize", ctx, []domain.Review{}).Return(want)
	cache.On("Set", ctx, "prod-123", want).Return(nil)
	producer.On("PublishSummaryGenerated", ctx, "prod-123", want, "rules").Return(errors.New("kafka down"))

	got, err := svc.GetProductSummary(ctx, "prod-123")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetProductSummary_EmptyNarrativeSourceReportedAsNone(t *testing.T) {
	repo := new(mockReviewRepository)
	cache := new(mockSummaryCache)
	summarizer := new(mockSummarizer)
	producer := new(mockEventPublisher)
	svc := newTestInsightService(repo, cache, summarizer, producer)
	ctx := context.Background()

	want := computedInsights()
	want.NarrativeSource = ""

	cache.On("Get", ctx, "prod-123").Return(nil, apperrors.NotFound("review summary", "prod-123"))
	repo.On("ListAll", ctx, "prod-123", 500).Return([]domain.Review{}, nil)
	summarizer.On("Summarize", ctx, []domain.Review{}).Return(want)
	cache.On("Set", ctx, "prod-123", want).Return(nil)
	producer.On("PublishSummaryGenerated", ctx, "prod-123", want, "none").Return(nil)

	_, err := svc.GetProductSummary(ctx, "prod-123")

	require.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestGetProductSummary_RepositoryError(t *testing.T) {
	repo := new(mockReviewRepository)
	cache := new(mockSummaryCache)
	summarizer := new(mockSummarizer)
	producer := new(mockEventPublisher)
	svc := newTestInsightService(repo, cache, summarizer, producer)
	ctx := context.Background()

	cache.On("Get", ctx, "prod-123").Return(nil, apperrors.NotFound("review summary", "prod-123"))
	repo.On("ListAll", ctx, "prod-123", 500).Return(nil, errors.New("connection refused"))

	_, err := svc.GetProductSummary(ctx, "prod-123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "load reviews for summary")
	summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestGetProductSummary_EmptyProductID(t *testing.T) {
	svc := newTestInsightService(new(mockReviewRepository), new(mockSummaryCache), new(mockSummarizer), new(mockEventPublisher))

	_, err := svc.GetProductSummary(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
