package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/review-insights/internal/domain"
	"github.com/utafrali/review-insights/pkg/database"
)

func setupRepo(t *testing.T) (*ReviewRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewReviewRepository(mock)
	return repo, mock
}

func sampleReview() *domain.Review {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Review{
		ID:        "rev-001",
		ProductID: "prod-001",
		UserID:    "user-001",
		Rating:    5,
		Title:     "Rất hài lòng",
		Body:      "Sản phẩm chất lượng tốt, giao hàng nhanh.",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func reviewColumns() []string {
	return []string{"id", "product_id", "user_id", "rating", "title", "body", "created_at", "updated_at"}
}

func reviewListRow(rv *domain.Review, totalCount int) *pgxmock.Rows {
	return pgxmock.NewRows(append(reviewColumns(), "total_count")).
		AddRow(rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Title, rv.Body, rv.CreatedAt, rv.UpdatedAt, totalCount)
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestReviewRepository_Create_Success(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	rv := sampleReview()

	mock.ExpectExec("INSERT INTO product_reviews").
		WithArgs(rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Title, rv.Body, rv.CreatedAt, rv.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), rv)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Create_ExecError(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	rv := sampleReview()

	mock.ExpectExec("INSERT INTO product_reviews").
		WithArgs(rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Title, rv.Body, rv.CreatedAt, rv.UpdatedAt).
		WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), rv)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insert review")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// ListByProductID
// ---------------------------------------------------------------------------

func TestReviewRepository_ListByProductID_Success(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	rv := sampleReview()

	mock.ExpectQuery("SELECT .+ FROM product_reviews WHERE product_id").
		WithArgs(rv.ProductID, 20, 0).
		WillReturnRows(reviewListRow(rv, 42))

	reviews, total, err := repo.ListByProductID(context.Background(), rv.ProductID, 1, 20)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 42, total)
	assert.Equal(t, rv.ID, reviews[0].ID)
	assert.Equal(t, rv.Rating, reviews[0].Rating)
	assert.Equal(t, rv.Body, reviews[0].Body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByProductID_DefaultsAndOffset(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM product_reviews WHERE product_id").
		WithArgs("prod-001", 10, 20).
		WillReturnRows(pgxmock.NewRows(append(reviewColumns(), "total_count")))

	reviews, total, err := repo.ListByProductID(context.Background(), "prod-001", 3, 10)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByProductID_QueryError(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM product_reviews WHERE product_id").
		WithArgs("prod-001", 20, 0).
		WillReturnError(errors.New("connection refused"))

	_, _, err := repo.ListByProductID(context.Background(), "prod-001", 1, 20)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "list reviews")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// ListAll
// ---------------------------------------------------------------------------

func TestReviewRepository_ListAll_Success(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	rv := sampleReview()

	mock.ExpectQuery("SELECT .+ FROM product_reviews WHERE product_id").
		WithArgs(rv.ProductID, 500).
		WillReturnRows(pgxmock.NewRows(reviewColumns()).
			AddRow(rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Title, rv.Body, rv.CreatedAt, rv.UpdatedAt))

	reviews, err := repo.ListAll(context.Background(), rv.ProductID, 500)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, rv.Body, reviews[0].Body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListAll_DefaultLimit(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM product_reviews WHERE product_id").
		WithArgs("prod-001", defaultAnalysisLimit).
		WillReturnRows(pgxmock.NewRows(reviewColumns()))

	reviews, err := repo.ListAll(context.Background(), "prod-001", 0)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// GetSummary
// ---------------------------------------------------------------------------

func TestReviewRepository_GetSummary_RoundsAverage(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("prod-001").
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(4.333333, 3))

	summary, err := repo.GetSummary(context.Background(), "prod-001")
	require.NoError(t, err)
	assert.InDelta(t, 4.3, summary.AverageRating, 1e-9)
	assert.Equal(t, 3, summary.TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetSummary_NoReviews(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("prod-001").
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(0.0, 0))

	summary, err := repo.GetSummary(context.Background(), "prod-001")
	require.NoError(t, err)
	assert.Zero(t, summary.AverageRating)
	assert.Zero(t, summary.TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
