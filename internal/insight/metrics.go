package insight

import (
	"math"

	"github.com/utafrali/review-insights/internal/domain"
)

// round1 rounds to one decimal place, matching how ratings are displayed.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CalculateMetrics computes the rating distribution and average for the given
// reviews. All five buckets are always present in the distribution, and their
// values sum to the review count. The average is 0 for an empty input.
func CalculateMetrics(reviews []domain.Review) domain.ReviewMetrics {
	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}

	sum := 0
	for _, r := range reviews {
		distribution[r.Rating]++
		sum += r.Rating
	}

	avg := 0.0
	if len(reviews) > 0 {
		avg = round1(float64(sum) / float64(len(reviews)))
	}

	return domain.ReviewMetrics{
		TotalReviews:  len(reviews),
		AverageRating: avg,
		Distribution:  distribution,
	}
}
