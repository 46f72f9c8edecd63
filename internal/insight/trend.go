package insight

import (
	"sort"

	"github.com/utafrali/review-insights/internal/domain"
)

// AnalyzeTimeTrends buckets reviews by calendar month and computes the
// average rating per bucket. Reviews without a timestamp are excluded.
// Results are sorted ascending by month; the YYYY-MM key makes lexicographic
// order chronological.
func AnalyzeTimeTrends(reviews []domain.Review) []domain.TimeTrend {
	type bucket struct {
		count     int
		ratingSum int
	}
	buckets := make(map[string]*bucket)

	for _, r := range reviews {
		if r.CreatedAt.IsZero() {
			continue
		}
		month := r.CreatedAt.UTC().Format("2006-01")
		b, ok := buckets[month]
		if !ok {
			b = &bucket{}
			buckets[month] = b
		}
		b.count++
		b.ratingSum += r.Rating
	}

	trends := make([]domain.TimeTrend, 0, len(buckets))
	for month, b := range buckets {
		trends = append(trends, domain.TimeTrend{
			Month:         month,
			AverageRating: round1(float64(b.ratingSum) / float64(b.count)),
			ReviewCount:   b.count,
		})
	}

	sort.Slice(trends, func(i, j int) bool { return trends[i].Month < trends[j].Month })
	return trends
}
