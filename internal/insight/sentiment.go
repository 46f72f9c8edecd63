package insight

import (
	"github.com/utafrali/review-insights/internal/domain"
)

// ClassifySentiment maps an average rating to its sentiment bucket. Lower
// bounds are inclusive: 4.5 is very_positive, 4.49 is positive.
func ClassifySentiment(averageRating float64) domain.Sentiment {
	switch {
	case averageRating >= 4.5:
		return domain.Sentiment{Type: domain.SentimentVeryPositive, Label: "Rất tích cực"}
	case averageRating >= 3.5:
		return domain.Sentiment{Type: domain.SentimentPositive, Label: "Tích cực"}
	case averageRating >= 2.5:
		return domain.Sentiment{Type: domain.SentimentNeutral, Label: "Trung bình"}
	case averageRating >= 1.5:
		return domain.Sentiment{Type: domain.SentimentNegative, Label: "Tiêu cực"}
	default:
		return domain.Sentiment{Type: domain.SentimentVeryNegative, Label: "Rất tiêu cực"}
	}
}
