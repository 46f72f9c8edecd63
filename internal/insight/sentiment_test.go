package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/utafrali/review-insights/internal/domain"
)

func TestClassifySentiment_Thresholds(t *testing.T) {
	tests := []struct {
		average float64
		want    domain.SentimentType
		label   string
	}{
		{5.0, domain.SentimentVeryPositive, "Rất tích cực"},
		{4.5, domain.SentimentVeryPositive, "Rất tích cực"},
		{4.49, domain.SentimentPositive, "Tích cực"},
		{3.5, domain.SentimentPositive, "Tích cực"},
		{3.49, domain.SentimentNeutral, "Trung bình"},
		{2.5, domain.SentimentNeutral, "Trung bình"},
		{2.49, domain.SentimentNegative, "Tiêu cực"},
		{1.5, domain.SentimentNegative, "Tiêu cực"},
		{1.49, domain.SentimentVeryNegative, "Rất tiêu cực"},
		{1.0, domain.SentimentVeryNegative, "Rất tiêu cực"},
	}

	for _, tt := range tests {
		got := ClassifySentiment(tt.average)
		assert.Equal(t, tt.want, got.Type, "average %.2f", tt.average)
		assert.Equal(t, tt.label, got.Label, "average %.2f", tt.average)
	}
}
