package insight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/review-insights/internal/domain"
)

func TestRuleNarrative_PraisesCommonPositiveThemes(t *testing.T) {
	reviews := []domain.Review{
		{Rating: 5, Body: "Chất lượng tuyệt vời, rất bền."},
		{Rating: 5, Body: "Chất lượng xứng đáng từng đồng."},
		{Rating: 4, Body: "Hoàn thiện tốt, không chê vào đâu được."},
	}
	metrics := CalculateMetrics(reviews)

	narrative, err := NewRuleNarrative(DefaultLexicon(), DefaultConfig()).Generate(context.Background(), reviews, metrics)

	require.NoError(t, err)
	assert.Contains(t, narrative, "Khách hàng khen ngợi về chất lượng.")
	assert.Contains(t, narrative, "Nhìn chung, đây là sản phẩm được đánh giá cao và đáng để mua.")
}

func TestRuleNarrative_GenericPraiseWhenNoThemeIsCommon(t *testing.T) {
	reviews := []domain.Review{
		{Rating: 5, Body: "Ưng lắm nha mọi người."},
		{Rating: 4, Body: "Ổn áp, sẽ quay lại."},
	}
	metrics := CalculateMetrics(reviews)

	narrative, err := NewRuleNarrative(DefaultLexicon(), DefaultConfig()).Generate(context.Background(), reviews, metrics)

	require.NoError(t, err)
	assert.Contains(t, narrative, "Phần lớn khách hàng hài lòng với sản phẩm.")
}

func TestRuleNarrative_CallsOutNegativeThemes(t *testing.T) {
	reviews := []domain.Review{
		{Rating: 1, Body: "Giao quá chậm, chờ cả tuần."},
		{Rating: 2, Body: "Ship trễ hẹn, rất bực mình."},
		{Rating: 2, Body: "Vận chuyển ẩu, hộp méo mó."},
	}
	metrics := CalculateMetrics(reviews)

	narrative, err := NewRuleNarrative(DefaultLexicon(), DefaultConfig()).Generate(context.Background(), reviews, metrics)

	require.NoError(t, err)
	assert.Contains(t, narrative, "Một số khách hàng chưa hài lòng về giao hàng")
	assert.Contains(t, narrative, "Bạn nên cân nhắc kỹ và tham khảo thêm ý kiến trước khi mua.")
}

func TestRuleNarrative_GenericComplaintNeedsTwoNegatives(t *testing.T) {
	one := []domain.Review{
		{Rating: 5, Body: "Mọi thứ đều vừa ý."},
		{Rating: 1, Body: "Không như kỳ vọng chút nào."},
	}
	narrative, err := NewRuleNarrative(DefaultLexicon(), DefaultConfig()).Generate(context.Background(), one, CalculateMetrics(one))
	require.NoError(t, err)
	assert.NotContains(t, narrative, "Có một số ý kiến phản ánh chưa tích cực về sản phẩm.")

	two := append(one, domain.Review{Rating: 2, Body: "Thất vọng thật sự."})
	narrative, err = NewRuleNarrative(DefaultLexicon(), DefaultConfig()).Generate(context.Background(), two, CalculateMetrics(two))
	require.NoError(t, err)
	assert.Contains(t, narrative, "Có một số ý kiến phản ánh chưa tích cực về sản phẩm.")
}

func TestRuleNarrative_ClosingFollowsAverage(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		closing string
	}{
		{"high", []int{5, 5, 4, 4}, "Nhìn chung, đây là sản phẩm được đánh giá cao và đáng để mua."},
		{"middle", []int{3, 3, 4}, "Sản phẩm phù hợp với nhu cầu cơ bản của đa số khách hàng."},
		{"low", []int{1, 2, 3}, "Bạn nên cân nhắc kỹ và tham khảo thêm ý kiến trước khi mua."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := ratedReviews(tt.ratings...)
			narrative, err := NewRuleNarrative(DefaultLexicon(), DefaultConfig()).Generate(context.Background(), reviews, CalculateMetrics(reviews))
			require.NoError(t, err)
			assert.Contains(t, narrative, tt.closing)
		})
	}
}

func TestRuleNarrative_NeutralOnlyReviewsStillProduceClosing(t *testing.T) {
	reviews := []domain.Review{
		{Rating: 3, Body: "Tạm được."},
		{Rating: 3, Body: "Bình thường."},
	}

	narrative, err := NewRuleNarrative(DefaultLexicon(), DefaultConfig()).Generate(context.Background(), reviews, CalculateMetrics(reviews))

	require.NoError(t, err)
	assert.Equal(t, "Sản phẩm phù hợp với nhu cầu cơ bản của đa số khách hàng.", narrative)
}
