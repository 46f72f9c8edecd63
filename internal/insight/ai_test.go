package insight

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/review-insights/internal/domain"
)

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func substantiveReviews() []domain.Review {
	return []domain.Review{
		{Rating: 5, Body: "Sản phẩm chất lượng rất tốt, dùng hơn một tháng vẫn ổn."},
		{Rating: 2, Body: "Giao hàng chậm hơn dự kiến, đóng gói cũng sơ sài quá."},
	}
}

func TestAINarrative_NoEvidenceSkipsGeneration(t *testing.T) {
	called := false
	gen := generatorFunc(func(context.Context, string) (string, error) {
		called = true
		return "", nil
	})
	reviews := []domain.Review{
		{Rating: 5, Body: "Tốt"},
		{Rating: 4, Body: ""},
	}

	_, err := NewAINarrative(gen, DefaultConfig()).Generate(context.Background(), reviews, CalculateMetrics(reviews))

	assert.ErrorIs(t, err, ErrNoEvidence)
	assert.False(t, called)
}

func TestAINarrative_CleansGeneratedText(t *testing.T) {
	gen := generatorFunc(func(context.Context, string) (string, error) {
		return "  **Tóm tắt:** Khách hàng đánh giá\ncao chất lượng   sản phẩm.\n", nil
	})
	reviews := substantiveReviews()

	narrative, err := NewAINarrative(gen, DefaultConfig()).Generate(context.Background(), reviews, CalculateMetrics(reviews))

	require.NoError(t, err)
	assert.Equal(t, "Khách hàng đánh giá cao chất lượng sản phẩm.", narrative)
}

func TestAINarrative_RejectsDegenerateOutput(t *testing.T) {
	gen := generatorFunc(func(context.Context, string) (string, error) {
		return "Tốt.", nil
	})
	reviews := substantiveReviews()

	_, err := NewAINarrative(gen, DefaultConfig()).Generate(context.Background(), reviews, CalculateMetrics(reviews))

	assert.ErrorIs(t, err, ErrDegenerateOutput)
}

func TestAINarrative_TimesOut(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	cfg := DefaultConfig()
	cfg.GenerateTimeout = 10 * time.Millisecond
	reviews := substantiveReviews()

	_, err := NewAINarrative(gen, cfg).Generate(context.Background(), reviews, CalculateMetrics(reviews))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAINarrative_PropagatesGeneratorError(t *testing.T) {
	genErr := errors.New("upstream unavailable")
	gen := generatorFunc(func(context.Context, string) (string, error) {
		return "", genErr
	})
	reviews := substantiveReviews()

	_, err := NewAINarrative(gen, DefaultConfig()).Generate(context.Background(), reviews, CalculateMetrics(reviews))

	assert.ErrorIs(t, err, genErr)
}

func TestAINarrative_PromptCarriesStatsAndEvidence(t *testing.T) {
	var prompt string
	gen := generatorFunc(func(_ context.Context, p string) (string, error) {
		prompt = p
		return "Khách hàng nhìn chung hài lòng với sản phẩm này.", nil
	})
	reviews := substantiveReviews()

	_, err := NewAINarrative(gen, DefaultConfig()).Generate(context.Background(), reviews, CalculateMetrics(reviews))

	require.NoError(t, err)
	assert.Contains(t, prompt, "Tổng số đánh giá: 2")
	assert.Contains(t, prompt, "Điểm trung bình: 3.5/5")
	assert.Contains(t, prompt, "[5 sao] Sản phẩm chất lượng rất tốt")
	assert.Contains(t, prompt, "[2 sao] Giao hàng chậm hơn dự kiến")
}

func TestAINarrative_EvidenceCapped(t *testing.T) {
	var prompt string
	gen := generatorFunc(func(_ context.Context, p string) (string, error) {
		prompt = p
		return "Khách hàng nhìn chung hài lòng với sản phẩm này.", nil
	})

	var reviews []domain.Review
	for i := 0; i < 15; i++ {
		reviews = append(reviews, domain.Review{
			Rating: 5,
			Body:   "Một đánh giá đủ dài để được chọn làm dẫn chứng.",
		})
	}
	cfg := DefaultConfig()

	_, err := NewAINarrative(gen, cfg).Generate(context.Background(), reviews, CalculateMetrics(reviews))

	require.NoError(t, err)
	assert.Equal(t, cfg.EvidenceLimit, strings.Count(prompt, "- [5 sao]"))
}
