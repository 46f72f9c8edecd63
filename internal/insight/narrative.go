package insight

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/utafrali/review-insights/internal/domain"
)

// Narrative generation failures. Each one triggers fallback to the next
// strategy; none of them ever reaches the caller of the engine.
var (
	// ErrNoEvidence means no review comment qualified for the generation
	// prompt, so no external call was made.
	ErrNoEvidence = errors.New("no review comments qualify as evidence")

	// ErrDegenerateOutput means the generation service answered with text
	// too short to be a useful narrative.
	ErrDegenerateOutput = errors.New("generated narrative too short")
)

// NarrativeStrategy produces the free-text portion of a review summary.
// Strategies are tried in order by the Summarizer; the first success wins.
type NarrativeStrategy interface {
	// Name identifies the strategy in logs and metrics.
	Name() string

	// Generate returns the narrative text for the given reviews and their
	// precomputed metrics.
	Generate(ctx context.Context, reviews []domain.Review, metrics domain.ReviewMetrics) (string, error)
}

// RuleNarrative composes a deterministic narrative from theme detection over
// the positive and negative review pools. It never fails and terminates
// every strategy chain.
type RuleNarrative struct {
	lexicon Lexicon
	cfg     Config
}

// NewRuleNarrative creates the rule-based narrative strategy.
func NewRuleNarrative(lex Lexicon, cfg Config) *RuleNarrative {
	return &RuleNarrative{lexicon: lex, cfg: cfg}
}

func (s *RuleNarrative) Name() string { return "rules" }

// Generate composes the narrative from common themes in the positive and
// negative pools plus a closing statement keyed off the average rating.
func (s *RuleNarrative) Generate(_ context.Context, reviews []domain.Review, metrics domain.ReviewMetrics) (string, error) {
	var positive, negative []domain.Review
	for _, r := range reviews {
		switch {
		case r.Rating >= 4:
			positive = append(positive, r)
		case r.Rating <= 2:
			negative = append(negative, r)
		}
	}

	var parts []string

	if themes := s.commonThemes(positive); len(themes) > 0 {
		parts = append(parts, fmt.Sprintf("Khách hàng khen ngợi về %s.", strings.Join(themes, ", ")))
	} else if len(positive) > 0 {
		parts = append(parts, "Phần lớn khách hàng hài lòng với sản phẩm.")
	}

	if themes := s.commonThemes(negative); len(themes) > 0 {
		parts = append(parts, fmt.Sprintf("Một số khách hàng chưa hài lòng về %s.", strings.Join(themes, ", ")))
	} else if len(negative) >= 2 {
		parts = append(parts, "Có một số ý kiến phản ánh chưa tích cực về sản phẩm.")
	}

	switch {
	case metrics.AverageRating >= 4:
		parts = append(parts, "Nhìn chung, đây là sản phẩm được đánh giá cao và đáng để mua.")
	case metrics.AverageRating >= 3:
		parts = append(parts, "Sản phẩm phù hợp với nhu cầu cơ bản của đa số khách hàng.")
	default:
		parts = append(parts, "Bạn nên cân nhắc kỹ và tham khảo thêm ý kiến trước khi mua.")
	}

	return strings.Join(parts, " "), nil
}

// commonThemes returns the labels of themes mentioned by enough reviews in
// the pool, in taxonomy order. A theme is common when at least
// max(ThemeMinCount, ThemeRatio*poolSize) reviews mention one of its keywords.
func (s *RuleNarrative) commonThemes(pool []domain.Review) []string {
	if len(pool) == 0 {
		return nil
	}
	threshold := math.Max(float64(s.cfg.ThemeMinCount), s.cfg.ThemeRatio*float64(len(pool)))

	var labels []string
	for _, theme := range s.lexicon.Themes {
		hits := 0
		for _, r := range pool {
			if r.Body == "" {
				continue
			}
			if matchesAny(strings.ToLower(r.Body), theme.Keywords) {
				hits++
			}
		}
		if float64(hits) >= threshold {
			labels = append(labels, theme.Label)
		}
	}
	return labels
}
