package insight

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/utafrali/review-insights/internal/domain"
)

// TextGenerator is the external natural-language generation dependency of
// the AI-backed strategy.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// AINarrative asks an external generation service for the narrative, feeding
// it the rating statistics plus an evidence set of substantive comments.
// Every failure mode (no evidence, transport error, timeout, degenerate
// output) surfaces as an error so the Summarizer can fall back.
type AINarrative struct {
	generator TextGenerator
	cfg       Config
}

// NewAINarrative creates the AI-backed narrative strategy.
func NewAINarrative(generator TextGenerator, cfg Config) *AINarrative {
	return &AINarrative{generator: generator, cfg: cfg}
}

func (s *AINarrative) Name() string { return "ai" }

// Generate builds the prompt, races the external call against the configured
// timeout, and validates the cleaned response. A late response from an
// abandoned call is discarded.
func (s *AINarrative) Generate(ctx context.Context, reviews []domain.Review, metrics domain.ReviewMetrics) (string, error) {
	evidence := s.selectEvidence(reviews)
	if len(evidence) == 0 {
		return "", ErrNoEvidence
	}

	prompt := buildPrompt(evidence, metrics)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.GenerateTimeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	// Buffered so the goroutine can finish after a timeout without leaking;
	// the late result is simply never read.
	resCh := make(chan result, 1)
	go func() {
		text, err := s.generator.GenerateText(ctx, prompt)
		resCh <- result{text: text, err: err}
	}()

	var raw string
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("generate narrative: %w", ctx.Err())
	case res := <-resCh:
		if res.err != nil {
			return "", fmt.Errorf("generate narrative: %w", res.err)
		}
		raw = res.text
	}

	narrative := cleanNarrative(raw)
	if utf8.RuneCountInString(narrative) < s.cfg.MinNarrativeRunes {
		return "", ErrDegenerateOutput
	}
	return narrative, nil
}

// selectEvidence picks up to EvidenceLimit reviews with substantive comments.
func (s *AINarrative) selectEvidence(reviews []domain.Review) []domain.Review {
	var evidence []domain.Review
	for _, r := range reviews {
		if utf8.RuneCountInString(r.Body) > s.cfg.MinEvidenceRunes {
			evidence = append(evidence, r)
			if len(evidence) == s.cfg.EvidenceLimit {
				break
			}
		}
	}
	return evidence
}

func buildPrompt(evidence []domain.Review, metrics domain.ReviewMetrics) string {
	var b strings.Builder
	b.WriteString("Bạn là trợ lý phân tích đánh giá sản phẩm cho một trang thương mại điện tử.\n")
	b.WriteString("Hãy viết một đoạn tóm tắt ngắn (2-3 câu, tiếng Việt) về cảm nhận chung của khách hàng.\n")
	b.WriteString("Chỉ trả về đoạn tóm tắt, không thêm tiêu đề hay định dạng.\n\n")

	fmt.Fprintf(&b, "Tổng số đánh giá: %d\n", metrics.TotalReviews)
	fmt.Fprintf(&b, "Điểm trung bình: %.1f/5\n", metrics.AverageRating)
	b.WriteString("Phân bố điểm:\n")
	for star := 5; star >= 1; star-- {
		fmt.Fprintf(&b, "  %d sao: %d\n", star, metrics.Distribution[star])
	}

	b.WriteString("\nMột số đánh giá tiêu biểu:\n")
	for _, r := range evidence {
		fmt.Fprintf(&b, "- [%d sao] %s\n", r.Rating, r.Body)
	}

	return b.String()
}

// cleanNarrative normalizes the raw model response: trims, strips bold
// markers, collapses all whitespace runs (including newlines) into single
// spaces, and removes a leading summary label if the model echoed one.
func cleanNarrative(raw string) string {
	text := strings.ReplaceAll(raw, "**", "")
	text = strings.Join(strings.Fields(text), " ")

	for _, label := range []string{"Tóm tắt:", "Tóm tắt :", "Summary:"} {
		if len(text) >= len(label) && strings.EqualFold(text[:len(label)], label) {
			text = strings.TrimSpace(text[len(label):])
			break
		}
	}
	return text
}
