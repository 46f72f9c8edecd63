package insight

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/utafrali/review-insights/internal/domain"
)

const emptySummary = "Chưa có đánh giá nào cho sản phẩm này."

// Summarizer runs the full analysis pipeline over one product's reviews and
// assembles the structured summary. It never returns an error: narrative
// failures fall back through the strategy chain, and anything unexpected is
// converted into a minimal deterministic summary.
type Summarizer struct {
	cfg        Config
	lexicon    Lexicon
	strategies []NarrativeStrategy
	logger     *slog.Logger
}

// NewSummarizer creates a summarizer that tries the given narrative
// strategies in order. Callers should place the rule-based strategy last; if
// no strategies are supplied, a default rule-based one is appended so the
// chain always terminates with a strategy that cannot fail.
func NewSummarizer(cfg Config, lex Lexicon, strategies []NarrativeStrategy, logger *slog.Logger) *Summarizer {
	if len(strategies) == 0 {
		strategies = []NarrativeStrategy{NewRuleNarrative(lex, cfg)}
	}
	return &Summarizer{
		cfg:        cfg,
		lexicon:    lex,
		strategies: strategies,
		logger:     logger,
	}
}

// Summarize computes the full review summary. The returned value is always
// valid and complete; the method has no error path by contract.
func (s *Summarizer) Summarize(ctx context.Context, reviews []domain.Review) (insights *domain.ReviewInsights) {
	if len(reviews) == 0 {
		return emptyInsights()
	}

	metrics := CalculateMetrics(reviews)
	sentiment := ClassifySentiment(metrics.AverageRating)

	defer func() {
		if rec := recover(); rec != nil {
			s.logger.ErrorContext(ctx, "summary pipeline panic, returning minimal summary",
				slog.Any("panic", rec),
			)
			insights = s.minimalInsights(metrics, sentiment)
		}
	}()

	var (
		highlights domain.Highlights
		keywords   []domain.Keyword
		trends     []domain.TimeTrend
		aspects    map[string]domain.AspectScore
	)

	// The four analysis stages are independent and read-only over the
	// review slice. A panic in any of them resurfaces from Wait and is
	// handled by the deferred recover above.
	var g errgroup.Group
	g.Go(func() error { highlights = ExtractHighlights(reviews, s.cfg); return nil })
	g.Go(func() error { keywords = ExtractKeywords(reviews, s.lexicon, s.cfg); return nil })
	g.Go(func() error { trends = AnalyzeTimeTrends(reviews); return nil })
	g.Go(func() error { aspects = AnalyzeAspects(reviews, s.lexicon); return nil })
	_ = g.Wait()

	narrative, source := s.generateNarrative(ctx, reviews, metrics)

	return &domain.ReviewInsights{
		Summary:         composeSummary(metrics, narrative),
		Highlights:      highlights,
		Sentiment:       sentiment,
		Keywords:        keywords,
		TotalReviews:    metrics.TotalReviews,
		AverageRating:   formatAverage(metrics),
		TimeTrends:      trends,
		AspectAnalysis:  aspects,
		NarrativeSource: source,
	}
}

// generateNarrative tries each strategy in order and returns the first
// successful narrative along with the strategy name. The rule-based tail
// cannot fail, but if every strategy somehow errors the empty narrative still
// yields a valid summary via the metrics preamble.
func (s *Summarizer) generateNarrative(ctx context.Context, reviews []domain.Review, metrics domain.ReviewMetrics) (string, string) {
	for _, strategy := range s.strategies {
		narrative, err := strategy.Generate(ctx, reviews, metrics)
		if err != nil {
			s.logger.WarnContext(ctx, "narrative strategy failed, falling back",
				slog.String("strategy", strategy.Name()),
				slog.String("error", err.Error()),
			)
			continue
		}
		return narrative, strategy.Name()
	}
	return "", ""
}

// composeSummary prepends the deterministic metrics preamble so even a
// degenerate narrative is embedded in an informative summary.
func composeSummary(metrics domain.ReviewMetrics, narrative string) string {
	positive := metrics.Distribution[4] + metrics.Distribution[5]
	percent := int(math.Round(float64(positive) / float64(metrics.TotalReviews) * 100))

	preamble := fmt.Sprintf(
		"Sản phẩm có %d đánh giá với điểm trung bình %.1f/5. %d%% khách hàng đánh giá tích cực (4-5 sao).",
		metrics.TotalReviews, metrics.AverageRating, percent,
	)

	if narrative == "" {
		return preamble
	}
	return preamble + " " + strings.TrimSpace(narrative)
}

// minimalInsights is the last-resort result when a stage panics: metrics and
// sentiment survive, the richer sections come back empty but well-formed.
func (s *Summarizer) minimalInsights(metrics domain.ReviewMetrics, sentiment domain.Sentiment) *domain.ReviewInsights {
	return &domain.ReviewInsights{
		Summary:        composeSummary(metrics, ""),
		Highlights:     domain.Highlights{Pros: []string{}, Cons: []string{}},
		Sentiment:      sentiment,
		Keywords:       []domain.Keyword{},
		TotalReviews:   metrics.TotalReviews,
		AverageRating:  formatAverage(metrics),
		TimeTrends:     []domain.TimeTrend{},
		AspectAnalysis: map[string]domain.AspectScore{},
	}
}

func emptyInsights() *domain.ReviewInsights {
	return &domain.ReviewInsights{
		Summary:        emptySummary,
		Highlights:     domain.Highlights{Pros: []string{}, Cons: []string{}},
		Sentiment:      domain.Sentiment{Type: domain.SentimentNeutral, Label: "Trung bình"},
		Keywords:       []domain.Keyword{},
		TotalReviews:   0,
		AverageRating:  "0",
		TimeTrends:     []domain.TimeTrend{},
		AspectAnalysis: map[string]domain.AspectScore{},
	}
}

func formatAverage(metrics domain.ReviewMetrics) string {
	if metrics.TotalReviews == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", metrics.AverageRating)
}
