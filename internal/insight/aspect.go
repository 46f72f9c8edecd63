package insight

import (
	"strings"

	"github.com/utafrali/review-insights/internal/domain"
)

// AnalyzeAspects attributes review ratings to product aspects by
// case-insensitive substring match against each aspect's keyword list. A
// single review may contribute to several aspects. Aspects with no matching
// review are omitted from the result.
func AnalyzeAspects(reviews []domain.Review, lex Lexicon) map[string]domain.AspectScore {
	type pool struct {
		count     int
		ratingSum int
	}
	pools := make(map[string]*pool, len(lex.Aspects))

	for _, r := range reviews {
		if r.Body == "" {
			continue
		}
		comment := strings.ToLower(r.Body)
		for _, aspect := range lex.Aspects {
			if !matchesAny(comment, aspect.Keywords) {
				continue
			}
			p, ok := pools[aspect.Name]
			if !ok {
				p = &pool{}
				pools[aspect.Name] = p
			}
			p.count++
			p.ratingSum += r.Rating
		}
	}

	scores := make(map[string]domain.AspectScore, len(pools))
	for name, p := range pools {
		scores[name] = domain.AspectScore{
			Score: round1(float64(p.ratingSum) / float64(p.count)),
			Count: p.count,
		}
	}
	return scores
}

func matchesAny(comment string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(comment, kw) {
			return true
		}
	}
	return false
}
