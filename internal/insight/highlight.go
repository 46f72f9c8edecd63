package insight

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/utafrali/review-insights/internal/domain"
)

// ExtractHighlights surfaces one representative sentence each from up to
// MaxHighlights strongly positive (rating >= 4) and strongly negative
// (rating <= 2) reviews. Only reviews with comments longer than
// MinHighlightRunes qualify; a selected review that yields no usable sentence
// is skipped rather than replaced.
func ExtractHighlights(reviews []domain.Review, cfg Config) domain.Highlights {
	var positive, negative []domain.Review
	for _, r := range reviews {
		if utf8.RuneCountInString(r.Body) <= cfg.MinHighlightRunes {
			continue
		}
		switch {
		case r.Rating >= 4:
			positive = append(positive, r)
		case r.Rating <= 2:
			negative = append(negative, r)
		}
	}

	sort.SliceStable(positive, func(i, j int) bool { return positive[i].Rating > positive[j].Rating })
	sort.SliceStable(negative, func(i, j int) bool { return negative[i].Rating < negative[j].Rating })

	return domain.Highlights{
		Pros: pickSentences(positive, cfg),
		Cons: pickSentences(negative, cfg),
	}
}

// pickSentences extracts one sentence from each of the top MaxHighlights
// reviews. A selected review without a usable sentence leaves its slot empty;
// lower-ranked reviews never take its place.
func pickSentences(pool []domain.Review, cfg Config) []string {
	if len(pool) > cfg.MaxHighlights {
		pool = pool[:cfg.MaxHighlights]
	}
	picked := []string{}
	for _, r := range pool {
		if s, ok := firstSentence(r.Body, cfg.MinSentenceRunes); ok {
			picked = append(picked, s)
		}
	}
	return picked
}

// firstSentence returns the first sentence of the comment whose trimmed
// length exceeds minRunes. Sentences are delimited by terminal punctuation.
func firstSentence(comment string, minRunes int) (string, bool) {
	sentences := strings.FieldsFunc(comment, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > minRunes {
			return s, true
		}
	}
	return "", false
}
