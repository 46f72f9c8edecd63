package insight

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/utafrali/review-insights/internal/domain"
)

const tokenPunctuation = ".,!?;:\"'()[]{}…“”‘’-_/\\*~"

// ExtractKeywords returns the most frequent salient terms across all review
// comments: lowercased, punctuation-stripped, whitespace-tokenized, with
// short tokens, stopwords, and pure numbers discarded. Only terms appearing
// more than once survive; the top MaxKeywords are returned in descending
// count order, ties broken by first appearance.
func ExtractKeywords(reviews []domain.Review, lex Lexicon, cfg Config) []domain.Keyword {
	counts := make(map[string]int)
	var order []string

	for _, r := range reviews {
		if r.Body == "" {
			continue
		}
		text := strings.ToLower(r.Body)
		text = strings.Map(func(c rune) rune {
			if strings.ContainsRune(tokenPunctuation, c) {
				return ' '
			}
			return c
		}, text)

		for _, token := range strings.Fields(text) {
			if utf8.RuneCountInString(token) < cfg.MinTokenRunes {
				continue
			}
			if _, stop := lex.Stopwords[token]; stop {
				continue
			}
			if isNumeric(token) {
				continue
			}
			if counts[token] == 0 {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	keywords := []domain.Keyword{}
	for _, word := range order {
		if counts[word] > 1 {
			keywords = append(keywords, domain.Keyword{Word: word, Count: counts[word]})
		}
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Count > keywords[j].Count
	})

	if len(keywords) > cfg.MaxKeywords {
		keywords = keywords[:cfg.MaxKeywords]
	}
	return keywords
}

func isNumeric(token string) bool {
	for _, c := range token {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}
