package insight

import (
	"time"
)

// Config holds the engine's tuning parameters. The defaults mirror the
// empirically chosen production values; keep them configurable rather than
// treating them as invariants.
type Config struct {
	// MaxHighlights caps pros and cons independently.
	MaxHighlights int

	// MinHighlightRunes is the minimum comment length for a review to be
	// eligible as a highlight source.
	MinHighlightRunes int

	// MinSentenceRunes is the minimum trimmed sentence length for an
	// extracted highlight.
	MinSentenceRunes int

	// MaxKeywords caps the keyword list.
	MaxKeywords int

	// MinTokenRunes is the minimum token length kept during keyword
	// extraction.
	MinTokenRunes int

	// EvidenceLimit caps the number of review comments sent to the text
	// generation service.
	EvidenceLimit int

	// MinEvidenceRunes is the minimum comment length for a review to be
	// included in the evidence set.
	MinEvidenceRunes int

	// GenerateTimeout bounds the external generation call.
	GenerateTimeout time.Duration

	// MinNarrativeRunes rejects degenerate generated narratives shorter
	// than this after cleanup.
	MinNarrativeRunes int

	// ThemeMinCount and ThemeRatio decide when a theme is common within a
	// review pool: hits >= max(ThemeMinCount, ThemeRatio*poolSize).
	ThemeMinCount int
	ThemeRatio    float64
}

// DefaultConfig returns the production engine parameters.
func DefaultConfig() Config {
	return Config{
		MaxHighlights:     3,
		MinHighlightRunes: 20,
		MinSentenceRunes:  10,
		MaxKeywords:       10,
		MinTokenRunes:     3,
		EvidenceLimit:     10,
		MinEvidenceRunes:  20,
		GenerateTimeout:   15 * time.Second,
		MinNarrativeRunes: 20,
		ThemeMinCount:     2,
		ThemeRatio:        0.3,
	}
}
