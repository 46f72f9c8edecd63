package domain

// SentimentType is the coarse sentiment bucket derived from the average rating.
type SentimentType string

const (
	SentimentVeryPositive SentimentType = "very_positive"
	SentimentPositive     SentimentType = "positive"
	SentimentNeutral      SentimentType = "neutral"
	SentimentNegative     SentimentType = "negative"
	SentimentVeryNegative SentimentType = "very_negative"
)

// Sentiment pairs the sentiment bucket with its display label.
type Sentiment struct {
	Type  SentimentType `json:"type"`
	Label string        `json:"label"`
}

// ReviewMetrics holds the quantitative rating statistics for one product.
type ReviewMetrics struct {
	TotalReviews  int         `json:"total_reviews"`
	AverageRating float64     `json:"average_rating"`
	Distribution  map[int]int `json:"distribution"`
}

// Highlights carries representative sentences from strongly positive and
// strongly negative reviews.
type Highlights struct {
	Pros []string `json:"pros"`
	Cons []string `json:"cons"`
}

// Keyword is a salient term with its occurrence count across all comments.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TimeTrend is the monthly rating trend entry.
type TimeTrend struct {
	Month         string  `json:"month"` // YYYY-MM
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

// AspectScore is the average rating of reviews mentioning one product aspect.
type AspectScore struct {
	Score float64 `json:"score"`
	Count int     `json:"count"`
}

// ReviewInsights is the full structured summary of a product's reviews.
// It is derived entirely from the review list and recomputed on every run.
type ReviewInsights struct {
	Summary        string                 `json:"summary"`
	Highlights     Highlights             `json:"highlights"`
	Sentiment      Sentiment              `json:"sentiment"`
	Keywords       []Keyword              `json:"keywords"`
	TotalReviews   int                    `json:"total_reviews"`
	AverageRating  string                 `json:"average_rating"`
	TimeTrends     []TimeTrend            `json:"time_trends"`
	AspectAnalysis map[string]AspectScore `json:"aspect_analysis"`

	// NarrativeSource names the strategy that produced the free-text part of
	// Summary ("ai", "rules"), or is empty when only the metrics preamble is
	// present.
	NarrativeSource string `json:"narrative_source,omitempty"`
}
