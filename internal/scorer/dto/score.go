package dto

import "time"

// Impact classifies the expected effect of a headline.
type Impact string

const (
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
	ImpactPositive Impact = "positive"
)

// Entity is one named entity extracted from a headline.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Event is one classified headline.
type Event struct {
	Headline  string   `json:"headline"`
	Entities  []Entity `json:"entities"`
	Sentiment float64  `json:"sentiment"`
	Impact    Impact   `json:"impact"`
}

// ScoreResult is the scoring contract returned to every caller.
type ScoreResult struct {
	Ticker              string             `json:"ticker"`
	RuleScore           int                `json:"rule_score"`
	MLScore             *float64           `json:"ml_score"`
	FinalScore          int                `json:"final_score"`
	Explanation         []string           `json:"explanation"`
	MLFeatureImportance map[string]float64 `json:"ml_feature_importance"`
	Events              []Event            `json:"events"`
	Features            FeatureVector      `json:"features"`
	Timestamp           time.Time          `json:"timestamp"`
}

// ScoreRequest is the body of POST /api/v1/scores. A single "ticker" string
// is accepted as a convenience alias for a one-element "tickers" list.
type ScoreRequest struct {
	Ticker  string   `json:"ticker"`
	Tickers []string `json:"tickers"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
