package dto

import "time"

// FeatureVector is the canonical merged view of a ticker's current signals.
// Numeric fields are always present and finite; unavailable upstream data
// degrades to 0.0 so every downstream stage is total.
type FeatureVector struct {
	Ticker        string            `json:"ticker"`
	Change1D      float64           `json:"change_1d"`
	PERatio       float64           `json:"pe_ratio"`
	DebtToEquity  float64           `json:"debt_to_equity"`
	MarketCap     float64           `json:"market_cap"`
	EPS           float64           `json:"eps"`
	BookValue     float64           `json:"book_value"`
	NewsSentiment float64           `json:"news_sentiment"`
	Headlines     []string          `json:"headlines"`
	Errors        map[string]string `json:"errors,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}

// Vector returns the numeric features in the fixed order shared with the
// model artifact: change_1d, debt_to_equity, pe_ratio, market_cap, eps,
// book_value, news_sentiment.
func (f FeatureVector) Vector() []float64 {
	return []float64{
		f.Change1D,
		f.DebtToEquity,
		f.PERatio,
		f.MarketCap,
		f.EPS,
		f.BookValue,
		f.NewsSentiment,
	}
}
