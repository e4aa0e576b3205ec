package entity

import (
	"time"
)

// Snapshot is one persisted scoring observation. Rows are append-only and
// double as the training set for the ML model, so numeric columns are always
// populated (0 instead of NULL).
type Snapshot struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Ts            time.Time `gorm:"not null;index:idx_snapshots_ticker_ts,priority:2" json:"ts"`
	Ticker        string    `gorm:"not null;index:idx_snapshots_ticker_ts,priority:1" json:"ticker"`
	Change1D      float64   `gorm:"column:change_1d" json:"change_1d"`
	DebtToEquity  float64   `json:"debt_to_equity"`
	PERatio       float64   `gorm:"column:pe_ratio" json:"pe_ratio"`
	MarketCap     float64   `json:"market_cap"`
	EPS           float64   `gorm:"column:eps" json:"eps"`
	BookValue     float64   `json:"book_value"`
	NewsSentiment float64   `json:"news_sentiment"`
	RuleScore     float64   `json:"rule_score"`
	MLScore       float64   `gorm:"column:ml_score" json:"ml_score"`
	FinalScore    float64   `json:"final_score"`
}

// TableName specifies the table name for the Snapshot model.
func (Snapshot) TableName() string {
	return "snapshots"
}
