package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ScoreRecord is the per-request score history row backing the history and
// trend endpoints. Unlike Snapshot, MLScore stays NULL when no model was
// loaded, and the full feature/event payloads are kept for inspection.
type ScoreRecord struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Ticker      string         `gorm:"not null;index:idx_score_records_ticker_ts,priority:1" json:"ticker"`
	RuleScore   int            `json:"rule_score"`
	MLScore     *float64       `gorm:"column:ml_score" json:"ml_score"`
	FinalScore  int            `json:"final_score"`
	Features    datatypes.JSON `gorm:"type:jsonb" json:"features"`
	Explanation pq.StringArray `gorm:"type:text[]" json:"explanation"`
	Events      datatypes.JSON `gorm:"type:jsonb" json:"events"`
	Timestamp   time.Time      `gorm:"not null;index:idx_score_records_ticker_ts,priority:2" json:"timestamp"`
}

// TableName specifies the table name for the ScoreRecord model.
func (ScoreRecord) TableName() string {
	return "score_records"
}
