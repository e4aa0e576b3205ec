package repository

import (
	"context"

	"golang-stock-scorer/internal/entity"

	"gorm.io/gorm"
)

// ScoreRecordRepository defines the read interface for the score history
// table. Writes go through ScoreStore.
type ScoreRecordRepository interface {
	FindRecent(ctx context.Context, ticker string, limit int) ([]entity.ScoreRecord, error)
	FindRecentFinalScores(ctx context.Context, ticker string, limit int) ([]int, error)
}

// NewScoreRecordRepository creates a new instance of ScoreRecordRepository.
func NewScoreRecordRepository(db *gorm.DB) ScoreRecordRepository {
	return &scoreRecordRepository{db: db}
}

type scoreRecordRepository struct {
	db *gorm.DB
}

func (r *scoreRecordRepository) FindRecent(ctx context.Context, ticker string, limit int) ([]entity.ScoreRecord, error) {
	var records []entity.ScoreRecord
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("timestamp DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// FindRecentFinalScores returns up to limit final scores for the ticker,
// most recent first.
func (r *scoreRecordRepository) FindRecentFinalScores(ctx context.Context, ticker string, limit int) ([]int, error) {
	var scores []int
	err := r.db.WithContext(ctx).
		Model(&entity.ScoreRecord{}).
		Where("ticker = ?", ticker).
		Order("timestamp DESC").
		Limit(limit).
		Pluck("final_score", &scores).Error
	return scores, err
}
