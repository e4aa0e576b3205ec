package repository

import (
	"context"

	"golang-stock-scorer/internal/entity"

	"gorm.io/gorm"
)

// ScoreStore persists one scoring outcome. The snapshot row and the score
// record are written in a single transaction so training data and history can
// never diverge.
type ScoreStore interface {
	Persist(ctx context.Context, snapshot *entity.Snapshot, record *entity.ScoreRecord) error
}

// NewScoreStore creates a new instance of ScoreStore.
func NewScoreStore(db *gorm.DB) ScoreStore {
	return &scoreStore{db: db}
}

type scoreStore struct {
	db *gorm.DB
}

func (s *scoreStore) Persist(ctx context.Context, snapshot *entity.Snapshot, record *entity.ScoreRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(snapshot).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
}
