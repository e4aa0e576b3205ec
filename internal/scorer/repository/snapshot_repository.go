package repository

import (
	"context"

	"golang-stock-scorer/internal/entity"

	"gorm.io/gorm"
)

// SnapshotRepository defines the read interface for the append-only snapshot
// table. Writes go through ScoreStore.
type SnapshotRepository interface {
	Count(ctx context.Context) (int64, error)
	FindRecent(ctx context.Context, ticker string, limit int) ([]entity.Snapshot, error)
	FindAll(ctx context.Context) ([]entity.Snapshot, error)
}

// NewSnapshotRepository creates a new instance of SnapshotRepository.
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

type snapshotRepository struct {
	db *gorm.DB
}

func (r *snapshotRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Snapshot{}).Count(&count).Error
	return count, err
}

func (r *snapshotRepository) FindRecent(ctx context.Context, ticker string, limit int) ([]entity.Snapshot, error) {
	var snapshots []entity.Snapshot
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("ts DESC").
		Limit(limit).
		Find(&snapshots).Error
	return snapshots, err
}

func (r *snapshotRepository) FindAll(ctx context.Context) ([]entity.Snapshot, error) {
	var snapshots []entity.Snapshot
	err := r.db.WithContext(ctx).Order("id ASC").Find(&snapshots).Error
	return snapshots, err
}
