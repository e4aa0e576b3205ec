package service

import (
	"context"

	"golang-stock-scorer/internal/entity"
	"golang-stock-scorer/internal/scorer/repository"
)

// HistoryService exposes persisted score records for a ticker.
type HistoryService interface {
	History(ctx context.Context, ticker string, limit int) ([]entity.ScoreRecord, error)
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(scoreRecordRepo repository.ScoreRecordRepository) HistoryService {
	return &historyService{scoreRecordRepo: scoreRecordRepo}
}

type historyService struct {
	scoreRecordRepo repository.ScoreRecordRepository
}

func (s *historyService) History(ctx context.Context, ticker string, limit int) ([]entity.ScoreRecord, error) {
	return s.scoreRecordRepo.FindRecent(ctx, ticker, limit)
}
