package service

import (
	"context"

	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/internal/scorer/repository"
)

const (
	TrendNoData           = "no data"
	TrendInsufficientData = "stable (insufficient data)"
	TrendImproving        = "improving"
	TrendDeteriorating    = "deteriorating"
	TrendStable           = "stable"
)

// DefaultTrendWindow is the number of recent scores considered when no window
// is given.
const DefaultTrendWindow = 7

// TrendService computes the score-delta trend over a ticker's history.
type TrendService interface {
	Trend(ctx context.Context, ticker string, window int) (dto.TrendResult, error)
}

// NewTrendService creates a new TrendService.
func NewTrendService(scoreRecordRepo repository.ScoreRecordRepository) TrendService {
	return &trendService{scoreRecordRepo: scoreRecordRepo}
}

type trendService struct {
	scoreRecordRepo repository.ScoreRecordRepository
}

func (s *trendService) Trend(ctx context.Context, ticker string, window int) (dto.TrendResult, error) {
	if window <= 0 {
		window = DefaultTrendWindow
	}

	scores, err := s.scoreRecordRepo.FindRecentFinalScores(ctx, ticker, window)
	if err != nil {
		return dto.TrendResult{}, err
	}

	if len(scores) == 0 {
		return dto.TrendResult{Trend: TrendNoData, Change: 0, History: []int{}}, nil
	}
	if len(scores) < 2 {
		return dto.TrendResult{Trend: TrendInsufficientData, Change: 0, History: scores}, nil
	}

	change := scores[0] - scores[len(scores)-1]
	trend := TrendStable
	switch {
	case change > 5:
		trend = TrendImproving
	case change < -5:
		trend = TrendDeteriorating
	}

	return dto.TrendResult{Trend: trend, Change: change, History: scores}, nil
}
