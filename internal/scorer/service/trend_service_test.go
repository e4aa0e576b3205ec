package service

import (
	"context"
	"testing"

	"golang-stock-scorer/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScoreRecordRepo struct {
	scores  []int
	records []entity.ScoreRecord
	err     error
}

func (s stubScoreRecordRepo) FindRecent(ctx context.Context, ticker string, limit int) ([]entity.ScoreRecord, error) {
	return s.records, s.err
}

func (s stubScoreRecordRepo) FindRecentFinalScores(ctx context.Context, ticker string, limit int) ([]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit < len(s.scores) {
		return s.scores[:limit], nil
	}
	return s.scores, nil
}

func TestTrendService_NoData(t *testing.T) {
	svc := NewTrendService(stubScoreRecordRepo{})

	result, err := svc.Trend(context.Background(), "TSLA", 7)

	require.NoError(t, err)
	assert.Equal(t, TrendNoData, result.Trend)
	assert.Zero(t, result.Change)
	assert.Empty(t, result.History)
}

func TestTrendService_SingleRow(t *testing.T) {
	svc := NewTrendService(stubScoreRecordRepo{scores: []int{62}})

	result, err := svc.Trend(context.Background(), "TSLA", 7)

	require.NoError(t, err)
	assert.Equal(t, TrendInsufficientData, result.Trend)
	assert.Zero(t, result.Change)
	assert.Equal(t, []int{62}, result.History)
}

func TestTrendService_Labels(t *testing.T) {
	cases := []struct {
		name   string
		scores []int // most recent first
		want   string
		change int
	}{
		{"improving", []int{80, 75, 72}, TrendImproving, 8},
		{"deteriorating", []int{40, 45, 52}, TrendDeteriorating, -12},
		{"stable small gain", []int{70, 68, 65}, TrendStable, 5},
		{"stable small loss", []int{65, 68, 70}, TrendStable, -5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc := NewTrendService(stubScoreRecordRepo{scores: c.scores})
			result, err := svc.Trend(context.Background(), "AAPL", 7)

			require.NoError(t, err)
			assert.Equal(t, c.want, result.Trend)
			assert.Equal(t, c.change, result.Change)
			assert.Equal(t, c.scores, result.History)
		})
	}
}

func TestTrendService_WindowLimitsHistory(t *testing.T) {
	svc := NewTrendService(stubScoreRecordRepo{scores: []int{90, 80, 70, 60, 50}})

	result, err := svc.Trend(context.Background(), "MSFT", 3)

	require.NoError(t, err)
	assert.Equal(t, []int{90, 80, 70}, result.History)
	assert.Equal(t, 20, result.Change)
	assert.Equal(t, TrendImproving, result.Trend)
}

func TestTrendService_DefaultsWindow(t *testing.T) {
	svc := NewTrendService(stubScoreRecordRepo{scores: []int{50, 50}})

	result, err := svc.Trend(context.Background(), "MSFT", 0)

	require.NoError(t, err)
	assert.Equal(t, TrendStable, result.Trend)
}
