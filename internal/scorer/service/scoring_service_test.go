package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"golang-stock-scorer/internal/entity"
	"golang-stock-scorer/internal/scorer/config"
	"golang-stock-scorer/internal/scorer/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAggregator struct {
	fv dto.FeatureVector
}

func (s stubAggregator) Build(ctx context.Context, ticker string) dto.FeatureVector {
	fv := s.fv
	fv.Ticker = ticker
	return fv
}

type fixedRuleScorer struct {
	score int
	lines []string
}

func (s fixedRuleScorer) Score(fv dto.FeatureVector) (int, []string) {
	return s.score, s.lines
}

type fixedMLScorer struct {
	score      float64
	importance map[string]float64
}

func (s fixedMLScorer) Available() bool { return true }

func (s fixedMLScorer) Predict(fv dto.FeatureVector) (float64, map[string]float64, error) {
	return s.score, s.importance, nil
}

type failingMLScorer struct{}

func (failingMLScorer) Available() bool { return true }

func (failingMLScorer) Predict(fv dto.FeatureVector) (float64, map[string]float64, error) {
	return 0, nil, errors.New("model artifact corrupted")
}

// memoryScoreStore keeps persisted rows so tests can read back exactly what
// was written.
type memoryScoreStore struct {
	snapshots []entity.Snapshot
	records   []entity.ScoreRecord
	err       error
}

func (s *memoryScoreStore) Persist(ctx context.Context, snapshot *entity.Snapshot, record *entity.ScoreRecord) error {
	if s.err != nil {
		return s.err
	}
	s.snapshots = append(s.snapshots, *snapshot)
	s.records = append(s.records, *record)
	return nil
}

func newScoringService(t *testing.T, fv dto.FeatureVector, rule RuleScorer, ml MLScorer, store *memoryScoreStore) ScoringService {
	t.Helper()
	return NewScoringService(
		&config.Config{},
		newTestLogger(t),
		stubAggregator{fv: fv},
		rule,
		NewEventDetector(stubAnalyzer{}, nil, newTestLogger(t)),
		ml,
		NewScoreBlender(),
		store,
		nil,
	)
}

func TestScoringService_DegradesToRuleOnlyOnMLFailure(t *testing.T) {
	store := &memoryScoreStore{}
	svc := newScoringService(t,
		dto.FeatureVector{Timestamp: time.Now().UTC()},
		fixedRuleScorer{score: 64, lines: []string{"Baseline: 64"}},
		failingMLScorer{},
		store,
	)

	result, err := svc.Score(context.Background(), "TSLA")

	require.NoError(t, err)
	assert.Nil(t, result.MLScore)
	assert.Equal(t, 64, result.RuleScore)
	assert.Equal(t, 64, result.FinalScore)
	assert.Empty(t, result.MLFeatureImportance)

	// Snapshots never carry NULL, so an absent ML score is stored as 0.
	require.Len(t, store.snapshots, 1)
	assert.Equal(t, 0.0, store.snapshots[0].MLScore)
	require.Len(t, store.records, 1)
	assert.Nil(t, store.records[0].MLScore)
}

func TestScoringService_BlendsWhenModelAvailable(t *testing.T) {
	store := &memoryScoreStore{}
	svc := newScoringService(t,
		dto.FeatureVector{Timestamp: time.Now().UTC()},
		fixedRuleScorer{score: 60},
		fixedMLScorer{score: 80, importance: map[string]float64{"eps": 1.5}},
		store,
	)

	result, err := svc.Score(context.Background(), "AAPL")

	require.NoError(t, err)
	require.NotNil(t, result.MLScore)
	assert.Equal(t, 80.0, *result.MLScore)
	assert.Equal(t, 70, result.FinalScore)
	assert.Equal(t, map[string]float64{"eps": 1.5}, result.MLFeatureImportance)

	require.Len(t, store.records, 1)
	require.NotNil(t, store.records[0].MLScore)
	assert.Equal(t, 80.0, *store.records[0].MLScore)
}

func TestScoringService_PersistErrorPropagates(t *testing.T) {
	store := &memoryScoreStore{err: errors.New("connection refused")}
	svc := newScoringService(t,
		dto.FeatureVector{Timestamp: time.Now().UTC()},
		fixedRuleScorer{score: 70},
		NewMLScorer(nil),
		store,
	)

	result, err := svc.Score(context.Background(), "TSLA")

	require.Error(t, err)
	assert.Equal(t, dto.ScoreResult{}, result)
	assert.Empty(t, store.snapshots)
}

func TestScoringService_PersistedRowsPreserveFeaturesExactly(t *testing.T) {
	// Values chosen to be exactly representable so equality is strict, not
	// approximate.
	ts := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)
	fv := dto.FeatureVector{
		Change1D:      1.25,
		DebtToEquity:  387.5,
		PERatio:       12.0625,
		MarketCap:     9.75e11,
		EPS:           4.5,
		BookValue:     23.125,
		NewsSentiment: -0.25,
		Headlines:     []string{},
		Timestamp:     ts,
	}
	store := &memoryScoreStore{}
	svc := newScoringService(t, fv,
		fixedRuleScorer{score: 55, lines: []string{"Change 1.25% -> +5"}},
		fixedMLScorer{score: 65, importance: map[string]float64{}},
		store,
	)

	result, err := svc.Score(context.Background(), "MSFT")
	require.NoError(t, err)

	require.Len(t, store.snapshots, 1)
	snap := store.snapshots[0]
	assert.Equal(t, "MSFT", snap.Ticker)
	assert.Equal(t, ts, snap.Ts)
	assert.Equal(t, 1.25, snap.Change1D)
	assert.Equal(t, 387.5, snap.DebtToEquity)
	assert.Equal(t, 12.0625, snap.PERatio)
	assert.Equal(t, 9.75e11, snap.MarketCap)
	assert.Equal(t, 4.5, snap.EPS)
	assert.Equal(t, 23.125, snap.BookValue)
	assert.Equal(t, -0.25, snap.NewsSentiment)
	assert.Equal(t, 55.0, snap.RuleScore)
	assert.Equal(t, 65.0, snap.MLScore)
	assert.Equal(t, float64(result.FinalScore), snap.FinalScore)

	require.Len(t, store.records, 1)
	record := store.records[0]
	assert.Equal(t, "MSFT", record.Ticker)
	assert.Equal(t, 55, record.RuleScore)
	assert.Equal(t, result.FinalScore, record.FinalScore)
	assert.Equal(t, ts, record.Timestamp)
	assert.Equal(t, []string{"Change 1.25% -> +5"}, []string(record.Explanation))

	var persisted dto.FeatureVector
	require.NoError(t, json.Unmarshal(record.Features, &persisted))
	assert.Equal(t, fv.Vector(), persisted.Vector())
}
