package service

import (
	"testing"

	"golang-stock-scorer/internal/scorer/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleScorer_WeakFundamentals(t *testing.T) {
	scorer := NewRuleScorer()

	fv := dto.FeatureVector{
		Ticker:        "TSLA",
		Change1D:      -3,
		DebtToEquity:  250,
		PERatio:       35,
		MarketCap:     5e10,
		EPS:           -1,
		BookValue:     0,
		NewsSentiment: 0,
	}

	score, explanation := scorer.Score(fv)

	// 70 - 20 - 15 - 5 - 5 - 5 = 20
	assert.Equal(t, 20, score)
	require.Len(t, explanation, 6)
	assert.Contains(t, explanation[0], "Stock fell")
	assert.Contains(t, explanation[1], "High debt ratio")
	assert.Contains(t, explanation[2], "High P/E ratio")
	assert.Contains(t, explanation[3], "Smaller market cap")
	assert.Contains(t, explanation[4], "negative")
	assert.Contains(t, explanation[5], "News sentiment")
}

func TestRuleScorer_StrongFundamentals(t *testing.T) {
	scorer := NewRuleScorer()

	fv := dto.FeatureVector{
		Ticker:        "AAPL",
		Change1D:      3,
		DebtToEquity:  120,
		PERatio:       25,
		MarketCap:     2e12,
		EPS:           6.1,
		BookValue:     4.2,
		NewsSentiment: 0.5,
	}

	score, explanation := scorer.Score(fv)

	// 70 + 10 + 5 + 5 + 5 + 3 + 10 = 100 (clamped from 108)
	assert.Equal(t, 100, score)
	assert.Len(t, explanation, 7)
}

func TestRuleScorer_SentimentTruncatesTowardZero(t *testing.T) {
	scorer := NewRuleScorer()

	fv := dto.FeatureVector{NewsSentiment: -0.09}
	score, _ := scorer.Score(fv)

	// -0.09*20 = -1.8 truncates to -1, not -2. Baseline 70, no EPS data -5.
	assert.Equal(t, 70-5-1, score)
}

func TestRuleScorer_ScoreAlwaysInRange(t *testing.T) {
	scorer := NewRuleScorer()

	cases := []dto.FeatureVector{
		{},
		{Change1D: -50, DebtToEquity: 1000, PERatio: 500, EPS: -10, NewsSentiment: -1},
		{Change1D: 50, PERatio: 10, MarketCap: 1e12, EPS: 10, BookValue: 5, NewsSentiment: 1},
		{NewsSentiment: 1},
		{NewsSentiment: -1},
	}

	for _, fv := range cases {
		score, _ := scorer.Score(fv)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestRuleScorer_ExplanationOrderIsStable(t *testing.T) {
	scorer := NewRuleScorer()

	fv := dto.FeatureVector{Change1D: 1, DebtToEquity: 50, PERatio: 15, MarketCap: 2e11, EPS: 1, BookValue: 1, NewsSentiment: 0.1}
	_, first := scorer.Score(fv)
	_, second := scorer.Score(fv)

	assert.Equal(t, first, second)
	assert.Len(t, first, 7)
}
