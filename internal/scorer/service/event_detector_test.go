package service

import (
	"context"
	"errors"
	"testing"

	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct {
	scores map[string]float64
}

func (s stubAnalyzer) Polarity(text string) float64 {
	return s.scores[text]
}

type failingEntityRepo struct{}

func (failingEntityRepo) Extract(ctx context.Context, headline string) ([]dto.Entity, error) {
	return nil, errors.New("entity extraction unavailable")
}

type fixedEntityRepo struct {
	entities []dto.Entity
}

func (r fixedEntityRepo) Extract(ctx context.Context, headline string) ([]dto.Entity, error) {
	return r.entities, nil
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}

func TestEventDetector_EmptyInput(t *testing.T) {
	detector := NewEventDetector(stubAnalyzer{}, nil, newTestLogger(t))

	events := detector.Classify(context.Background(), nil)
	assert.Empty(t, events)

	events = detector.Classify(context.Background(), []string{})
	assert.Empty(t, events)
}

func TestEventDetector_NegativeKeywordOverridesSentiment(t *testing.T) {
	headline := "Company wins exciting Lawsuit settlement"
	detector := NewEventDetector(stubAnalyzer{scores: map[string]float64{headline: 0.9}}, nil, newTestLogger(t))

	events := detector.Classify(context.Background(), []string{headline})

	require.Len(t, events, 1)
	assert.Equal(t, dto.ImpactNegative, events[0].Impact)
	assert.Equal(t, 0.9, events[0].Sentiment)
}

func TestEventDetector_ClassifiesByPolarity(t *testing.T) {
	cases := []struct {
		headline string
		polarity float64
		want     dto.Impact
	}{
		{"shares slide after weak quarter", -0.5, dto.ImpactNegative},
		{"shares surge on strong quarter", 0.5, dto.ImpactPositive},
		{"company holds annual meeting", 0.0, dto.ImpactNeutral},
		{"slightly off day", -0.2, dto.ImpactNeutral},
		{"slightly up day", 0.2, dto.ImpactNeutral},
	}

	scores := map[string]float64{}
	headlines := make([]string, 0, len(cases))
	for _, c := range cases {
		scores[c.headline] = c.polarity
		headlines = append(headlines, c.headline)
	}

	detector := NewEventDetector(stubAnalyzer{scores: scores}, nil, newTestLogger(t))
	events := detector.Classify(context.Background(), headlines)

	require.Len(t, events, len(cases))
	for i, c := range cases {
		assert.Equal(t, c.want, events[i].Impact, c.headline)
	}
}

func TestEventDetector_PositiveKeyword(t *testing.T) {
	headline := "Firm announces partnership with supplier"
	detector := NewEventDetector(stubAnalyzer{}, nil, newTestLogger(t))

	events := detector.Classify(context.Background(), []string{headline})

	require.Len(t, events, 1)
	assert.Equal(t, dto.ImpactPositive, events[0].Impact)
}

func TestEventDetector_EntityFailureDoesNotAffectClassification(t *testing.T) {
	headlines := []string{"regulator opens investigation", "record profit reported"}
	detector := NewEventDetector(stubAnalyzer{}, failingEntityRepo{}, newTestLogger(t))

	events := detector.Classify(context.Background(), headlines)

	require.Len(t, events, 2)
	assert.Equal(t, dto.ImpactNegative, events[0].Impact)
	assert.Empty(t, events[0].Entities)
	assert.Equal(t, dto.ImpactPositive, events[1].Impact)
	assert.Empty(t, events[1].Entities)
}

func TestEventDetector_AttachesEntities(t *testing.T) {
	entities := []dto.Entity{{Text: "Acme Corp", Label: "ORG"}}
	detector := NewEventDetector(stubAnalyzer{}, fixedEntityRepo{entities: entities}, newTestLogger(t))

	events := detector.Classify(context.Background(), []string{"Acme Corp files for bankruptcy"})

	require.Len(t, events, 1)
	assert.Equal(t, entities, events[0].Entities)
	assert.Equal(t, dto.ImpactNegative, events[0].Impact)
}
