package service

import (
	"context"
	"strings"

	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/internal/scorer/repository"
	"golang-stock-scorer/pkg/logger"
	"golang-stock-scorer/pkg/sentiment"
)

var negativeKeywords = []string{
	"bankruptcy", "lawsuit", "restructuring", "default",
	"fraud", "investigation", "downgrade",
}

var positiveKeywords = []string{
	"record profit", "partnership", "acquisition", "expansion",
	"new product", "upgrade", "beat estimates",
}

// EventDetector classifies headlines into impact categories.
type EventDetector interface {
	Classify(ctx context.Context, headlines []string) []dto.Event
}

// NewEventDetector creates an EventDetector. entityRepo may be nil; entity
// extraction is an optional capability and its absence never affects
// classification.
func NewEventDetector(analyzer sentiment.Analyzer, entityRepo repository.EntityRepository, log *logger.Logger) EventDetector {
	return &eventDetector{
		analyzer:   analyzer,
		entityRepo: entityRepo,
		logger:     log,
	}
}

type eventDetector struct {
	analyzer   sentiment.Analyzer
	entityRepo repository.EntityRepository
	logger     *logger.Logger
}

func (d *eventDetector) Classify(ctx context.Context, headlines []string) []dto.Event {
	events := make([]dto.Event, 0, len(headlines))

	for _, h := range headlines {
		event := dto.Event{
			Headline:  h,
			Entities:  []dto.Entity{},
			Sentiment: d.analyzer.Polarity(h),
			Impact:    dto.ImpactNeutral,
		}

		if d.entityRepo != nil {
			entities, err := d.entityRepo.Extract(ctx, h)
			if err != nil {
				d.logger.Debug("Entity extraction failed", logger.StringField("headline", h), logger.ErrorField(err))
			} else if entities != nil {
				event.Entities = entities
			}
		}

		// Negative takes priority over positive.
		lower := strings.ToLower(h)
		switch {
		case event.Sentiment < -0.2 || containsAny(lower, negativeKeywords):
			event.Impact = dto.ImpactNegative
		case event.Sentiment > 0.2 || containsAny(lower, positiveKeywords):
			event.Impact = dto.ImpactPositive
		}

		events = append(events, event)
	}

	return events
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
