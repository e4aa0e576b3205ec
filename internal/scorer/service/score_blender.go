package service

import (
	"math"

	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/pkg/utils"
)

const eventAdjustment = 10

// ScoreBlender combines the rule score, the optional ML score and the event
// adjustments into the final score.
type ScoreBlender interface {
	Blend(ruleScore int, mlScore *float64, events []dto.Event) int
}

// NewScoreBlender creates a ScoreBlender.
func NewScoreBlender() ScoreBlender {
	return &scoreBlender{}
}

type scoreBlender struct{}

// Blend is a pure fold: equal-weight blend when an ML score is present, then
// +-10 per positive/negative event in headline order. The running total may
// leave [0,100] during the fold; it is clamped exactly once at the end.
func (b *scoreBlender) Blend(ruleScore int, mlScore *float64, events []dto.Event) int {
	final := ruleScore
	if mlScore != nil {
		final = int(math.Floor(0.5*float64(ruleScore) + 0.5**mlScore))
	}

	for _, event := range events {
		switch event.Impact {
		case dto.ImpactNegative:
			final -= eventAdjustment
		case dto.ImpactPositive:
			final += eventAdjustment
		}
	}

	return utils.ClampInt(final, 0, 100)
}
