package service

import (
	"testing"

	"golang-stock-scorer/internal/scorer/dto"

	"github.com/stretchr/testify/assert"
)

func event(impact dto.Impact) dto.Event {
	return dto.Event{Headline: "headline", Impact: impact}
}

func TestScoreBlender_RuleOnlyWithEvents(t *testing.T) {
	blender := NewScoreBlender()

	events := []dto.Event{
		event(dto.ImpactPositive),
		event(dto.ImpactPositive),
		event(dto.ImpactNegative),
	}

	// 60 + 10 + 10 - 10 = 70
	assert.Equal(t, 70, blender.Blend(60, nil, events))
}

func TestScoreBlender_BlendsWithMLScore(t *testing.T) {
	blender := NewScoreBlender()

	ml := 81.0
	// floor(0.5*60 + 0.5*81) = floor(70.5) = 70
	assert.Equal(t, 70, blender.Blend(60, &ml, nil))
}

func TestScoreBlender_NeutralEventsAreNoOps(t *testing.T) {
	blender := NewScoreBlender()

	events := []dto.Event{event(dto.ImpactNeutral), event(dto.ImpactNeutral)}
	assert.Equal(t, 55, blender.Blend(55, nil, events))
}

func TestScoreBlender_ClampsOnceAfterFold(t *testing.T) {
	blender := NewScoreBlender()

	// Intermediate total exceeds 100 (95 -> 105 -> 115 -> 105); only the
	// final value is clamped, so the trailing negative does not drag the
	// result below the cap.
	events := []dto.Event{
		event(dto.ImpactPositive),
		event(dto.ImpactPositive),
		event(dto.ImpactNegative),
	}
	assert.Equal(t, 100, blender.Blend(95, nil, events))

	// Same shape below zero: 5 -> -5 -> -15 -> -5, clamped to 0.
	events = []dto.Event{
		event(dto.ImpactNegative),
		event(dto.ImpactNegative),
		event(dto.ImpactPositive),
	}
	assert.Equal(t, 0, blender.Blend(5, nil, events))
}

func TestScoreBlender_IsDeterministic(t *testing.T) {
	blender := NewScoreBlender()

	ml := 42.5
	events := []dto.Event{event(dto.ImpactNegative), event(dto.ImpactPositive)}
	first := blender.Blend(77, &ml, events)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, blender.Blend(77, &ml, events))
	}
}
