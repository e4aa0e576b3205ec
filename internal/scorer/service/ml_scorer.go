package service

import (
	"golang-stock-scorer/internal/scorer/dto"
	"golang-stock-scorer/pkg/mlmodel"
	"golang-stock-scorer/pkg/utils"
)

// MLScorer predicts a score from the feature vector using a trained model
// artifact. The capability is optional: when no artifact was loaded at
// startup, Available reports false and Predict must not be called.
type MLScorer interface {
	Available() bool
	Predict(fv dto.FeatureVector) (float64, map[string]float64, error)
}

// NewMLScorer wraps a loaded model artifact. A nil model yields an absent
// capability rather than an error; the model handle is an explicit value
// owned by the caller, not process-global state.
func NewMLScorer(model *mlmodel.Model) MLScorer {
	return &mlScorer{model: model}
}

type mlScorer struct {
	model *mlmodel.Model
}

func (s *mlScorer) Available() bool {
	return s.model != nil
}

// Predict returns the clamped model score and the signed per-feature
// attribution of the prediction.
func (s *mlScorer) Predict(fv dto.FeatureVector) (float64, map[string]float64, error) {
	x := fv.Vector()

	raw, err := s.model.Predict(x)
	if err != nil {
		return 0, nil, err
	}
	score := utils.ClampFloat(utils.SafeFloat(raw), 0, 100)

	attribution, err := s.model.Attribution(x)
	if err != nil {
		return 0, nil, err
	}
	return score, attribution, nil
}
