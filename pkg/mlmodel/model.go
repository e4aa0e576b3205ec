package mlmodel

import (
	"encoding/json"
	"fmt"
	"os"
)

// Model is a fitted linear regression artifact. It is written by the trainer
// and loaded once at process start; a running scorer never reloads it.
type Model struct {
	FeatureNames []string  `json:"feature_names"`
	Weights      []float64 `json:"weights"`
	Intercept    float64   `json:"intercept"`
	// FeatureMeans are the training-set means, kept so attributions can be
	// computed against the data the model was fitted on.
	FeatureMeans []float64 `json:"feature_means"`
	TrainedAt    string    `json:"trained_at"`
}

// Predict returns the raw regression output for a feature vector in the
// model's fixed feature order. The caller is responsible for clamping.
func (m *Model) Predict(x []float64) (float64, error) {
	if len(x) != len(m.Weights) {
		return 0, fmt.Errorf("feature vector has %d values, model expects %d", len(x), len(m.Weights))
	}
	y := m.Intercept
	for i, w := range m.Weights {
		y += w * x[i]
	}
	return y, nil
}

// Attribution returns the signed per-feature contribution of x to the
// prediction relative to the training mean. For a linear model
// weight*(x-mean) is the exact Shapley decomposition.
func (m *Model) Attribution(x []float64) (map[string]float64, error) {
	if len(x) != len(m.Weights) {
		return nil, fmt.Errorf("feature vector has %d values, model expects %d", len(x), len(m.Weights))
	}
	contrib := make(map[string]float64, len(m.Weights))
	for i, name := range m.FeatureNames {
		contrib[name] = m.Weights[i] * (x[i] - m.FeatureMeans[i])
	}
	return contrib, nil
}

// Save writes the model artifact as JSON.
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a model artifact from disk.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model artifact: %w", err)
	}
	if len(m.Weights) != len(m.FeatureNames) || len(m.FeatureMeans) != len(m.FeatureNames) {
		return nil, fmt.Errorf("model artifact is inconsistent: %d names, %d weights, %d means",
			len(m.FeatureNames), len(m.Weights), len(m.FeatureMeans))
	}
	return &m, nil
}
