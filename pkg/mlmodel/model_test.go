package mlmodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel() *Model {
	return &Model{
		FeatureNames: []string{"a", "b", "c"},
		Weights:      []float64{2, -1, 0.5},
		Intercept:    10,
		FeatureMeans: []float64{1, 2, 4},
		TrainedAt:    "2026-08-01T00:00:00Z",
	}
}

func TestModel_Predict(t *testing.T) {
	m := testModel()

	y, err := m.Predict([]float64{3, 1, 2})
	require.NoError(t, err)
	assert.InDelta(t, 10+2*3-1*1+0.5*2, y, 1e-12)
}

func TestModel_Predict_WrongLength(t *testing.T) {
	m := testModel()

	_, err := m.Predict([]float64{1, 2})
	assert.Error(t, err)
}

func TestModel_Attribution(t *testing.T) {
	m := testModel()
	x := []float64{3, 1, 2}

	contrib, err := m.Attribution(x)
	require.NoError(t, err)
	require.Len(t, contrib, 3)
	assert.InDelta(t, 2*(3-1), contrib["a"], 1e-12)
	assert.InDelta(t, -1*(1-2), contrib["b"], 1e-12)
	assert.InDelta(t, 0.5*(2-4), contrib["c"], 1e-12)

	// The contributions decompose the prediction relative to the mean input.
	atMean, err := m.Predict(m.FeatureMeans)
	require.NoError(t, err)
	atX, err := m.Predict(x)
	require.NoError(t, err)

	sum := 0.0
	for _, v := range contrib {
		sum += v
	}
	assert.InDelta(t, atX-atMean, sum, 1e-12)
}

func TestModel_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ml_model.json")
	m := testModel()

	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoad_InconsistentArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"feature_names":["a","b"],"weights":[1],"feature_means":[0,0]}`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
