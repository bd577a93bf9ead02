package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/MolDesc-Toolkit/internal/testutil"
	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

const validArtifact = `{
  "name": "solubility",
  "descriptor": {"type": "circus", "lower": 0, "upper": 1},
  "feature_names": ["C", "C(C)", "O"],
  "weights": [0.5, -1.0, 2.0],
  "intercept": 0.25
}`

func TestLoad_ValidArtifact(t *testing.T) {
	path := testutil.WriteTempFile(t, "model.json", validArtifact)

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "solubility", m.Name())
	assert.Equal(t, 3, m.FeatureWidth())
	assert.Equal(t, []string{"C", "C(C)", "O"}, m.FeatureNames())
	assert.Equal(t, "circus", m.DescriptorSpec().Kind)
	assert.Equal(t, -1.0, m.Weight(1))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/model.json")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeModelLoadFailed))
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := testutil.WriteTempFile(t, "model.json", "{broken")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeModelLoadFailed))
}

func TestLoad_InvalidArtifacts(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no weights", `{"descriptor": {"type": "circus"}}`},
		{"empty weights", `{"descriptor": {"type": "circus"}, "weights": []}`},
		{"name/weight mismatch", `{"feature_names": ["a", "b"], "weights": [1.0]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteTempFile(t, "model.json", tt.doc)
			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeModelInvalid))
		})
	}
}

func TestLoad_WidthOnlyModel(t *testing.T) {
	// Fingerprint models may omit feature names; the width comes from the
	// weight vector alone.
	path := testutil.WriteTempFile(t, "model.json",
		`{"descriptor": {"type": "fingerprint", "fp_type": "morgan", "nBits": 4},
		  "weights": [1, 2, 3, 4]}`)

	m, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, m.FeatureNames())
	assert.Equal(t, 4, m.FeatureWidth())
}

func TestPredict_LinearEvaluation(t *testing.T) {
	path := testutil.WriteTempFile(t, "model.json", validArtifact)
	m, err := Load(path)
	require.NoError(t, err)

	y, err := m.Predict([]float64{2, 1, 1})
	require.NoError(t, err)
	// 0.25 + 0.5*2 - 1.0*1 + 2.0*1
	assert.InDelta(t, 2.25, y, 1e-12)
}

func TestPredict_WidthMismatch(t *testing.T) {
	path := testutil.WriteTempFile(t, "model.json", validArtifact)
	m, err := Load(path)
	require.NoError(t, err)

	_, err = m.Predict([]float64{1, 2})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeAttribution))
}
