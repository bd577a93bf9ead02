// Package model loads trained-model artifacts and exposes the predict-like
// capability the attribution driver needs.  An artifact is a JSON document
// produced by the model-optimization pipeline: the descriptor spec the model
// was trained against, the feature schema, linear weights, and an intercept.
// The toolkit treats the model as opaque beyond Predict and its feature
// width; nothing here retrains or mutates a model.
package model

import (
	"encoding/json"
	"os"

	"github.com/turtacn/MolDesc-Toolkit/internal/domain/descriptor"
	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

// Artifact is the serialized form of a trained model.
type Artifact struct {
	// Name is a free-form label assigned at training time.
	Name string `json:"name,omitempty"`

	// Descriptor is the spec of the transformer the model was trained on.
	Descriptor descriptor.Spec `json:"descriptor"`

	// FeatureNames is the training-time feature schema.  May be empty for
	// fixed-width fingerprint models, where Weights alone defines the width.
	FeatureNames []string `json:"feature_names,omitempty"`

	// Weights holds one coefficient per feature column.
	Weights []float64 `json:"weights"`

	// Intercept is the model bias term.
	Intercept float64 `json:"intercept"`
}

// Model is a loaded, validated trained model.
type Model struct {
	artifact Artifact
}

// Load reads and validates a model artifact from path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeModelLoadFailed,
			"failed to read model file "+path)
	}

	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeModelLoadFailed,
			"failed to parse model file "+path)
	}

	if len(art.Weights) == 0 {
		return nil, errors.New(errors.ErrCodeModelInvalid,
			"model artifact declares no weights")
	}
	if len(art.FeatureNames) > 0 && len(art.FeatureNames) != len(art.Weights) {
		return nil, errors.Newf(errors.ErrCodeModelInvalid,
			"model artifact has %d feature names for %d weights",
			len(art.FeatureNames), len(art.Weights))
	}
	return &Model{artifact: art}, nil
}

// Name returns the artifact label.
func (m *Model) Name() string { return m.artifact.Name }

// DescriptorSpec returns the spec of the transformer the model was trained on.
func (m *Model) DescriptorSpec() descriptor.Spec { return m.artifact.Descriptor }

// FeatureWidth returns the feature vector width the model expects.
func (m *Model) FeatureWidth() int { return len(m.artifact.Weights) }

// FeatureNames returns the training-time schema, or nil for width-only models.
func (m *Model) FeatureNames() []string {
	if len(m.artifact.FeatureNames) == 0 {
		return nil
	}
	out := make([]string, len(m.artifact.FeatureNames))
	copy(out, m.artifact.FeatureNames)
	return out
}

// Weight returns the coefficient of feature column i.
func (m *Model) Weight(i int) float64 { return m.artifact.Weights[i] }

// Predict evaluates the model on one feature vector.  Fails with an
// Attribution-coded error when the vector width does not match the model.
func (m *Model) Predict(features []float64) (float64, error) {
	if len(features) != len(m.artifact.Weights) {
		return 0, errors.Newf(errors.CodeAttribution,
			"model expects %d features, got %d", len(m.artifact.Weights), len(features))
	}
	y := m.artifact.Intercept
	for i, w := range m.artifact.Weights {
		y += w * features[i]
	}
	return y, nil
}
