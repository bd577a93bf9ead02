package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

func TestNewFingerprinter_Validation(t *testing.T) {
	tests := []struct {
		name   string
		fpType string
		nBits  int
		radius int
	}{
		{"unknown scheme", "maccs", 1024, 2},
		{"zero width", "morgan", 0, 2},
		{"negative width", "morgan", -8, 2},
		{"negative radius", "morgan", 1024, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFingerprinter(tt.fpType, tt.nBits, tt.radius)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeInvalidConfig))
		})
	}
}

func TestFingerprinter_FixedWidth(t *testing.T) {
	f, err := NewFingerprinter("morgan", 128, 2)
	require.NoError(t, err)

	features, err := f.Transform([]string{"CCO", "c1ccccc1", "C"})
	require.NoError(t, err)
	assert.Equal(t, 3, features.NumRows())
	assert.Equal(t, 128, features.NumColumns())

	names := f.FeatureNames()
	require.Len(t, names, 128)
	assert.Equal(t, "morgan_0", names[0])
	assert.Equal(t, "morgan_127", names[127])
}

func TestFingerprinter_TransformWithoutFit(t *testing.T) {
	// Fingerprints have a fixed schema; transform works on a fresh instance.
	f, err := NewFingerprinter("rdkfp", 64, 0)
	require.NoError(t, err)
	assert.False(t, f.IsFit())

	_, err = f.Transform([]string{"CCO"})
	require.NoError(t, err)
}

func TestFingerprinter_BinaryValues(t *testing.T) {
	f, err := NewFingerprinter("morgan", 256, 2)
	require.NoError(t, err)

	features, err := f.Transform([]string{"CC(=O)O"})
	require.NoError(t, err)

	on := 0
	for _, v := range features.Row(0) {
		require.Contains(t, []float64{0, 1}, v)
		if v == 1 {
			on++
		}
	}
	assert.Greater(t, on, 0)
}

func TestFingerprinter_Deterministic(t *testing.T) {
	f, err := NewFingerprinter("atompairs", 512, 0)
	require.NoError(t, err)

	a, err := f.Transform([]string{"CCNCC"})
	require.NoError(t, err)
	b, err := f.Transform([]string{"CCNCC"})
	require.NoError(t, err)
	assert.Equal(t, a.Row(0), b.Row(0))
}

func TestFingerprinter_InvalidStructure(t *testing.T) {
	f, err := NewFingerprinter("morgan", 64, 2)
	require.NoError(t, err)

	_, err = f.Transform([]string{"C(("})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidSMILES))
}
