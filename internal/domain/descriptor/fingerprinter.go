package descriptor

import (
	"fmt"

	"github.com/turtacn/MolDesc-Toolkit/internal/domain/chem"
	"github.com/turtacn/MolDesc-Toolkit/internal/domain/dataset"
	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
	ctypes "github.com/turtacn/MolDesc-Toolkit/pkg/types/chem"
)

// Fingerprinter is the fixed-width hashed fingerprint transformer.  The
// feature width is fixed by configuration, not learned, so Fit is a no-op
// and Transform may be called on a freshly constructed instance (matching
// how the fingerprint pipeline has always been driven).
type Fingerprinter struct {
	fpType ctypes.FingerprintType
	nBits  int
	radius int

	fit bool
}

// NewFingerprinter validates the scheme and parameters and constructs a
// Fingerprinter.  Fails with an InvalidConfig-coded error for an unknown
// scheme, nBits <= 0, or radius < 0.
func NewFingerprinter(fpType string, nBits, radius int) (*Fingerprinter, error) {
	ft, err := ctypes.ParseFingerprintType(fpType)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "invalid fingerprint spec")
	}
	if nBits <= 0 {
		return nil, errors.Newf(errors.CodeInvalidConfig,
			"fingerprint nBits must be positive, got %d", nBits)
	}
	if radius < 0 {
		return nil, errors.Newf(errors.CodeInvalidConfig,
			"fingerprint radius must be non-negative, got %d", radius)
	}
	return &Fingerprinter{fpType: ft, nBits: nBits, radius: radius}, nil
}

// Fit is a no-op: the schema is fixed by nBits.  It only marks the
// transformer fit for contract symmetry.
func (f *Fingerprinter) Fit(_ []string) error {
	f.fit = true
	return nil
}

// Transform emits one nBits-wide 0/1 row per structure.  The width is
// exactly nBits regardless of input.
func (f *Fingerprinter) Transform(structures []string) (*dataset.FeatureTable, error) {
	out := dataset.NewFeatureTable(f.FeatureNames())
	for _, s := range structures {
		mol, err := chem.ParseSMILES(s)
		if err != nil {
			return nil, errors.WrapMsg(err, "fingerprint transform failed on structure "+s)
		}
		fp, err := chem.Compute(mol, f.fpType, f.nBits, f.radius)
		if err != nil {
			return nil, err
		}
		row := make([]float64, f.nBits)
		for i := 0; i < f.nBits; i++ {
			if fp.GetBit(i) {
				row[i] = 1
			}
		}
		if err := out.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FeatureNames returns the fixed bit-column schema "<scheme>_0".."<scheme>_N-1".
func (f *Fingerprinter) FeatureNames() []string {
	out := make([]string, f.nBits)
	for i := range out {
		out[i] = fmt.Sprintf("%s_%d", f.fpType, i)
	}
	return out
}

// IsFit reports whether Fit has been called.  Transform does not require it.
func (f *Fingerprinter) IsFit() bool { return f.fit }

// Type returns the configured fingerprint scheme.
func (f *Fingerprinter) Type() ctypes.FingerprintType { return f.fpType }

// NBits returns the configured width.
func (f *Fingerprinter) NBits() int { return f.nBits }

// Radius returns the configured Morgan radius.
func (f *Fingerprinter) Radius() int { return f.radius }
