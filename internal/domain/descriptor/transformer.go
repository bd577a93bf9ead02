// Package descriptor implements the descriptor transformer contract of the
// MolDesc-Toolkit: a two-phase fit/transform object mapping structure strings
// to numeric feature tables.  Variants form a closed set selected by an
// explicit kind tag (circus, fingerprint, passthrough, solvent) and validated
// at construction; the composite transformer combines per-column variants
// over a whole row table.
//
// Contract invariants shared by every variant:
//
//   - Fit may learn a vocabulary; Transform never changes the schema
//     established by Fit.
//   - Transform is deterministic and idempotent for a given fit state.
//   - Calling Fit again replaces the learned state, it does not accumulate.
//   - Transformers are owned by a single command invocation and are not safe
//     for concurrent use.
package descriptor

import (
	"fmt"

	"github.com/turtacn/MolDesc-Toolkit/internal/domain/dataset"
	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
	ctypes "github.com/turtacn/MolDesc-Toolkit/pkg/types/chem"
)

// Transformer is the fit/transform contract every descriptor variant honours.
type Transformer interface {
	// Fit learns the feature schema from a corpus of structures.  For
	// stateless variants Fit is a no-op that only marks the transformer fit.
	Fit(structures []string) error

	// Transform maps structures to a feature table using the schema learned
	// (or fixed) at fit time.  Row i of the result corresponds to
	// structures[i].  Vocabulary-dependent variants fail with an
	// UnfitTransformer-coded error when called before Fit.
	Transform(structures []string) (*dataset.FeatureTable, error)

	// FeatureNames returns the current feature schema in column order.
	// Empty before Fit for vocabulary-dependent variants.
	FeatureNames() []string

	// IsFit reports whether the transformer has been fit.
	IsFit() bool
}

// ─────────────────────────────────────────────────────────────────────────────
// Spec — declarative transformer description
// ─────────────────────────────────────────────────────────────────────────────

// Spec declares which transformer variant to construct and with what
// parameters.  It is the JSON form used in configuration documents; zero
// values of unused parameters are simply ignored by other kinds.
type Spec struct {
	// Kind selects the variant.  JSON accepts "circus", "fingerprint" (alias
	// "rdkit"), "passthrough", and "solvent".
	Kind string `json:"type"`

	// Lower and Upper bound the CircuS fragment radius (atoms or bonds).
	Lower int `json:"lower,omitempty"`
	Upper int `json:"upper,omitempty"`

	// OnBond selects bond-centred CircuS fragments instead of atom-centred.
	OnBond bool `json:"on_bond,omitempty"`

	// FPType names the fingerprint scheme for fingerprint kinds.
	FPType string `json:"fp_type,omitempty"`

	// NBits is the fingerprint width; the original configuration documents
	// spell the key with a capital B.
	NBits int `json:"nBits,omitempty"`

	// Radius is the Morgan fingerprint radius.
	Radius int `json:"radius,omitempty"`

	// Fmt names the structure notation ("smiles").  Empty means SMILES.
	Fmt string `json:"fmt,omitempty"`
}

// String renders a short human-readable form used in logs and errors.
func (s Spec) String() string {
	switch s.Kind {
	case string(ctypes.KindCircus):
		return fmt.Sprintf("circus(lower=%d, upper=%d, on_bond=%t)", s.Lower, s.Upper, s.OnBond)
	case string(ctypes.KindFingerprint), "rdkit":
		return fmt.Sprintf("fingerprint(%s, nBits=%d, radius=%d)", s.FPType, s.NBits, s.Radius)
	default:
		return s.Kind
	}
}

// Build validates spec and constructs the corresponding transformer.
// Fails with an InvalidConfig-coded error for an unknown kind, an unsupported
// notation, or out-of-range parameters.
func Build(spec Spec) (Transformer, error) {
	if spec.Fmt != "" && !ctypes.Notation(spec.Fmt).IsValid() {
		return nil, errors.Newf(errors.CodeInvalidConfig,
			"unsupported structure notation %q", spec.Fmt)
	}

	kind, err := ctypes.ParseDescriptorKind(spec.Kind)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "invalid descriptor spec")
	}

	switch kind {
	case ctypes.KindCircus:
		return NewCircus(spec.Lower, spec.Upper, spec.OnBond)
	case ctypes.KindFingerprint:
		fpType := spec.FPType
		if fpType == "" {
			fpType = string(ctypes.FPMorgan)
		}
		return NewFingerprinter(fpType, spec.NBits, spec.Radius)
	case ctypes.KindPassThrough:
		return NewPassThrough(), nil
	case ctypes.KindSolvent:
		return NewSolventVectorizer(), nil
	default:
		return nil, errors.Newf(errors.CodeInvalidConfig,
			"unknown descriptor kind %q", spec.Kind)
	}
}
