// Package chem defines the shared chemistry-domain enumerations and plain data
// types used across every layer of the MolDesc-Toolkit.  No domain logic lives
// here — only data types that are safe to import from any layer without
// creating circular dependencies.
package chem

import (
	"fmt"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Notation — structure notation format
// ─────────────────────────────────────────────────────────────────────────────

// Notation identifies the linear notation in which structure strings are
// expressed.  Only SMILES is currently implemented; the field exists in
// configuration documents so that additional notations can be added without a
// format change.
type Notation string

const (
	// NotationSMILES is the Simplified Molecular Input Line Entry System.
	NotationSMILES Notation = "smiles"
)

// IsValid reports whether the notation is supported.
func (n Notation) IsValid() bool {
	return n == NotationSMILES
}

// ─────────────────────────────────────────────────────────────────────────────
// DescriptorKind — closed set of descriptor transformer variants
// ─────────────────────────────────────────────────────────────────────────────

// DescriptorKind tags a descriptor transformer variant.  Transformer
// construction dispatches on this closed set rather than on runtime attribute
// lookup, so an unknown kind is rejected at build time.
type DescriptorKind string

const (
	// KindCircus is the circular-substructure (CircuS) descriptor: fragments
	// enumerated around atoms (or bonds) within a radius range, with a
	// vocabulary learned during fit.
	KindCircus DescriptorKind = "circus"

	// KindFingerprint is the hashed fixed-width fingerprint descriptor.
	KindFingerprint DescriptorKind = "fingerprint"

	// KindPassThrough copies an already-numeric column unchanged.  Used only
	// inside composite configurations.
	KindPassThrough DescriptorKind = "passthrough"

	// KindSolvent one-hot encodes a categorical solvent column.  Used only
	// inside composite configurations.
	KindSolvent DescriptorKind = "solvent"
)

// ParseDescriptorKind converts a string tag to a DescriptorKind.
// "rdkit" is accepted as an alias for KindFingerprint, matching the CLI
// command name for fingerprint descriptors.
func ParseDescriptorKind(s string) (DescriptorKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circus":
		return KindCircus, nil
	case "fingerprint", "rdkit":
		return KindFingerprint, nil
	case "passthrough":
		return KindPassThrough, nil
	case "solvent":
		return KindSolvent, nil
	default:
		return "", fmt.Errorf("unknown descriptor kind %q", s)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// FingerprintType — hashed fingerprint scheme identifier
// ─────────────────────────────────────────────────────────────────────────────

// FingerprintType identifies which fingerprint algorithm generates the
// fixed-width bit vector for a molecule.
type FingerprintType string

const (
	// FPMorgan is the circular Morgan / ECFP fingerprint (default radius 2 → ECFP4).
	FPMorgan FingerprintType = "morgan"

	// FPAtomPairs is the atom-pair fingerprint (hashed atom-pair descriptors).
	FPAtomPairs FingerprintType = "atompairs"

	// FPTorsion is the topological-torsion fingerprint (hashed 4-atom paths).
	FPTorsion FingerprintType = "torsion"

	// FPRDKit is the Daylight-style path fingerprint.
	FPRDKit FingerprintType = "rdkfp"

	// FPAvalon is the Avalon substructure-pattern fingerprint.
	FPAvalon FingerprintType = "avalon"
)

// AllFingerprintTypes returns every supported fingerprint scheme, in the order
// the CLI documents them.
func AllFingerprintTypes() []FingerprintType {
	return []FingerprintType{FPMorgan, FPAtomPairs, FPTorsion, FPRDKit, FPAvalon}
}

// IsValid reports whether the fingerprint type is supported.
func (ft FingerprintType) IsValid() bool {
	switch ft {
	case FPMorgan, FPAtomPairs, FPTorsion, FPRDKit, FPAvalon:
		return true
	}
	return false
}

func (ft FingerprintType) String() string {
	return string(ft)
}

// ParseFingerprintType converts a string to a FingerprintType.
func ParseFingerprintType(s string) (FingerprintType, error) {
	ft := FingerprintType(strings.ToLower(strings.TrimSpace(s)))
	if !ft.IsValid() {
		return "", fmt.Errorf("unknown fingerprint type %q", s)
	}
	return ft, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// AttributionMap — per-atom contribution scores
// ─────────────────────────────────────────────────────────────────────────────

// AttributionMap maps an atom index (within one structure) to the signed
// contribution of that atom to a model's prediction.  It is produced fresh per
// explain call and never persisted.
type AttributionMap map[int]float64
