// Package analysis hosts the interpretation services of the toolkit: per-atom
// attribution of a trained linear model (coloratom) and chart rendering over
// tabular results (plot).  Rendering backends are injected as interfaces so
// the services stay testable without producing image files.
package analysis

import (
	"github.com/google/uuid"

	"github.com/turtacn/MolDesc-Toolkit/internal/domain/chem"
	domdesc "github.com/turtacn/MolDesc-Toolkit/internal/domain/descriptor"
	"github.com/turtacn/MolDesc-Toolkit/internal/domain/model"
	"github.com/turtacn/MolDesc-Toolkit/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
	ctypes "github.com/turtacn/MolDesc-Toolkit/pkg/types/chem"
)

// AttributionRenderer renders a per-atom contribution map to an image file.
type AttributionRenderer interface {
	AtomContributions(symbols []string, contributions ctypes.AttributionMap, title, path string) error
}

// Attribution is the result of explaining one structure against a model.
type Attribution struct {
	SMILES        string
	AtomSymbols   []string
	Contributions ctypes.AttributionMap
	Prediction    float64
}

// ColorAtomService computes per-atom contributions of a linear model's
// prediction.  Contributions distribute each matched feature's weight evenly
// over the atoms of the fragment (or hashed substructure) behind the feature,
// so the per-atom values sum to the prediction minus the intercept.
//
// Attribution is defined for descriptors whose features map back to atom
// sets: circular substructures and the morgan and rdkfp hashed fingerprints.
type ColorAtomService struct {
	log      logging.Logger
	renderer AttributionRenderer
}

// NewColorAtomService constructs a ColorAtomService.  renderer may be nil
// when no image output is requested.
func NewColorAtomService(log logging.Logger, renderer AttributionRenderer) *ColorAtomService {
	if log == nil {
		log = logging.Default()
	}
	return &ColorAtomService{log: log.Named("coloratom"), renderer: renderer}
}

// Explain computes the attribution of one structure under the model stored at
// modelPath.  When outputPath is non-empty the attribution is also rendered
// as an image; rendering is a side effect and does not change the returned
// values.
func (s *ColorAtomService) Explain(modelPath, smiles, outputPath string) (*Attribution, error) {
	runID := uuid.NewString()
	log := s.log.With(logging.String("run_id", runID), logging.String("model", modelPath))

	m, err := model.Load(modelPath)
	if err != nil {
		return nil, err
	}
	spec := m.DescriptorSpec()
	log.Debug("model loaded",
		logging.String("spec", spec.String()), logging.Int("width", m.FeatureWidth()))

	mol, err := chem.ParseSMILES(smiles)
	if err != nil {
		return nil, err
	}

	var attr *Attribution
	switch {
	case spec.Kind == string(ctypes.KindCircus):
		attr, err = s.explainCircus(m, spec, mol)
	case isSupportedFingerprint(spec):
		attr, err = s.explainFingerprint(m, spec, mol)
	default:
		return nil, errors.Newf(errors.CodeAttribution,
			"attribution is not defined for descriptor %s; supported: circus, morgan, rdkfp",
			spec.String())
	}
	if err != nil {
		return nil, err
	}
	attr.SMILES = smiles

	if outputPath != "" {
		if s.renderer == nil {
			return nil, errors.Internal("no attribution renderer configured")
		}
		title := "atom contributions (" + m.Name() + ")"
		if m.Name() == "" {
			title = "atom contributions"
		}
		if err := s.renderer.AtomContributions(attr.AtomSymbols, attr.Contributions, title, outputPath); err != nil {
			return nil, err
		}
		log.Info("attribution image written", logging.String("path", outputPath))
	}
	return attr, nil
}

func isSupportedFingerprint(spec domdesc.Spec) bool {
	if spec.Kind != string(ctypes.KindFingerprint) && spec.Kind != "rdkit" {
		return false
	}
	fp := spec.FPType
	return fp == string(ctypes.FPMorgan) || fp == string(ctypes.FPRDKit)
}

// explainCircus matches the molecule's fragments against the model's feature
// schema.  The schema must be present in the artifact: circus columns are
// vocabulary signatures, and without them a weight cannot be tied to a
// substructure.
func (s *ColorAtomService) explainCircus(m *model.Model, spec domdesc.Spec, mol *chem.Molecule) (*Attribution, error) {
	names := m.FeatureNames()
	if names == nil {
		return nil, errors.New(errors.ErrCodeModelInvalid,
			"circus attribution needs the feature schema recorded in the model artifact")
	}
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	contributions := ctypes.AttributionMap{}
	prediction := 0.0
	for _, frag := range chem.EnumerateFragments(mol, spec.Lower, spec.Upper, spec.OnBond) {
		col, ok := index[frag.Signature]
		if !ok {
			continue
		}
		w := m.Weight(col)
		prediction += w
		share := w / float64(len(frag.Atoms))
		for _, a := range frag.Atoms {
			contributions[a] += share
		}
	}

	return s.finish(m, mol, contributions, prediction)
}

// explainFingerprint maps on-bits back to their contributing atom sets.  The
// configured width must match the model width.
func (s *ColorAtomService) explainFingerprint(m *model.Model, spec domdesc.Spec, mol *chem.Molecule) (*Attribution, error) {
	nBits := spec.NBits
	if nBits == 0 {
		nBits = m.FeatureWidth()
	}
	if nBits != m.FeatureWidth() {
		return nil, errors.Newf(errors.CodeAttribution,
			"fingerprint width %d does not match model width %d", nBits, m.FeatureWidth())
	}

	fpType, err := ctypes.ParseFingerprintType(spec.FPType)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFingerprintTypeUnsupported,
			"model descriptor names an unsupported fingerprint scheme")
	}
	contributors, err := chem.BitContributors(mol, fpType, nBits, spec.Radius)
	if err != nil {
		return nil, err
	}

	contributions := ctypes.AttributionMap{}
	prediction := 0.0
	for bit, atoms := range contributors {
		if len(atoms) == 0 {
			continue
		}
		w := m.Weight(bit)
		prediction += w
		share := w / float64(len(atoms))
		for _, a := range atoms {
			contributions[a] += share
		}
	}

	return s.finish(m, mol, contributions, prediction)
}

func (s *ColorAtomService) finish(m *model.Model, mol *chem.Molecule, contributions ctypes.AttributionMap, featureSum float64) (*Attribution, error) {
	symbols := make([]string, mol.AtomCount())
	for i, a := range mol.Atoms {
		symbols[i] = a.Symbol
	}
	// Atoms covered by no vocabulary fragment still appear, with a zero
	// contribution, so the rendered chart shows every atom.
	for i := range symbols {
		if _, ok := contributions[i]; !ok {
			contributions[i] = 0
		}
	}

	pred, err := predictFromSum(m, featureSum)
	if err != nil {
		return nil, err
	}
	return &Attribution{
		AtomSymbols:   symbols,
		Contributions: contributions,
		Prediction:    pred,
	}, nil
}

func predictFromSum(m *model.Model, featureSum float64) (float64, error) {
	// The weighted feature sum was accumulated while attributing, so the
	// prediction is just the intercept added back in.  Evaluate through an
	// all-zero Predict call to pick up the intercept without duplicating the
	// model equation here.
	base, err := m.Predict(make([]float64, m.FeatureWidth()))
	if err != nil {
		return 0, err
	}
	return base + featureSum, nil
}
