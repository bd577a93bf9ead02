package descriptor

import (
	"github.com/turtacn/MolDesc-Toolkit/internal/domain/chem"
	"github.com/turtacn/MolDesc-Toolkit/internal/domain/dataset"
	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

// Circus is the circular-substructure descriptor transformer.  Fit scans a
// corpus and records every distinct fragment signature within the configured
// radius range as the feature vocabulary; Transform emits per-structure
// occurrence counts over that vocabulary.
//
// Vocabulary order is first-seen (discovery) order, which is deterministic
// because structures are scanned in input order and fragment centres in
// SMILES atom order.  First-seen order keeps existing columns stable when a
// corpus is extended, unlike a lexical re-sort.
type Circus struct {
	lower  int
	upper  int
	onBond bool

	fit        bool
	vocabulary []string       // column schema, first-seen order
	vocabIndex map[string]int // signature -> column position
}

// NewCircus validates the radius bounds and constructs an unfit Circus
// transformer.  Fails with an InvalidConfig-coded error unless
// 0 <= lower <= upper.
func NewCircus(lower, upper int, onBond bool) (*Circus, error) {
	if lower < 0 || upper < 0 {
		return nil, errors.Newf(errors.CodeInvalidConfig,
			"circus radius bounds must be non-negative, got lower=%d upper=%d", lower, upper)
	}
	if lower > upper {
		return nil, errors.Newf(errors.CodeInvalidConfig,
			"circus lower bound %d exceeds upper bound %d", lower, upper)
	}
	return &Circus{lower: lower, upper: upper, onBond: onBond}, nil
}

// Fit learns the fragment vocabulary from the corpus.  Calling Fit again
// replaces the vocabulary; it does not accumulate across calls.
func (c *Circus) Fit(structures []string) error {
	vocab := []string{}
	index := map[string]int{}

	for _, s := range structures {
		mol, err := chem.ParseSMILES(s)
		if err != nil {
			return errors.WrapMsg(err, "circus fit failed on structure "+s)
		}
		for _, frag := range chem.EnumerateFragments(mol, c.lower, c.upper, c.onBond) {
			if _, seen := index[frag.Signature]; !seen {
				index[frag.Signature] = len(vocab)
				vocab = append(vocab, frag.Signature)
			}
		}
	}

	c.vocabulary = vocab
	c.vocabIndex = index
	c.fit = true
	return nil
}

// Transform emits one occurrence-count row per structure over the fit-time
// vocabulary.  Fragments absent from the vocabulary are ignored — Transform
// never widens the schema established by Fit.
func (c *Circus) Transform(structures []string) (*dataset.FeatureTable, error) {
	if !c.fit {
		return nil, errors.New(errors.CodeUnfitTransformer,
			"circus transformer must be fit before transform")
	}

	out := dataset.NewFeatureTable(c.vocabulary)
	for _, s := range structures {
		mol, err := chem.ParseSMILES(s)
		if err != nil {
			return nil, errors.WrapMsg(err, "circus transform failed on structure "+s)
		}
		row := make([]float64, len(c.vocabulary))
		for _, frag := range chem.EnumerateFragments(mol, c.lower, c.upper, c.onBond) {
			if col, ok := c.vocabIndex[frag.Signature]; ok {
				row[col]++
			}
		}
		if err := out.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FeatureNames returns the learned vocabulary in column order; nil before Fit.
func (c *Circus) FeatureNames() []string {
	out := make([]string, len(c.vocabulary))
	copy(out, c.vocabulary)
	return out
}

// IsFit reports whether Fit has been called.
func (c *Circus) IsFit() bool { return c.fit }

// FragmentsOf enumerates the fragments of one structure within the
// transformer's radius configuration.  The attribution driver uses this to
// map vocabulary columns back to atom sets.
func (c *Circus) FragmentsOf(smiles string) (*chem.Molecule, []chem.Fragment, error) {
	mol, err := chem.ParseSMILES(smiles)
	if err != nil {
		return nil, nil, err
	}
	return mol, chem.EnumerateFragments(mol, c.lower, c.upper, c.onBond), nil
}

// VocabularyIndex returns the column position of a fragment signature.
func (c *Circus) VocabularyIndex(signature string) (int, bool) {
	col, ok := c.vocabIndex[signature]
	return col, ok
}
