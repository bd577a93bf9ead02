package descriptor

import (
	"sort"
	"strconv"

	"github.com/turtacn/MolDesc-Toolkit/internal/domain/dataset"
	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

// The transformers in this file handle non-structure columns inside composite
// configurations: numeric passthrough and categorical solvent encoding.

// ─────────────────────────────────────────────────────────────────────────────
// PassThrough
// ─────────────────────────────────────────────────────────────────────────────

// PassThrough copies an already-numeric column into a single feature column.
type PassThrough struct {
	fit bool
}

// NewPassThrough constructs a PassThrough transformer.
func NewPassThrough() *PassThrough { return &PassThrough{} }

// Fit is a no-op; the schema is always one column.
func (p *PassThrough) Fit(_ []string) error {
	p.fit = true
	return nil
}

// Transform parses each value as a float64.
func (p *PassThrough) Transform(values []string) (*dataset.FeatureTable, error) {
	out := dataset.NewFeatureTable(p.FeatureNames())
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Newf(errors.CodeFileFormat,
				"passthrough row %d: value %q is not numeric", i, v)
		}
		if err := out.AppendRow([]float64{f}); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FeatureNames returns the single passthrough column name.
func (p *PassThrough) FeatureNames() []string { return []string{"value"} }

// IsFit reports whether Fit has been called.
func (p *PassThrough) IsFit() bool { return p.fit }

// ─────────────────────────────────────────────────────────────────────────────
// SolventVectorizer
// ─────────────────────────────────────────────────────────────────────────────

// SolventVectorizer one-hot encodes a categorical solvent column.  The
// category set is learned during Fit; unseen categories at transform time
// yield an all-zero row rather than a schema change, mirroring the
// vocabulary-stability rule of the substructure descriptors.
//
// Categories are ordered lexically: unlike fragment vocabularies there is no
// meaningful discovery order for solvent names, and a sorted schema survives
// row reordering between fit corpora.
type SolventVectorizer struct {
	fit        bool
	categories []string
	index      map[string]int
}

// NewSolventVectorizer constructs an unfit SolventVectorizer.
func NewSolventVectorizer() *SolventVectorizer { return &SolventVectorizer{} }

// Fit learns the category set.  Re-fitting replaces the previous set.
func (s *SolventVectorizer) Fit(values []string) error {
	set := map[string]bool{}
	for _, v := range values {
		set[v] = true
	}
	cats := make([]string, 0, len(set))
	for v := range set {
		cats = append(cats, v)
	}
	sort.Strings(cats)

	index := make(map[string]int, len(cats))
	for i, v := range cats {
		index[v] = i
	}
	s.categories = cats
	s.index = index
	s.fit = true
	return nil
}

// Transform emits one one-hot row per value over the fit-time category set.
func (s *SolventVectorizer) Transform(values []string) (*dataset.FeatureTable, error) {
	if !s.fit {
		return nil, errors.New(errors.CodeUnfitTransformer,
			"solvent vectorizer must be fit before transform")
	}
	out := dataset.NewFeatureTable(s.FeatureNames())
	for _, v := range values {
		row := make([]float64, len(s.categories))
		if col, ok := s.index[v]; ok {
			row[col] = 1
		}
		if err := out.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FeatureNames returns the learned category columns; nil before Fit.
func (s *SolventVectorizer) FeatureNames() []string {
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// IsFit reports whether Fit has been called.
func (s *SolventVectorizer) IsFit() bool { return s.fit }
