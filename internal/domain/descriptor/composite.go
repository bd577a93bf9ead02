package descriptor

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/turtacn/MolDesc-Toolkit/internal/domain/dataset"
	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Composite configuration document
// ─────────────────────────────────────────────────────────────────────────────

// AssociatorEntry is one (column name, transformer spec) pair of a composite
// configuration.  Its JSON form is a two-element array: ["column", {spec}].
type AssociatorEntry struct {
	Column string
	Spec   Spec
}

// UnmarshalJSON decodes the ["column", {spec}] pair form.
func (e *AssociatorEntry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("associator entry must be a [column, spec] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Column); err != nil {
		return fmt.Errorf("associator entry column: %w", err)
	}
	if err := json.Unmarshal(pair[1], &e.Spec); err != nil {
		return fmt.Errorf("associator entry spec for column %q: %w", e.Column, err)
	}
	return nil
}

// MarshalJSON encodes the pair form, used by the init command's templates.
func (e AssociatorEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{e.Column, e.Spec})
}

// CompositeConfig is the declarative description of a multi-column composite
// descriptor: an ordered associator of per-column specs, the subset of
// columns holding structures, and the structure notation.
type CompositeConfig struct {
	Associator       []AssociatorEntry `json:"associator"`
	StructureColumns []string          `json:"structure_columns"`
	Fmt              string            `json:"fmt,omitempty"`
}

// LoadCompositeConfig reads and decodes a composite configuration document.
func LoadCompositeConfig(path string) (*CompositeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig,
			"failed to read configuration file "+path)
	}
	cfg := &CompositeConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig,
			"failed to parse configuration file "+path)
	}
	if len(cfg.Associator) == 0 {
		return nil, errors.New(errors.CodeInvalidConfig,
			"configuration declares no associator columns")
	}
	return cfg, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// ComplexFragmentor — multi-column composite transformer
// ─────────────────────────────────────────────────────────────────────────────

// ComplexFragmentor combines independent per-column transformers into one
// wide feature table.  Column order follows the associator declaration; each
// inner feature name is prefixed with "<column>__" to avoid collisions.
type ComplexFragmentor struct {
	entries []compositeEntry
	fit     bool
}

type compositeEntry struct {
	column      string
	transformer Transformer
}

// BuildComposite constructs every inner transformer declared by cfg.
// Construction does not stop at the first bad spec: all per-column errors are
// aggregated into a single InvalidConfig-coded error so a caller can correct
// the whole document in one round.
func BuildComposite(cfg *CompositeConfig) (*ComplexFragmentor, error) {
	var buildErrs error
	entries := make([]compositeEntry, 0, len(cfg.Associator))

	for _, entry := range cfg.Associator {
		spec := entry.Spec
		if spec.Fmt == "" {
			spec.Fmt = cfg.Fmt
		}
		tr, err := Build(spec)
		if err != nil {
			buildErrs = multierr.Append(buildErrs,
				fmt.Errorf("column %q: %w", entry.Column, err))
			continue
		}
		entries = append(entries, compositeEntry{column: entry.Column, transformer: tr})
	}

	if buildErrs != nil {
		return nil, errors.Wrap(buildErrs, errors.CodeInvalidConfig,
			"composite configuration has invalid transformer specs")
	}
	return &ComplexFragmentor{entries: entries}, nil
}

// Columns returns the declared column names in associator order.
func (c *ComplexFragmentor) Columns() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.column
	}
	return out
}

// Fit extracts each declared column from the table and fits its inner
// transformer on those values.  Fails with a MissingColumn-coded error when
// a declared column is absent.
func (c *ComplexFragmentor) Fit(table *dataset.RowTable) error {
	for _, e := range c.entries {
		values, err := table.Column(e.column)
		if err != nil {
			return err
		}
		if err := e.transformer.Fit(values); err != nil {
			return errors.WrapMsg(err, "failed to fit transformer for column "+e.column)
		}
	}
	c.fit = true
	return nil
}

// Transform transforms each declared column independently and concatenates
// the per-column feature tables horizontally, in associator order.  The
// declared columns are re-validated against the table: a column present at
// fit time but absent now is still a MissingColumn failure.
func (c *ComplexFragmentor) Transform(table *dataset.RowTable) (*dataset.FeatureTable, error) {
	if !c.fit {
		return nil, errors.New(errors.CodeUnfitTransformer,
			"composite transformer must be fit before transform")
	}

	// Validate the full column set up front so the error names the first
	// missing column before any expensive transform work starts.
	for _, e := range c.entries {
		if !table.HasColumn(e.column) {
			return nil, errors.MissingColumn(e.column)
		}
	}

	var combined *dataset.FeatureTable
	for _, e := range c.entries {
		values, err := table.Column(e.column)
		if err != nil {
			return nil, err
		}
		part, err := e.transformer.Transform(values)
		if err != nil {
			return nil, errors.WrapMsg(err, "failed to transform column "+e.column)
		}
		if combined == nil {
			combined = part.Prefixed(e.column + "__")
			continue
		}
		combined, err = combined.HStack(part, e.column+"__")
		if err != nil {
			return nil, err
		}
	}
	return combined, nil
}

// FeatureNames returns the combined prefixed schema in associator order.
func (c *ComplexFragmentor) FeatureNames() []string {
	var out []string
	for _, e := range c.entries {
		for _, name := range e.transformer.FeatureNames() {
			out = append(out, e.column+"__"+name)
		}
	}
	return out
}

// IsFit reports whether Fit has been called.
func (c *ComplexFragmentor) IsFit() bool { return c.fit }
