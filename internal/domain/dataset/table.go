// Package dataset provides the tabular data model for the MolDesc-Toolkit:
// string-valued row tables read from delimited files, numeric feature tables
// produced by descriptor transformers, and the loader/assembler operations
// that move data between them.  Tables preserve insertion order and are
// treated as read-only once handed to downstream components.
package dataset

import (
	"strconv"

	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// RowTable — ordered string table
// ─────────────────────────────────────────────────────────────────────────────

// RowTable is an ordered sequence of rows over a fixed, ordered set of
// uniquely named columns.  Row order equals file order.  The zero value is
// not usable; construct with NewRowTable.
type RowTable struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewRowTable constructs an empty RowTable with the given column names.
// Duplicate column names are rejected.
func NewRowTable(columns []string) (*RowTable, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return nil, errors.Newf(errors.CodeFileFormat, "duplicate column name %q", c)
		}
		index[c] = i
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &RowTable{columns: cols, index: index, rows: nil}, nil
}

// AppendRow appends one row.  The row length must match the column count.
func (t *RowTable) AppendRow(row []string) error {
	if len(row) != len(t.columns) {
		return errors.Newf(errors.CodeFileFormat,
			"row has %d fields, expected %d", len(row), len(t.columns))
	}
	r := make([]string, len(row))
	copy(r, row)
	t.rows = append(t.rows, r)
	return nil
}

// Columns returns the ordered column names.
func (t *RowTable) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// NumRows returns the row count.
func (t *RowTable) NumRows() int { return len(t.rows) }

// HasColumn reports whether the table contains the named column.
func (t *RowTable) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns all values of the named column in row order.
func (t *RowTable) Column(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.MissingColumn(name)
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Cell returns the value at the given row for the named column.
func (t *RowTable) Cell(row int, name string) (string, error) {
	i, ok := t.index[name]
	if !ok {
		return "", errors.MissingColumn(name)
	}
	if row < 0 || row >= len(t.rows) {
		return "", errors.Newf(errors.CodeInternal, "row index %d out of range", row)
	}
	return t.rows[row][i], nil
}

// Row returns a copy of the row at index r.
func (t *RowTable) Row(r int) []string {
	out := make([]string, len(t.columns))
	copy(out, t.rows[r])
	return out
}

// NumericColumn parses the named column as float64 values.  Fails with a
// FileFormat-coded error naming the offending cell when a value does not
// parse.
func (t *RowTable) NumericColumn(name string) ([]float64, error) {
	vals, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vals))
	for i, s := range vals {
		f, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return nil, errors.Newf(errors.CodeFileFormat,
				"column %q row %d: value %q is not numeric", name, i, s)
		}
		out[i] = f
	}
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// FeatureTable — fixed-width numeric table
// ─────────────────────────────────────────────────────────────────────────────

// FeatureTable is an ordered sequence of fixed-width numeric feature vectors.
// Row i corresponds to input structure i; the column count is identical
// across all rows.
type FeatureTable struct {
	columns []string
	rows    [][]float64
}

// NewFeatureTable constructs an empty FeatureTable with the given feature
// column names.
func NewFeatureTable(columns []string) *FeatureTable {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &FeatureTable{columns: cols}
}

// AppendRow appends one feature vector.  The vector width must match the
// column count.
func (f *FeatureTable) AppendRow(row []float64) error {
	if len(row) != len(f.columns) {
		return errors.Newf(errors.CodeShapeMismatch,
			"feature row has width %d, expected %d", len(row), len(f.columns))
	}
	r := make([]float64, len(row))
	copy(r, row)
	f.rows = append(f.rows, r)
	return nil
}

// Columns returns the ordered feature column names.
func (f *FeatureTable) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// NumRows returns the row count.
func (f *FeatureTable) NumRows() int { return len(f.rows) }

// NumColumns returns the feature width.
func (f *FeatureTable) NumColumns() int { return len(f.columns) }

// Row returns a copy of the feature vector at index r.
func (f *FeatureTable) Row(r int) []float64 {
	out := make([]float64, len(f.columns))
	copy(out, f.rows[r])
	return out
}

// Prefixed returns a copy of f with every column name prefixed.
func (f *FeatureTable) Prefixed(prefix string) *FeatureTable {
	cols := make([]string, len(f.columns))
	for i, c := range f.columns {
		cols[i] = prefix + c
	}
	out := NewFeatureTable(cols)
	for _, row := range f.rows {
		r := make([]float64, len(row))
		copy(r, row)
		out.rows = append(out.rows, r)
	}
	return out
}

// HStack concatenates other to the right of f, prefixing each of other's
// column names with prefix.  Both tables must have equal row counts.
func (f *FeatureTable) HStack(other *FeatureTable, prefix string) (*FeatureTable, error) {
	if f.NumRows() != other.NumRows() {
		return nil, errors.Newf(errors.CodeShapeMismatch,
			"cannot concatenate feature tables with %d and %d rows",
			f.NumRows(), other.NumRows())
	}
	cols := make([]string, 0, len(f.columns)+len(other.columns))
	cols = append(cols, f.columns...)
	for _, c := range other.columns {
		cols = append(cols, prefix+c)
	}
	out := NewFeatureTable(cols)
	for r := 0; r < f.NumRows(); r++ {
		row := make([]float64, 0, len(cols))
		row = append(row, f.rows[r]...)
		row = append(row, other.rows[r]...)
		out.rows = append(out.rows, row)
	}
	return out, nil
}
