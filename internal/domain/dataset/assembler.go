package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

// Assemble merges the identifier sequence and a feature table into a single
// ID-prefixed RowTable, preserving input row order.  The first column is
// always named "ID".
//
// Fails with a ShapeMismatch-coded error when len(ids) differs from the
// feature row count.
func Assemble(ids []string, features *FeatureTable) (*RowTable, error) {
	if len(ids) != features.NumRows() {
		return nil, errors.Newf(errors.CodeShapeMismatch,
			"%d IDs for %d feature rows", len(ids), features.NumRows())
	}

	cols := append([]string{"ID"}, features.Columns()...)
	out, err := NewRowTable(cols)
	if err != nil {
		return nil, err
	}

	for r := 0; r < features.NumRows(); r++ {
		vec := features.Row(r)
		row := make([]string, 0, len(cols))
		row = append(row, ids[r])
		for _, v := range vec {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := out.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WriteCSV writes the table as comma-separated text to path.  The table is
// first written to a temporary file in the destination directory and renamed
// into place, so a failure never leaves a partial output file behind.
func WriteCSV(table *RowTable, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".moldesc-*.csv")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeIO, "failed to create output file in "+dir)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.Write(table.Columns())
	if writeErr == nil {
		for r := 0; r < table.NumRows() && writeErr == nil; r++ {
			writeErr = w.Write(table.Row(r))
		}
	}
	w.Flush()
	if writeErr == nil {
		writeErr = w.Error()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpName)
		return errors.Wrap(writeErr, errors.ErrCodeIO, "failed to write output file "+path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, errors.ErrCodeIO, "failed to finalize output file "+path)
	}
	return nil
}
