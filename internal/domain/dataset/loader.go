package dataset

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

// Load reads a delimited text file into a RowTable.  The first record is the
// header; every subsequent record must have the same field count.  separator
// must be a single rune (default callers pass "\t").
//
// Fails with a FileFormat-coded error when the file cannot be read or parsed
// with the given separator.
func Load(path, separator string) (*RowTable, error) {
	if len([]rune(separator)) != 1 {
		return nil, errors.Newf(errors.CodeInvalidParam,
			"separator must be a single character, got %q", separator)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeFileFormat, "failed to open input file "+path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = []rune(separator)[0]
	// Ragged rows are a format error, surfaced below by ReadAll.
	r.FieldsPerRecord = 0

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeFileFormat,
			"failed to parse input file "+path)
	}
	if len(records) == 0 {
		return nil, errors.New(errors.CodeFileFormat, "input file "+path+" is empty")
	}

	table, err := NewRowTable(records[0])
	if err != nil {
		return nil, err
	}
	for _, rec := range records[1:] {
		if err := table.AppendRow(rec); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// Extract pulls the identifier and structure sequences out of a loaded table.
// The structure column is mandatory; a missing identifier column is not fatal
// and yields a synthetic "0".."N-1" sequence instead.
func Extract(table *RowTable, idColumn, structureColumn string) (ids []string, structures []string, err error) {
	structures, err = table.Column(structureColumn)
	if err != nil {
		return nil, nil, err
	}

	if table.HasColumn(idColumn) {
		ids, err = table.Column(idColumn)
		if err != nil {
			return nil, nil, err
		}
		return ids, structures, nil
	}

	ids = make([]string, table.NumRows())
	for i := range ids {
		ids[i] = strconv.Itoa(i)
	}
	return ids, structures, nil
}
