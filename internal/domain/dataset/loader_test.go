package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_TabSeparated(t *testing.T) {
	path := writeFile(t, "in.tsv", "ID\tSMILES\nm1\tCCO\nm2\tCCC\n")

	table, err := Load(path, "\t")
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "SMILES"}, table.Columns())
	assert.Equal(t, 2, table.NumRows())

	smiles, err := table.Column("SMILES")
	require.NoError(t, err)
	assert.Equal(t, []string{"CCO", "CCC"}, smiles)
}

func TestLoad_CommaSeparated(t *testing.T) {
	path := writeFile(t, "in.csv", "ID,SMILES\nm1,CCO\n")

	table, err := Load(path, ",")
	require.NoError(t, err)
	assert.Equal(t, 1, table.NumRows())
}

func TestLoad_RaggedRows(t *testing.T) {
	path := writeFile(t, "bad.tsv", "A\tB\nonly-one-field\n")

	_, err := Load(path, "\t")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeFileFormat))
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.tsv", "")

	_, err := Load(path, "\t")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeFileFormat))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.tsv"), "\t")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeFileFormat))
}

func TestLoad_BadSeparator(t *testing.T) {
	path := writeFile(t, "in.tsv", "A\n1\n")
	_, err := Load(path, "ab")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestExtract_WithIDColumn(t *testing.T) {
	path := writeFile(t, "in.tsv", "ID\tSMILES\nm1\tCCO\nm2\tCCC\n")
	table, err := Load(path, "\t")
	require.NoError(t, err)

	ids, structures, err := Extract(table, "ID", "SMILES")
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, ids)
	assert.Equal(t, []string{"CCO", "CCC"}, structures)
}

func TestExtract_SyntheticIDs(t *testing.T) {
	path := writeFile(t, "in.tsv", "SMILES\nCCO\nCCC\nCCN\n")
	table, err := Load(path, "\t")
	require.NoError(t, err)

	ids, _, err := Extract(table, "ID", "SMILES")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, ids)
}

func TestExtract_MissingStructureColumn(t *testing.T) {
	path := writeFile(t, "in.tsv", "ID\tname\nm1\tfoo\n")
	table, err := Load(path, "\t")
	require.NoError(t, err)

	_, _, err = Extract(table, "ID", "SMILES")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeMissingColumn))
	assert.Contains(t, err.Error(), "SMILES")
}
