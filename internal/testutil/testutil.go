// Package testutil holds shared fixture helpers for the toolkit's tests:
// temporary delimited tables, configuration documents, and model artifacts.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteTempFile writes content to name inside a fresh temp directory and
// returns the full path.  The file is removed with the test's temp dir.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file %s: %v", name, err)
	}
	return path
}

// WriteTSV writes a tab-separated table (header first) and returns its path.
func WriteTSV(t *testing.T, rows ...[]string) string {
	t.Helper()
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}
	return WriteTempFile(t, "table.tsv", b.String())
}

// WriteJSON marshals v with indentation and writes it to name in a temp dir.
func WriteJSON(t *testing.T, name string, v interface{}) string {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	return WriteTempFile(t, name, string(data))
}
