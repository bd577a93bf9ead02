package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/MolDesc-Toolkit/internal/domain/descriptor"
)

// runCommand executes the root command with args, capturing stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "moldesc", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.SilenceUsage)
}

func TestNewRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()

	want := []string{"descriptors", "models", "analysis", "init", "info"}
	have := map[string]bool{}
	for _, sub := range cmd.Commands() {
		have[sub.Name()] = true
	}
	for _, name := range want {
		assert.True(t, have[name], "expected subcommand %q", name)
	}
}

func TestNewRootCommand_GlobalFlags(t *testing.T) {
	pf := NewRootCommand().PersistentFlags()
	for _, name := range []string{"config-file", "log-level", "verbose", "no-color"} {
		assert.NotNil(t, pf.Lookup(name), "expected persistent flag %q", name)
	}
}

func TestDescriptorsCmd_Flags(t *testing.T) {
	root := NewRootCommand()
	circus, _, err := root.Find([]string{"descriptors", "circus"})
	require.NoError(t, err)

	for _, name := range []string{"input", "output", "smiles-column", "id-column",
		"lower", "upper", "on-bond", "separator"} {
		assert.NotNil(t, circus.Flags().Lookup(name), "expected flag %q", name)
	}

	rdkit, _, err := root.Find([]string{"descriptors", "rdkit"})
	require.NoError(t, err)
	for _, name := range []string{"fp-type", "nbits", "radius"} {
		assert.NotNil(t, rdkit.Flags().Lookup(name), "expected flag %q", name)
	}
	assert.Equal(t, "morgan", rdkit.Flags().Lookup("fp-type").DefValue)
	assert.Equal(t, "1024", rdkit.Flags().Lookup("nbits").DefValue)
}

func TestGetCLIContext_WithoutPreRun(t *testing.T) {
	cmd := &cobra.Command{Use: "bare"}
	_, err := GetCLIContext(cmd)
	require.Error(t, err)
}

func TestInitCmd_WritesTemplate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "config.json")
	stdout, err := runCommand(t, "init", "--descriptor-type", "rdkit", "--output", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	// The fingerprint width key keeps its historical capitalisation.
	assert.Contains(t, string(data), `"nBits": 1024`)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	desc, ok := doc["descriptor"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "rdkit", desc["type"])
}

func TestInitCmd_ComplexTemplateRoundTrips(t *testing.T) {
	out := filepath.Join(t.TempDir(), "config.json")
	_, err := runCommand(t, "init", "--descriptor-type", "complex", "--output", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"associator"`)
	assert.Contains(t, string(data), `"structure_columns"`)

	// The emitted template must be consumable by the complex command as-is.
	cfg, err := descriptor.LoadCompositeConfig(out)
	require.NoError(t, err)
	require.Len(t, cfg.Associator, 1)
	assert.Equal(t, "molecules", cfg.Associator[0].Column)
}

func TestInitCmd_UnknownType(t *testing.T) {
	_, err := runCommand(t, "init", "--descriptor-type", "quantum")
	require.Error(t, err)
}

func TestInfoCmd(t *testing.T) {
	stdout, err := runCommand(t, "info")
	require.NoError(t, err)
	assert.Contains(t, stdout, "MolDesc-Toolkit System Information")
	assert.Contains(t, stdout, "morgan")
	assert.Contains(t, stdout, "circus")
}

func TestCircusCmd_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.tsv")
	require.NoError(t, os.WriteFile(input,
		[]byte("ID\tSMILES\nm1\tCCO\nm2\tCCC\n"), 0o644))
	output := filepath.Join(dir, "out.csv")

	stdout, err := runCommand(t, "descriptors", "circus",
		"--input", input, "--output", output, "--lower", "0", "--upper", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "OK:")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID,"))
}

func TestCircusCmd_MissingColumnFails(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.tsv")
	require.NoError(t, os.WriteFile(input, []byte("ID\tname\nm1\tfoo\n"), 0o644))

	_, err := runCommand(t, "descriptors", "circus",
		"--input", input, "--output", filepath.Join(dir, "out.csv"))
	require.Error(t, err)
}

func TestRDKitCmd_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.tsv")
	require.NoError(t, os.WriteFile(input, []byte("ID\tSMILES\nm1\tc1ccccc1\n"), 0o644))
	output := filepath.Join(dir, "out.csv")

	_, err := runCommand(t, "descriptors", "rdkit",
		"--input", input, "--output", output, "--nbits", "64")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "morgan_0")
}

func TestOptimizeCmd_ReportsNotImplemented(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "opt.json")
	require.NoError(t, os.WriteFile(cfg,
		[]byte(`{"data_dir": "d", "output_dir": "o", "trials": 5}`), 0o644))

	_, err := runCommand(t, "models", "optimize", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "training backend")
}

func TestRebuildCmd_ReportsNotImplemented(t *testing.T) {
	_, err := runCommand(t, "models", "rebuild", "--input-dir", "in", "--output-dir", "out")
	require.Error(t, err)
}

func TestPlotCmd_RequiresKnownKind(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.tsv")
	require.NoError(t, os.WriteFile(input, []byte("x\n1\n2\n"), 0o644))

	_, err := runCommand(t, "analysis", "plot",
		"--input", input, "--plot-type", "pie",
		"--x-column", "x", "--output", filepath.Join(dir, "p.png"))
	require.Error(t, err)
}

func TestColorAtomCmd_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(modelPath, []byte(`{
		"name": "logS",
		"descriptor": {"type": "circus", "lower": 0, "upper": 1},
		"feature_names": ["C", "C(C)", "C(C.O)", "O", "O(C)"],
		"weights": [1.0, 0.6, 0.9, 2.0, 0.4],
		"intercept": 0.5
	}`), 0o644))

	stdout, err := runCommand(t, "analysis", "coloratom",
		"--model-file", modelPath, "--smiles", "CCO")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Analyzing SMILES: CCO")
	assert.Contains(t, stdout, "Prediction: 6.4000")
}

func TestStripCodePrefix(t *testing.T) {
	assert.Equal(t, "column not found",
		stripCodePrefix("[DATA_002] column not found", "DATA_002"))
	assert.Equal(t, "plain message",
		stripCodePrefix("plain message", "DATA_002"))
}
