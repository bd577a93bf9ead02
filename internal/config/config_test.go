package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultSeparator, cfg.Descriptor.Separator)
	assert.Equal(t, DefaultSMILESColumn, cfg.Descriptor.SMILESColumn)
	assert.Equal(t, DefaultIDColumn, cfg.Descriptor.IDColumn)
	assert.Equal(t, DefaultCircusLower, cfg.Descriptor.Lower)
	assert.Equal(t, DefaultCircusUpper, cfg.Descriptor.Upper)
	assert.Equal(t, DefaultNBits, cfg.Descriptor.NBits)
	assert.Equal(t, DefaultRadius, cfg.Descriptor.Radius)
	assert.Equal(t, DefaultPlotBins, cfg.Plot.Bins)
	require.NoError(t, cfg.Validate())
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Descriptor.NBits = 2048
	cfg.Descriptor.Separator = ","
	ApplyDefaults(cfg)

	assert.Equal(t, 2048, cfg.Descriptor.NBits)
	assert.Equal(t, ",", cfg.Descriptor.Separator)
	assert.Equal(t, DefaultCircusUpper, cfg.Descriptor.Upper)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative lower", func(c *Config) { c.Descriptor.Lower = -1 }},
		{"upper below lower", func(c *Config) { c.Descriptor.Lower = 3; c.Descriptor.Upper = 1 }},
		{"zero nbits", func(c *Config) { c.Descriptor.NBits = -5 }},
		{"negative radius", func(c *Config) { c.Descriptor.Radius = -2 }},
		{"zero plot size", func(c *Config) { c.Plot.WidthInches = -1 }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	doc := `
log:
  level: debug
  format: json
descriptor:
  separator: ","
  n_bits: 512
plot:
  bins: 50
`
	path := filepath.Join(t.TempDir(), "moldesc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ",", cfg.Descriptor.Separator)
	assert.Equal(t, 512, cfg.Descriptor.NBits)
	assert.Equal(t, 50, cfg.Plot.Bins)
	// Unset fields keep defaults.
	assert.Equal(t, DefaultSMILESColumn, cfg.Descriptor.SMILESColumn)
	assert.Equal(t, DefaultCircusUpper, cfg.Descriptor.Upper)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadFromFile_InvalidValues(t *testing.T) {
	doc := "descriptor:\n  n_bits: -4\n"
	path := filepath.Join(t.TempDir(), "moldesc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MOLDESC_DESCRIPTOR_N_BITS", "256")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Descriptor.NBits)
}
