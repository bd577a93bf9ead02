// Package config defines the configuration structures for the MolDesc-Toolkit
// CLI.  No I/O or parsing logic lives here — only plain data types and
// validation; loading is in loader.go, defaults in defaults.go.
package config

import "fmt"

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// LogConfig holds logger tunables.  It mirrors logging.LogConfig field for
// field so the config layer does not import the logging implementation.
type LogConfig struct {
	Level            string   `mapstructure:"level"`
	Format           string   `mapstructure:"format"` // "console" | "json"
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// DescriptorConfig holds default parameters applied when the corresponding
// CLI flag is left at its zero value.
type DescriptorConfig struct {
	// Separator is the input-table field separator.  Default "\t".
	Separator string `mapstructure:"separator"`

	// SMILESColumn is the default structure-column name.
	SMILESColumn string `mapstructure:"smiles_column"`

	// IDColumn is the default identifier-column name.
	IDColumn string `mapstructure:"id_column"`

	// Lower and Upper bound the CircuS fragment radius.
	Lower int `mapstructure:"lower"`
	Upper int `mapstructure:"upper"`

	// NBits is the default fingerprint width.
	NBits int `mapstructure:"n_bits"`

	// Radius is the default Morgan fingerprint radius.
	Radius int `mapstructure:"radius"`
}

// PlotConfig holds rendering parameters for the plotting backend.
type PlotConfig struct {
	// WidthInches and HeightInches size the rendered canvas.
	WidthInches  float64 `mapstructure:"width_inches"`
	HeightInches float64 `mapstructure:"height_inches"`

	// Bins is the default histogram bin count.
	Bins int `mapstructure:"bins"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Config — top-level aggregate
// ─────────────────────────────────────────────────────────────────────────────

// Config aggregates every configuration section of the toolkit.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Descriptor DescriptorConfig `mapstructure:"descriptor"`
	Plot       PlotConfig       `mapstructure:"plot"`
}

// Validate checks cross-field constraints that cannot be expressed by
// defaulting alone.  It is called by the loader after ApplyDefaults.
func (c *Config) Validate() error {
	if c.Descriptor.Lower < 0 {
		return fmt.Errorf("config: descriptor.lower must be non-negative, got %d", c.Descriptor.Lower)
	}
	if c.Descriptor.Upper < c.Descriptor.Lower {
		return fmt.Errorf("config: descriptor.upper (%d) must be >= descriptor.lower (%d)",
			c.Descriptor.Upper, c.Descriptor.Lower)
	}
	if c.Descriptor.NBits <= 0 {
		return fmt.Errorf("config: descriptor.n_bits must be positive, got %d", c.Descriptor.NBits)
	}
	if c.Descriptor.Radius < 0 {
		return fmt.Errorf("config: descriptor.radius must be non-negative, got %d", c.Descriptor.Radius)
	}
	if c.Plot.WidthInches <= 0 || c.Plot.HeightInches <= 0 {
		return fmt.Errorf("config: plot dimensions must be positive")
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: log.format must be \"console\" or \"json\", got %q", c.Log.Format)
	}
	return nil
}
