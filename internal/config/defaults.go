package config

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	DefaultSeparator    = "\t"
	DefaultSMILESColumn = "SMILES"
	DefaultIDColumn     = "ID"

	DefaultCircusLower = 0
	DefaultCircusUpper = 3

	DefaultNBits  = 1024
	DefaultRadius = 2

	DefaultPlotWidthInches  = 8.0
	DefaultPlotHeightInches = 6.0
	DefaultPlotBins         = 20
)

// ApplyDefaults fills every zero-value field in cfg with the toolkit default.
// Fields already set by the caller are left unchanged so that explicit
// configuration always wins.  It must be called after unmarshalling and
// before Validate so optional-but-defaulted fields are never seen as missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stderr"}
	}
	if len(cfg.Log.ErrorOutputPaths) == 0 {
		cfg.Log.ErrorOutputPaths = []string{"stderr"}
	}

	// ── Descriptor ────────────────────────────────────────────────────────────
	if cfg.Descriptor.Separator == "" {
		cfg.Descriptor.Separator = DefaultSeparator
	}
	if cfg.Descriptor.SMILESColumn == "" {
		cfg.Descriptor.SMILESColumn = DefaultSMILESColumn
	}
	if cfg.Descriptor.IDColumn == "" {
		cfg.Descriptor.IDColumn = DefaultIDColumn
	}
	if cfg.Descriptor.Upper == 0 {
		cfg.Descriptor.Upper = DefaultCircusUpper
	}
	if cfg.Descriptor.NBits == 0 {
		cfg.Descriptor.NBits = DefaultNBits
	}
	if cfg.Descriptor.Radius == 0 {
		cfg.Descriptor.Radius = DefaultRadius
	}

	// ── Plot ──────────────────────────────────────────────────────────────────
	if cfg.Plot.WidthInches == 0 {
		cfg.Plot.WidthInches = DefaultPlotWidthInches
	}
	if cfg.Plot.HeightInches == 0 {
		cfg.Plot.HeightInches = DefaultPlotHeightInches
	}
	if cfg.Plot.Bins == 0 {
		cfg.Plot.Bins = DefaultPlotBins
	}
}

// NewDefaultConfig returns a Config populated entirely with defaults.
// Used by the CLI when no config file is found.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
