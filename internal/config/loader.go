package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all toolkit settings.
const envPrefix = "MOLDESC"

// newViper builds a pre-configured Viper instance with the toolkit's standard
// settings: YAML file type, MOLDESC_ env prefix, automatic env binding, and a
// key replacer that maps "." → "_" so that nested keys like "descriptor.n_bits"
// resolve to "MOLDESC_DESCRIPTOR_N_BITS".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Registering defaults makes every key known to viper, which is what lets
	// AutomaticEnv overrides reach Unmarshal even without a config file.
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("descriptor.separator", DefaultSeparator)
	v.SetDefault("descriptor.smiles_column", DefaultSMILESColumn)
	v.SetDefault("descriptor.id_column", DefaultIDColumn)
	v.SetDefault("descriptor.lower", DefaultCircusLower)
	v.SetDefault("descriptor.upper", DefaultCircusUpper)
	v.SetDefault("descriptor.n_bits", DefaultNBits)
	v.SetDefault("descriptor.radius", DefaultRadius)
	v.SetDefault("plot.width_inches", DefaultPlotWidthInches)
	v.SetDefault("plot.height_inches", DefaultPlotHeightInches)
	v.SetDefault("plot.bins", DefaultPlotBins)
	return v
}

// LoadFromFile reads the YAML file at configPath, merges any MOLDESC_*
// environment variable overrides, applies defaults for unset fields, and
// validates the result.  It returns a fully-populated *Config or a
// descriptive error.
func LoadFromFile(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from MOLDESC_* environment variables,
// with no config file required.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

// unmarshalAndFinalize decodes the viper state into a Config, applies
// defaults, and validates.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
