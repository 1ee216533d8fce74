// Package config layers the command-line run configuration: built-in
// defaults, an optional YAML file, STELLAR_* environment variables and
// explicitly set flags, in increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-stellar/pipeline"
	"github.com/cwbudde/algo-stellar/spectrum"
)

// EnvPrefix prefixes environment overrides, e.g. STELLAR_BROADENING_VSINI.
const EnvPrefix = "STELLAR"

// Flag names registered by RegisterFlags.
const (
	FlagConfig           = "config"
	FlagVerbose          = "verbose"
	FlagVMac             = "vmac"
	FlagVSini            = "vsini"
	FlagLimbDarkening    = "limb-darkening"
	FlagResolution       = "resolution"
	FlagFromResolution   = "from-resolution"
	FlagUniformTolerance = "uniform-tolerance"
)

// Config is the resolved run configuration.
type Config struct {
	Broadening       pipeline.Params `mapstructure:"broadening"`
	Verbose          bool            `mapstructure:"verbose"`
	UniformTolerance float64         `mapstructure:"uniform_tolerance"`
}

// flag name -> configuration key
var flagKeys = map[string]string{
	FlagVerbose:          "verbose",
	FlagVMac:             "broadening.vmac",
	FlagVSini:            "broadening.vsini",
	FlagLimbDarkening:    "broadening.limb_darkening_coeff",
	FlagResolution:       "broadening.resolution",
	FlagFromResolution:   "broadening.from_resolution",
	FlagUniformTolerance: "uniform_tolerance",
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "YAML configuration file")
	fs.BoolP(FlagVerbose, "v", false, "enable debug logging")
	fs.Float64(FlagVMac, 0, "macroturbulence velocity in km/s (0 disables)")
	fs.Float64(FlagVSini, 0, "projected rotational velocity in km/s (< 0.5 disables)")
	fs.Float64(FlagLimbDarkening, 0.6, "linear limb-darkening coefficient in [0, 1]")
	fs.Float64(FlagResolution, 0, "resolving power R (0 disables)")
	fs.Float64(FlagFromResolution, 0, "resolving power of the input spectrum (0 means infinite)")
	fs.Float64(FlagUniformTolerance, spectrum.DefaultUniformTolerance, "relative step deviation accepted as a uniform grid")
}

// Load resolves the configuration for the flags in fs, which must have been
// set up with RegisterFlags and parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			return nil, fmt.Errorf("config: flag --%s not registered", name)
		}
		v.SetDefault(key, f.DefValue)
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("config: bind --%s: %w", name, err)
		}
	}

	if path, _ := fs.GetString(FlagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Broadening.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PipelineOptions returns the pipeline options implied by cfg.
func (c *Config) PipelineOptions() []pipeline.Option {
	return []pipeline.Option{pipeline.WithUniformTolerance(c.UniformTolerance)}
}
