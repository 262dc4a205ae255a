// Package config loads run settings for the pysca command from defaults,
// an optional YAML file, PYSCA_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/algo-prewhiten/dsp/spectrum"
	"github.com/cwbudde/algo-prewhiten/extract"
	"github.com/cwbudde/algo-prewhiten/measure/montecarlo"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable, e.g. PYSCA_ANALYSIS_OFAC.
const EnvPrefix = "PYSCA"

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

var ErrInvalid = errors.New("config: invalid")

// Config is the complete configuration of a pysca run.
type Config struct {
	Analysis   Analysis   `mapstructure:"analysis" yaml:"analysis" json:"analysis"`
	MonteCarlo MonteCarlo `mapstructure:"montecarlo" yaml:"montecarlo" json:"montecarlo"`
	Output     Output     `mapstructure:"output" yaml:"output" json:"output"`
}

// Analysis holds the extraction parameters.
type Analysis struct {
	Numin             float64 `mapstructure:"numin" yaml:"numin" json:"numin" validate:"gte=0"`
	Numax             float64 `mapstructure:"numax" yaml:"numax" json:"numax" validate:"gtfield=Numin"`
	HiFreq            float64 `mapstructure:"hifreq" yaml:"hifreq" json:"hifreq" validate:"omitempty,gtefield=Numax"`
	Oversampling      float64 `mapstructure:"ofac" yaml:"ofac" json:"ofac" validate:"gt=0"`
	SNRWidth          float64 `mapstructure:"snr_width" yaml:"snr_width" json:"snr_width" validate:"gte=0"`
	MaxComponents     int     `mapstructure:"max_components" yaml:"max_components" json:"max_components" validate:"gte=0"`
	AmpLimit          float64 `mapstructure:"amp_limit" yaml:"amp_limit" json:"amp_limit" validate:"gte=0"`
	SNRLimit          float64 `mapstructure:"snr_limit" yaml:"snr_limit" json:"snr_limit" validate:"gte=0"`
	MinSeparation     float64 `mapstructure:"min_separation" yaml:"min_separation" json:"min_separation" validate:"gte=0"`
	RefineFrequencies bool    `mapstructure:"refine_freq" yaml:"refine_freq" json:"refine_freq"`
	Method            string  `mapstructure:"method" yaml:"method" json:"method" validate:"oneof=direct fast"`
	Workers           int     `mapstructure:"workers" yaml:"workers" json:"workers" validate:"gte=0"`
}

// MonteCarlo holds the uncertainty estimation parameters.
type MonteCarlo struct {
	Mu     float64 `mapstructure:"mu" yaml:"mu" json:"mu"`
	Sigma  float64 `mapstructure:"sigma" yaml:"sigma" json:"sigma" validate:"gte=0"`
	Trials int     `mapstructure:"trials" yaml:"trials" json:"trials" validate:"gt=0"`
	Seed   int64   `mapstructure:"seed" yaml:"seed" json:"seed"`
}

// Output selects where and how results are written.
type Output struct {
	// Path is the result file; empty writes to stdout only.
	Path   string `mapstructure:"path" yaml:"path" json:"path"`
	Format string `mapstructure:"format" yaml:"format" json:"format" validate:"oneof=text yaml json"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("analysis.numin", 0.0)
	v.SetDefault("analysis.numax", 0.0)
	v.SetDefault("analysis.hifreq", 0.0)
	v.SetDefault("analysis.ofac", spectrum.DefaultOversampling)
	v.SetDefault("analysis.snr_width", 0.0)
	v.SetDefault("analysis.max_components", 0)
	v.SetDefault("analysis.amp_limit", 0.0)
	v.SetDefault("analysis.snr_limit", 0.0)
	v.SetDefault("analysis.min_separation", 0.0)
	v.SetDefault("analysis.refine_freq", false)
	v.SetDefault("analysis.method", spectrum.MethodDirect.String())
	v.SetDefault("analysis.workers", 0)
	v.SetDefault("montecarlo.mu", 0.0)
	v.SetDefault("montecarlo.sigma", 0.0)
	v.SetDefault("montecarlo.trials", 100)
	v.SetDefault("montecarlo.seed", 1)
	v.SetDefault("output.path", "")
	v.SetDefault("output.format", FormatText)
}

// Load reads configuration into v and returns the validated result. file
// may be empty. Values already set on v (flags, v.Set) take precedence
// over the environment, which takes precedence over the file.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Analysis.SNRLimit > 0 && c.Analysis.SNRWidth == 0 {
		return fmt.Errorf("%w: snr_limit requires snr_width", ErrInvalid)
	}
	return nil
}

// ExtractConfig converts the analysis section for the extractor.
func (c *Config) ExtractConfig() (extract.Config, error) {
	method, err := spectrum.ParseMethod(c.Analysis.Method)
	if err != nil {
		return extract.Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	a := c.Analysis
	return extract.Config{
		Numin:             a.Numin,
		Numax:             a.Numax,
		HiFreq:            a.HiFreq,
		Oversampling:      a.Oversampling,
		SNRWidth:          a.SNRWidth,
		MaxComponents:     a.MaxComponents,
		AmpLimit:          a.AmpLimit,
		SNRLimit:          a.SNRLimit,
		MinSeparation:     a.MinSeparation,
		RefineFrequencies: a.RefineFrequencies,
		Method:            method,
		Workers:           a.Workers,
	}, nil
}

// MonteCarloConfig converts the analysis band and Monte Carlo section.
func (c *Config) MonteCarloConfig() (montecarlo.Config, error) {
	method, err := spectrum.ParseMethod(c.Analysis.Method)
	if err != nil {
		return montecarlo.Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return montecarlo.Config{
		Numin:        c.Analysis.Numin,
		Numax:        c.Analysis.Numax,
		HiFreq:       c.Analysis.HiFreq,
		Oversampling: c.Analysis.Oversampling,
		Method:       method,
		Mu:           c.MonteCarlo.Mu,
		Sigma:        c.MonteCarlo.Sigma,
		Trials:       c.MonteCarlo.Trials,
		Seed:         c.MonteCarlo.Seed,
		Workers:      c.Analysis.Workers,
	}, nil
}

// WriteYAML writes c as a YAML document that Load can read back.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}
