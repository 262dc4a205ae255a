package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-prewhiten/dsp/spectrum"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestViper returns a viper instance with a valid band set.
func newTestViper() *viper.Viper {
	v := viper.New()
	v.Set("analysis.numin", 0.01)
	v.Set("analysis.numax", 0.2)
	return v
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pysca.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newTestViper(), "")
	require.NoError(t, err)

	assert.Equal(t, 0.01, cfg.Analysis.Numin)
	assert.Equal(t, 0.2, cfg.Analysis.Numax)
	assert.Equal(t, 6.0, cfg.Analysis.Oversampling)
	assert.Equal(t, "direct", cfg.Analysis.Method)
	assert.Equal(t, 100, cfg.MonteCarlo.Trials)
	assert.Equal(t, int64(1), cfg.MonteCarlo.Seed)
	assert.Equal(t, FormatText, cfg.Output.Format)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
analysis:
  numin: 1.5
  numax: 24
  ofac: 10
  snr_width: 1
  snr_limit: 4
  method: fast
montecarlo:
  sigma: 0.2
  trials: 50
output:
  format: yaml
`)
	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 1.5, cfg.Analysis.Numin)
	assert.Equal(t, 24.0, cfg.Analysis.Numax)
	assert.Equal(t, 10.0, cfg.Analysis.Oversampling)
	assert.Equal(t, 4.0, cfg.Analysis.SNRLimit)
	assert.Equal(t, "fast", cfg.Analysis.Method)
	assert.Equal(t, 0.2, cfg.MonteCarlo.Sigma)
	assert.Equal(t, 50, cfg.MonteCarlo.Trials)
	assert.Equal(t, FormatYAML, cfg.Output.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(newTestViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "analysis:\n  numin: 1\n  numax: 5\n  ofac: 10\n")
	t.Setenv("PYSCA_ANALYSIS_OFAC", "4")
	t.Setenv("PYSCA_MONTECARLO_SEED", "42")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Analysis.Oversampling)
	assert.Equal(t, int64(42), cfg.MonteCarlo.Seed)
}

func TestLoadExplicitValuesOverrideEnv(t *testing.T) {
	t.Setenv("PYSCA_ANALYSIS_METHOD", "fast")
	v := newTestViper()
	v.Set("analysis.method", "direct")

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "direct", cfg.Analysis.Method)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"numax below numin", func(c *Config) { c.Analysis.Numax = 0.001 }},
		{"negative numin", func(c *Config) { c.Analysis.Numin = -1 }},
		{"hifreq below numax", func(c *Config) { c.Analysis.HiFreq = 0.1 }},
		{"zero ofac", func(c *Config) { c.Analysis.Oversampling = 0 }},
		{"unknown method", func(c *Config) { c.Analysis.Method = "nfft" }},
		{"unknown format", func(c *Config) { c.Output.Format = "csv" }},
		{"negative sigma", func(c *Config) { c.MonteCarlo.Sigma = -0.5 }},
		{"zero trials", func(c *Config) { c.MonteCarlo.Trials = 0 }},
		{"snr limit without width", func(c *Config) { c.Analysis.SNRLimit = 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(newTestViper(), "")
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestExtractConfig(t *testing.T) {
	v := newTestViper()
	v.Set("analysis.method", "fast")
	v.Set("analysis.snr_width", 0.05)
	v.Set("analysis.max_components", 3)
	cfg, err := Load(v, "")
	require.NoError(t, err)

	ec, err := cfg.ExtractConfig()
	require.NoError(t, err)
	assert.Equal(t, spectrum.MethodFast, ec.Method)
	assert.Equal(t, 3, ec.MaxComponents)
	assert.Equal(t, 0.05, ec.SNRWidth)
	require.NoError(t, ec.Validate())

	mc, err := cfg.MonteCarloConfig()
	require.NoError(t, err)
	assert.Equal(t, 0.2, mc.Numax)
	assert.Equal(t, 100, mc.Trials)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	v := newTestViper()
	v.Set("analysis.amp_limit", 0.5)
	cfg, err := Load(v, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "amp_limit: 0.5")

	path := writeFile(t, buf.String())
	back, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
