package extract

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-prewhiten/dsp/core"
	"github.com/cwbudde/algo-prewhiten/dsp/spectrum"
)

// Config holds the parameters of one extraction run. Zero values disable
// the optional limits.
type Config struct {
	// Numin and Numax bound the band searched for peaks.
	Numin float64
	Numax float64
	// HiFreq is the highest periodogram frequency. Zero means Numax.
	HiFreq float64
	// Oversampling is the periodogram oversampling factor. Zero means
	// spectrum.DefaultOversampling.
	Oversampling float64
	// SNRWidth is the half-width of the noise window around each
	// extracted frequency. Zero disables noise and SNR.
	SNRWidth float64

	// MaxComponents stops the run after that many iterations.
	MaxComponents int
	// AmpLimit stops the run once the newest amplitude falls below it.
	AmpLimit float64
	// SNRLimit stops the run once the newest SNR falls below it. Requires
	// SNRWidth.
	SNRLimit float64

	// MinSeparation skips peaks closer than this to an extracted frequency.
	MinSeparation float64
	// RefineFrequencies lets the fit adjust frequencies too.
	RefineFrequencies bool
	Method            spectrum.Method
	// Workers limits periodogram parallelism. Zero uses all CPUs.
	Workers int
}

// WithDefaults returns c with HiFreq and Oversampling filled in.
func (c Config) WithDefaults() Config {
	if c.HiFreq == 0 {
		c.HiFreq = c.Numax
	}
	if c.Oversampling == 0 {
		c.Oversampling = spectrum.DefaultOversampling
	}
	return c
}

// Validate checks c after defaults are applied.
func (c Config) Validate() error {
	c = c.WithDefaults()
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"numin", c.Numin}, {"numax", c.Numax}, {"hifreq", c.HiFreq},
		{"oversampling", c.Oversampling}, {"snr width", c.SNRWidth},
		{"amp limit", c.AmpLimit}, {"snr limit", c.SNRLimit},
		{"min separation", c.MinSeparation},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%w: %s must be finite and >= 0: %v", ErrInvalidConfig, f.name, f.v)
		}
	}
	switch {
	case c.Numax <= c.Numin:
		return fmt.Errorf("%w: numax %v must exceed numin %v", ErrInvalidConfig, c.Numax, c.Numin)
	case c.HiFreq < c.Numax:
		return fmt.Errorf("%w: hifreq %v below numax %v", ErrInvalidConfig, c.HiFreq, c.Numax)
	case c.Oversampling <= 0:
		return fmt.Errorf("%w: oversampling must be > 0", ErrInvalidConfig)
	case c.MaxComponents < 0:
		return fmt.Errorf("%w: max components must be >= 0: %d", ErrInvalidConfig, c.MaxComponents)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must be >= 0: %d", ErrInvalidConfig, c.Workers)
	case c.SNRLimit > 0 && c.SNRWidth == 0:
		return fmt.Errorf("%w: snr limit needs a snr width", ErrInvalidConfig)
	case c.Method != spectrum.MethodDirect && c.Method != spectrum.MethodFast:
		return fmt.Errorf("%w: unknown method %v", ErrInvalidConfig, c.Method)
	}
	return nil
}

// HasTermination reports whether any limit can end a Run.
func (c Config) HasTermination() bool {
	return c.MaxComponents > 0 || c.AmpLimit > 0 || c.SNRLimit > 0
}

func (c Config) spectrumOptions() []spectrum.Option {
	return []spectrum.Option{
		spectrum.WithOversampling(c.Oversampling),
		spectrum.WithMethod(c.Method),
		spectrum.WithProcessorOptions(core.WithWorkers(c.Workers)),
	}
}
