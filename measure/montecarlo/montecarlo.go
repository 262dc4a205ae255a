package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-prewhiten/dsp/core"
	"github.com/cwbudde/algo-prewhiten/dsp/signal"
	"github.com/cwbudde/algo-prewhiten/dsp/spectrum"
	"github.com/cwbudde/algo-prewhiten/series"
	"gonum.org/v1/gonum/stat"
)

const defaultTrials = 100

var ErrInvalidConfig = errors.New("montecarlo: invalid config")

// Config holds the perturbation and search parameters.
type Config struct {
	Numin, Numax float64
	// HiFreq defaults to Numax.
	HiFreq float64
	// Oversampling defaults to spectrum.DefaultOversampling.
	Oversampling float64
	Method       spectrum.Method

	// Mu and Sigma describe the added noise N(Mu, Sigma^2).
	Mu    float64
	Sigma float64
	// Trials defaults to 100.
	Trials int
	// Seed is the base seed; trial i uses Seed+i.
	Seed int64
	// Workers limits concurrent trials. Zero uses all CPUs.
	Workers int
}

// Result summarizes the peak frequencies of all trials.
type Result struct {
	// Frequencies holds the peak frequency of each trial in trial order.
	Frequencies []float64
	Median      float64
	Mean        float64
	// StdDev is the population standard deviation of Frequencies.
	StdDev float64
}

// Estimator runs Monte Carlo trials with a fixed config.
type Estimator struct {
	cfg Config
}

// NewEstimator validates cfg and fills in defaults.
func NewEstimator(cfg Config) (*Estimator, error) {
	cfg = normalizeConfig(cfg)
	switch {
	case !(cfg.Numax > cfg.Numin) || cfg.Numin < 0:
		return nil, fmt.Errorf("%w: band [%v, %v]", ErrInvalidConfig, cfg.Numin, cfg.Numax)
	case cfg.HiFreq < cfg.Numax:
		return nil, fmt.Errorf("%w: hifreq %v below numax %v", ErrInvalidConfig, cfg.HiFreq, cfg.Numax)
	case !(cfg.Sigma >= 0) || math.IsInf(cfg.Sigma, 0) || !core.IsFinite(cfg.Mu):
		return nil, fmt.Errorf("%w: noise N(%v, %v^2)", ErrInvalidConfig, cfg.Mu, cfg.Sigma)
	case cfg.Trials < 0 || cfg.Workers < 0:
		return nil, fmt.Errorf("%w: trials %d workers %d", ErrInvalidConfig, cfg.Trials, cfg.Workers)
	}
	return &Estimator{cfg: cfg}, nil
}

func normalizeConfig(cfg Config) Config {
	if cfg.HiFreq == 0 {
		cfg.HiFreq = cfg.Numax
	}
	if cfg.Oversampling == 0 {
		cfg.Oversampling = spectrum.DefaultOversampling
	}
	if cfg.Trials == 0 {
		cfg.Trials = defaultTrials
	}
	return cfg
}

// Config returns the effective configuration.
func (e *Estimator) Config() Config { return e.cfg }

// Run performs all trials on ts. Trials run concurrently; the result does
// not depend on the worker count.
func (e *Estimator) Run(ctx context.Context, ts *series.TimeSeries) (*Result, error) {
	if ts == nil || ts.Len() == 0 {
		return nil, fmt.Errorf("%w: empty series", ErrInvalidConfig)
	}
	times, values := ts.TimesView(), ts.ValuesView()
	peaks := make([]float64, e.cfg.Trials)

	proc := core.ApplyProcessorOptions(core.WithWorkers(e.cfg.Workers), core.WithChunkSize(1))
	err := core.ParallelFor(e.cfg.Trials, proc, func(lo, hi int) error {
		perturbed := make([]float64, len(values))
		for trial := lo; trial < hi; trial++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := e.trial(times, values, perturbed, trial)
			if err != nil {
				return fmt.Errorf("trial %d: %w", trial, err)
			}
			peaks[trial] = f
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Frequencies: peaks}
	res.Mean, res.StdDev = stat.PopMeanStdDev(peaks, nil)
	res.Median = core.Median(append([]float64(nil), peaks...))
	return res, nil
}

func (e *Estimator) trial(times, values, dst []float64, trial int) (float64, error) {
	gen := signal.NewGenerator(signal.WithSeed(e.cfg.Seed + int64(trial)))
	noise, err := gen.GaussianNoise(e.cfg.Mu, e.cfg.Sigma, len(values))
	if err != nil {
		return 0, err
	}
	for i := range dst {
		dst[i] = values[i] + noise[i]
	}
	spec, err := spectrum.Compute(times, dst, e.cfg.HiFreq,
		spectrum.WithOversampling(e.cfg.Oversampling),
		spectrum.WithMethod(e.cfg.Method),
		spectrum.WithProcessorOptions(core.WithWorkers(1)))
	if err != nil {
		return 0, err
	}
	return spec.Band(e.cfg.Numin, e.cfg.Numax).HighestPeak()
}
