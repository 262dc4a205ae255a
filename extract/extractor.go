package extract

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-prewhiten/dsp/sinusoid"
	"github.com/cwbudde/algo-prewhiten/dsp/spectrum"
	"github.com/cwbudde/algo-prewhiten/series"
	"go.uber.org/zap"
)

// StepObserver is called after every completed iteration with the
// 0-based iteration number and the newly extracted component.
type StepObserver func(iteration int, c Component)

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithObserver registers fn to be called after every iteration.
func WithObserver(fn StepObserver) Option {
	return func(e *Extractor) {
		e.observer = fn
	}
}

// WithInitialComponents seeds the table with components from a previous
// run. They are refit against the series before the first iteration.
func WithInitialComponents(cs ...Component) Option {
	return func(e *Extractor) {
		e.initial = append([]Component(nil), cs...)
	}
}

// Extractor performs iterative prewhitening of one time series.
type Extractor struct {
	ts       *series.TimeSeries
	cfg      Config
	log      *zap.Logger
	observer StepObserver
	initial  []Component

	state      State
	table      Table
	iterations int
	residual   []float64
	// spec is the full spectrum of residual, nil until computed.
	spec *spectrum.Spectrum
	last *spectrum.Spectrum

	fit fitFunc
}

type fitFunc func(times, values, freqs, amps, phases []float64, opts ...sinusoid.Option) (*sinusoid.Result, error)

// New validates cfg and prepares an extractor for ts.
func New(ts *series.TimeSeries, cfg Config, opts ...Option) (*Extractor, error) {
	if ts == nil || ts.Len() == 0 {
		return nil, fmt.Errorf("%w: empty series", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()

	e := &Extractor{
		ts:       ts,
		cfg:      cfg,
		log:      zap.NewNop(),
		state:    StateInit,
		residual: ts.Values(),
		fit:      sinusoid.Fit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.table = Table{hasNoise: cfg.SNRWidth > 0}

	if len(e.initial) > 0 {
		if err := e.seed(); err != nil {
			return nil, err
		}
	}
	e.state = StateSeekingPeak
	return e, nil
}

// seed refits the initial components and prewhitens the series with them.
func (e *Extractor) seed() error {
	prev := NewTable(e.initial, e.table.hasNoise)
	res, err := e.fit(e.ts.TimesView(), e.ts.ValuesView(),
		prev.Frequencies(), prev.Amplitudes(), prev.Phases(),
		sinusoid.WithRefineFrequencies(e.cfg.RefineFrequencies))
	if err != nil {
		return &StepError{Iteration: 0, State: StateInit, Err: err}
	}
	resid, err := res.Residual(e.ts.TimesView(), e.ts.ValuesView())
	if err != nil {
		return &StepError{Iteration: 0, State: StateInit, Err: err}
	}
	rows := prev.Rows()
	for i := range rows {
		rows[i].Frequency = res.Frequencies[i]
		rows[i].Amplitude = res.Amplitudes[i]
		rows[i].Phase = res.Phases[i]
	}
	e.table.rows = rows
	e.residual = resid
	e.log.Info("initial components refit", zap.Int("count", len(rows)), zap.Float64("rss", res.RSS))
	return nil
}

// State returns the current state.
func (e *Extractor) State() State { return e.state }

// Done reports whether a termination condition was met.
func (e *Extractor) Done() bool { return e.state == StateDone }

// Iterations is the number of completed Step calls.
func (e *Extractor) Iterations() int { return e.iterations }

// Config returns the effective configuration.
func (e *Extractor) Config() Config { return e.cfg }

// Table returns a copy of the extracted components.
func (e *Extractor) Table() Table { return e.table.clone() }

// Residual returns a copy of the current residual series values.
func (e *Extractor) Residual() []float64 {
	return append([]float64(nil), e.residual...)
}

// LastSpectrum returns the most recent full spectrum of the residual, or
// nil before the first one is computed. The result must not be modified.
func (e *Extractor) LastSpectrum() *spectrum.Spectrum { return e.last }

// Run steps until a termination condition holds and returns the number of
// iterations it performed. ctx is checked between iterations.
func (e *Extractor) Run(ctx context.Context) (int, error) {
	if !e.cfg.HasTermination() {
		return 0, ErrNoTermination
	}
	start := e.iterations
	for !e.Done() {
		if err := ctx.Err(); err != nil {
			return e.iterations - start, err
		}
		if _, err := e.Step(); err != nil {
			return e.iterations - start, err
		}
	}
	return e.iterations - start, nil
}

// Step performs one iteration: seek the highest peak of the residual in
// [Numin, Numax], refit all components against the original series,
// prewhiten and check the termination conditions.
func (e *Extractor) Step() (Component, error) {
	switch e.state {
	case StateDone:
		return Component{}, ErrFinished
	case StateFailed:
		return Component{}, fmt.Errorf("%w: previous step failed", ErrFinished)
	}

	iter := e.iterations
	fail := func(err error) (Component, error) {
		failed := e.state
		e.state = StateFailed
		e.log.Warn("extraction step failed",
			zap.Int("iteration", iter), zap.Stringer("state", failed), zap.Error(err))
		return Component{}, &StepError{Iteration: iter, State: failed, Err: err}
	}

	e.state = StateSeekingPeak
	freq, err := e.seekPeak()
	if err != nil {
		return fail(err)
	}
	e.log.Debug("peak found", zap.Int("iteration", iter), zap.Float64("freq", freq))

	e.state = StateFitting
	freqs := append(e.table.Frequencies(), freq)
	res, err := e.fit(e.ts.TimesView(), e.ts.ValuesView(),
		freqs, e.table.Amplitudes(), e.table.Phases(),
		sinusoid.WithRefineFrequencies(e.cfg.RefineFrequencies))
	if err != nil {
		return fail(err)
	}
	e.log.Debug("fit converged",
		zap.Int("iteration", iter), zap.Stringer("status", res.Status),
		zap.Int("evaluations", res.Evaluations), zap.Float64("rss", res.RSS))

	e.state = StatePrewhitening
	resid, err := res.Residual(e.ts.TimesView(), e.ts.ValuesView())
	if err != nil {
		return fail(err)
	}

	e.state = StateCheckingTermination
	k := len(freqs) - 1
	row := Component{
		Frequency: res.Frequencies[k],
		Amplitude: res.Amplitudes[k],
		Phase:     res.Phases[k],
	}
	var spec *spectrum.Spectrum
	if e.table.hasNoise {
		spec, err = e.computeSpectrum(resid)
		if err != nil {
			return fail(err)
		}
		noise, err := spec.NoiseLevel(row.Frequency, e.cfg.SNRWidth)
		if err != nil {
			return fail(err)
		}
		if noise <= 0 {
			return fail(fmt.Errorf("%w around %g", ErrZeroNoise, row.Frequency))
		}
		row.Noise = noise
		row.SNR = row.Amplitude / noise
	}

	// earlier rows take the refit parameters and keep their noise
	for i := 0; i < k; i++ {
		e.table.rows[i].Frequency = res.Frequencies[i]
		e.table.rows[i].Amplitude = res.Amplitudes[i]
		e.table.rows[i].Phase = res.Phases[i]
	}
	e.table.rows = append(e.table.rows, row)
	e.iterations++

	// the residual moves only with a committed row
	e.residual = resid
	e.spec = spec
	if spec != nil {
		e.last = spec
	}

	e.log.Info("component extracted",
		zap.Int("iteration", iter),
		zap.Float64("freq", row.Frequency),
		zap.Float64("amp", row.Amplitude),
		zap.Float64("phase", row.Phase),
		zap.Float64("snr", row.SNR),
		zap.Float64("noise", row.Noise))
	if e.observer != nil {
		e.observer(iter, row)
	}

	if e.terminated(row) {
		e.state = StateDone
	} else {
		e.state = StateSeekingPeak
	}
	return row, nil
}

func (e *Extractor) seekPeak() (float64, error) {
	spec, err := e.spectrum()
	if err != nil {
		return 0, err
	}
	band := spec.Band(e.cfg.Numin, e.cfg.Numax)
	if e.cfg.MinSeparation > 0 {
		return spectrum.HighestPeakExcluding(band.Freqs, band.Power, e.table.Frequencies(), e.cfg.MinSeparation)
	}
	return band.HighestPeak()
}

// spectrum computes the residual spectrum once per residual.
func (e *Extractor) spectrum() (*spectrum.Spectrum, error) {
	if e.spec != nil {
		return e.spec, nil
	}
	spec, err := e.computeSpectrum(e.residual)
	if err != nil {
		return nil, err
	}
	e.spec = spec
	e.last = spec
	return spec, nil
}

func (e *Extractor) computeSpectrum(values []float64) (*spectrum.Spectrum, error) {
	return spectrum.Compute(e.ts.TimesView(), values, e.cfg.HiFreq, e.cfg.spectrumOptions()...)
}

// terminated reports whether the newest component meets a stop condition.
// The offending row stays in the table.
func (e *Extractor) terminated(row Component) bool {
	switch {
	case e.cfg.MaxComponents > 0 && e.iterations >= e.cfg.MaxComponents:
		return true
	case e.cfg.AmpLimit > 0 && row.Amplitude < e.cfg.AmpLimit:
		return true
	case e.cfg.SNRLimit > 0 && row.SNR < e.cfg.SNRLimit:
		return true
	}
	return false
}
