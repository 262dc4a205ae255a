package spectrum

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/cwbudde/algo-prewhiten/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// maxGridSize bounds the number of trial frequencies of a single spectrum.
const maxGridSize = 1 << 26

// Spectrum is a periodogram sampled on a uniform frequency grid.
type Spectrum struct {
	// Freqs holds strictly increasing trial frequencies.
	Freqs []float64
	// Power holds amplitude-squared power for each frequency.
	Power []float64
	// Step is the grid spacing 1/(ofac*span).
	Step float64
	// Samples is the number of time samples the spectrum was computed from.
	Samples int
}

// Len returns the number of frequency bins.
func (s *Spectrum) Len() int { return len(s.Freqs) }

// Band returns the bins with lo <= f <= hi. The result shares memory with s.
func (s *Spectrum) Band(lo, hi float64) *Spectrum {
	i0 := sort.SearchFloat64s(s.Freqs, lo)
	i1 := sort.Search(len(s.Freqs), func(k int) bool { return s.Freqs[k] > hi })
	if i1 < i0 {
		i1 = i0
	}
	return &Spectrum{
		Freqs:   s.Freqs[i0:i1],
		Power:   s.Power[i0:i1],
		Step:    s.Step,
		Samples: s.Samples,
	}
}

// Amplitude returns sqrt(P) for each bin.
func (s *Spectrum) Amplitude() []float64 {
	out := make([]float64, len(s.Power))
	for i, p := range s.Power {
		out[i] = math.Sqrt(p)
	}
	return out
}

// HighestPeak returns the frequency of the largest power in s.
func (s *Spectrum) HighestPeak() (float64, error) {
	return HighestPeak(s.Freqs, s.Power)
}

// NoiseLevel estimates the noise amplitude around target, excluding the
// target bin and its immediate neighbours.
func (s *Spectrum) NoiseLevel(target, halfWidth float64) (float64, error) {
	return MedianNoiseLevelExcluding(s.Freqs, s.Power, target, halfWidth, 1.5*s.Step)
}

// Grid describes the trial frequencies of a periodogram.
type Grid struct {
	Step  float64
	Count int
}

// Frequency returns the i-th trial frequency, (i+1)*Step.
func (g Grid) Frequency(i int) float64 { return float64(i+1) * g.Step }

// NewGrid derives the frequency grid for a time span, oversampling factor
// and maximum frequency. The grid starts at one step above zero.
func NewGrid(span, ofac, maxFreq float64) (Grid, error) {
	if !(span > 0) || math.IsInf(span, 0) {
		return Grid{}, fmt.Errorf("%w: %v", ErrZeroSpan, span)
	}
	if !(ofac > 0) || math.IsInf(ofac, 0) {
		return Grid{}, fmt.Errorf("%w: %v", ErrInvalidOversampling, ofac)
	}
	if !(maxFreq > 0) || math.IsInf(maxFreq, 0) {
		return Grid{}, fmt.Errorf("%w: %v", ErrInvalidMaxFrequency, maxFreq)
	}
	step := 1 / (ofac * span)
	steps := (maxFreq - step) / step
	if steps < -1e-9 {
		return Grid{}, fmt.Errorf("%w: max %v < step %v", ErrEmptyGrid, maxFreq, step)
	}
	// Tolerate round-off when maxFreq is an exact multiple of step.
	count := int(math.Floor(steps+1e-9)) + 1
	if steps > maxGridSize || count > maxGridSize {
		return Grid{}, fmt.Errorf("%w: %.0f bins", ErrGridTooLarge, steps+1)
	}
	return Grid{Step: step, Count: count}, nil
}

// Compute returns the Lomb-Scargle periodogram of (times, values) from one
// grid step up to maxFreq.
//
// The mean of values is removed before evaluation and each frequency uses
// its own time offset tau, which makes the estimate independent of the time
// origin and valid for arbitrary sampling.
func Compute(times, values []float64, maxFreq float64, opts ...Option) (*Spectrum, error) {
	cfg := applyOptions(opts)

	if len(times) != len(values) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(times), len(values))
	}
	if len(times) < 2 {
		return nil, fmt.Errorf("%w: %d", ErrTooFewSamples, len(times))
	}

	tmin, tmax := times[0], times[0]
	mean := 0.0
	for i, t := range times {
		tmin = math.Min(tmin, t)
		tmax = math.Max(tmax, t)
		mean += values[i]
	}
	mean /= float64(len(values))

	grid, err := NewGrid(tmax-tmin, cfg.ofac, maxFreq)
	if err != nil {
		return nil, err
	}

	shifted := make([]float64, len(times))
	centered := make([]float64, len(values))
	for i := range times {
		shifted[i] = times[i] - tmin
		centered[i] = values[i] - mean
	}

	cosTerm, sinTerm, buf := getScratch(grid.Count)
	defer putScratch(buf)

	switch cfg.method {
	case MethodDirect:
		err = directSums(shifted, centered, grid, cfg, cosTerm, sinTerm)
	case MethodFast:
		err = fastSums(shifted, centered, grid, cfg.ofac, cosTerm, sinTerm)
	default:
		err = fmt.Errorf("spectrum: unsupported method %v", cfg.method)
	}
	if err != nil {
		return nil, err
	}

	spec := &Spectrum{
		Freqs:   make([]float64, grid.Count),
		Power:   make([]float64, grid.Count),
		Step:    grid.Step,
		Samples: len(times),
	}
	for i := range spec.Freqs {
		spec.Freqs[i] = grid.Frequency(i)
	}

	vecmath.Power(spec.Power, cosTerm, sinTerm)
	norm := 2 / float64(len(times))
	for i := range spec.Power {
		spec.Power[i] *= norm
	}
	return spec, nil
}

// scratchBuf holds pooled scratch memory for the per-frequency terms.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (a, b []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	buf.data = core.EnsureLen(buf.data, 2*n)
	return buf.data[:n], buf.data[n:], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// lombScargleTerms turns the raw sums at one frequency into the two
// normalized projections whose squares add up to the Lomb-Scargle power
// (before the 2/N amplitude scaling).
//
// c, s are sum(y*cos(wt)), sum(y*sin(wt)); c2, s2 are sum(cos(2wt)),
// sum(sin(2wt)); n is the sample count.
func lombScargleTerms(c, s, c2, s2, n float64) (cosTerm, sinTerm float64) {
	const tiny = 1e-12

	cwt, swt := 1.0, 0.0
	den := 0.5 * n
	if hypo := math.Hypot(c2, s2); hypo > 0 {
		hc2wt := 0.5 * c2 / hypo
		hs2wt := 0.5 * s2 / hypo
		cwt = math.Sqrt(0.5 + hc2wt)
		swt = math.Copysign(math.Sqrt(math.Max(0, 0.5-hc2wt)), hs2wt)
		den = 0.5*n + hc2wt*c2 + hs2wt*s2
	}

	// den = sum cos^2(w(t-tau)), n-den = sum sin^2(w(t-tau)).
	if den > tiny*n {
		cosTerm = (cwt*c + swt*s) / math.Sqrt(den)
	}
	if n-den > tiny*n {
		sinTerm = (cwt*s - swt*c) / math.Sqrt(n-den)
	}
	return cosTerm, sinTerm
}
