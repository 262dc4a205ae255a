// Package signal synthesizes sums of sinusoids at arbitrary sample times and
// deterministic noise for perturbing series.
//
// All sinusoids follow the convention a*sin(2*pi*f*t + phi), which is the
// model fitted by dsp/sinusoid.
package signal

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Generator creates deterministic random signals from a seed.
type Generator struct {
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator seeded with 1 unless overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Seed returns the current seed.
func (g *Generator) Seed() int64 { return g.seed }

// SetSeed replaces the seed used by subsequent calls.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// GaussianNoise returns n samples drawn from N(mu, sigma^2).
func (g *Generator) GaussianNoise(mu, sigma float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", n)
	}
	if sigma < 0 || math.IsNaN(sigma) {
		return nil, fmt.Errorf("noise sigma must be >= 0: %f", sigma)
	}
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = mu + sigma*rng.NormFloat64()
	}
	return out, nil
}

// UnevenTimes returns n sorted sample times in [0, span], drawn uniformly.
// The first and last samples are pinned to 0 and span.
func (g *Generator) UnevenTimes(n int, span float64) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("uneven times need at least 2 samples: %d", n)
	}
	if span <= 0 {
		return nil, fmt.Errorf("uneven times span must be > 0: %f", span)
	}
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(g.seed))
	for i := 1; i < n-1; i++ {
		out[i] = rng.Float64() * span
	}
	out[n-1] = span
	sort.Float64s(out)
	return out, nil
}

// EvenTimes returns n times start, start+step, ...
func EvenTimes(n int, start, step float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Sine evaluates amplitude*sin(2*pi*freq*t + phase) at each time.
func Sine(times []float64, freq, amplitude, phase float64) []float64 {
	out := make([]float64, len(times))
	w := 2 * math.Pi * freq
	for i, t := range times {
		out[i] = amplitude * math.Sin(w*t+phase)
	}
	return out
}

// SumOfSines writes sum_k amps[k]*sin(2*pi*freqs[k]*t + phases[k]) into dst.
// dst must have the same length as times; freqs, amps and phases must have
// equal lengths.
func SumOfSines(dst, times, freqs, amps, phases []float64) error {
	if len(dst) != len(times) {
		return fmt.Errorf("sum of sines dst/times length mismatch: %d != %d", len(dst), len(times))
	}
	if len(freqs) != len(amps) || len(freqs) != len(phases) {
		return fmt.Errorf("sum of sines parameter length mismatch: %d/%d/%d", len(freqs), len(amps), len(phases))
	}
	for i := range dst {
		dst[i] = 0
	}
	for k, f := range freqs {
		w := 2 * math.Pi * f
		a, p := amps[k], phases[k]
		for i, t := range times {
			dst[i] += a * math.Sin(w*t+p)
		}
	}
	return nil
}
