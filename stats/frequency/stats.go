// Package frequency computes shape descriptors of a power spectrum sampled
// on an arbitrary increasing frequency grid, such as a periodogram of a
// prewhitened residual.
package frequency

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultRolloff is the energy fraction used for Stats.Rolloff.
const DefaultRolloff = 0.85

// Stats holds descriptors of a power spectrum.
type Stats struct {
	Bins      int
	PeakFreq  float64
	PeakPower float64
	MeanPower float64
	// Centroid is the power-weighted mean frequency.
	Centroid float64
	// Spread is the power-weighted standard deviation around Centroid.
	Spread float64
	// Flatness is geometric over arithmetic mean power, in 0..1. White
	// noise gives about exp(-gamma) = 0.56, a single line gives ~0.
	Flatness float64
	// Rolloff is the frequency below which DefaultRolloff of the power lies.
	Rolloff float64
}

// Calculate describes power sampled at freqs. Mismatched or empty input
// yields a zero Stats.
func Calculate(freqs, power []float64) Stats {
	n := len(freqs)
	if n == 0 || n != len(power) {
		return Stats{}
	}

	peak := floats.MaxIdx(power)
	s := Stats{
		Bins:      n,
		PeakFreq:  freqs[peak],
		PeakPower: power[peak],
		MeanPower: stat.Mean(power, nil),
		Flatness:  Flatness(power),
		Rolloff:   Rolloff(freqs, power, DefaultRolloff),
	}
	if floats.Sum(power) > 0 {
		s.Centroid, s.Spread = stat.PopMeanStdDev(freqs, power)
	}
	return s
}

// Flatness returns the spectral flatness exp(mean(log P)) / mean(P). Any
// zero bin makes the result 0.
func Flatness(power []float64) float64 {
	if len(power) == 0 {
		return 0
	}
	mean := stat.Mean(power, nil)
	if mean <= 0 {
		return 0
	}
	var sumLog float64
	for _, p := range power {
		if p <= 0 {
			return 0
		}
		sumLog += math.Log(p)
	}
	return math.Exp(sumLog/float64(len(power))) / mean
}

// Rolloff returns the lowest frequency at which the cumulative power
// reaches fraction of the total.
func Rolloff(freqs, power []float64, fraction float64) float64 {
	if len(freqs) == 0 || len(freqs) != len(power) {
		return 0
	}
	cum := make([]float64, len(power))
	floats.CumSum(cum, power)
	total := cum[len(cum)-1]
	if total <= 0 {
		return 0
	}
	target := fraction * total
	for i, c := range cum {
		if c >= target {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}
