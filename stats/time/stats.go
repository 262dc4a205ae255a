// Package time summarizes the sampling and value distribution of an
// unevenly sampled time series.
package time

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats describes a series' time axis and values.
type Stats struct {
	Samples int
	Start   float64
	End     float64
	Span    float64 // End - Start

	// Sampling intervals between consecutive sorted times.
	MinInterval    float64
	MedianInterval float64
	MaxInterval    float64
	// Resolution is the Rayleigh resolution 1/Span.
	Resolution float64
	// Nyquist is the pseudo-Nyquist frequency 0.5/MedianInterval.
	Nyquist float64

	Mean     float64
	StdDev   float64 // unbiased sample standard deviation
	RMS      float64
	Min      float64
	Max      float64
	Skewness float64
	Kurtosis float64 // excess kurtosis
}

// Calculate summarizes times and values, which must have equal length.
// Empty input yields a zero Stats.
func Calculate(times, values []float64) Stats {
	n := len(times)
	if n == 0 || n != len(values) {
		return Stats{}
	}

	s := Stats{
		Samples: n,
		Start:   floats.Min(times),
		End:     floats.Max(times),
		Min:     floats.Min(values),
		Max:     floats.Max(values),
		RMS:     RMS(values),
	}
	s.Span = s.End - s.Start
	if s.Span > 0 {
		s.Resolution = 1 / s.Span
	}

	if n > 1 {
		s.MinInterval, s.MedianInterval, s.MaxInterval = intervals(times)
		if s.MedianInterval > 0 {
			s.Nyquist = 0.5 / s.MedianInterval
		}
		s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
		if s.StdDev > 0 {
			s.Skewness = stat.Skew(values, nil)
			s.Kurtosis = stat.ExKurtosis(values, nil)
		}
	} else {
		s.Mean = values[0]
	}
	return s
}

// intervals returns the smallest, median and largest gap between sorted
// sample times.
func intervals(times []float64) (lo, med, hi float64) {
	sorted := append([]float64(nil), times...)
	sort.Float64s(sorted)
	gaps := make([]float64, len(sorted)-1)
	for i := range gaps {
		gaps[i] = sorted[i+1] - sorted[i]
	}
	sort.Float64s(gaps)
	k := len(gaps)
	med = gaps[k/2]
	if k%2 == 0 {
		med = 0.5 * (gaps[k/2-1] + gaps[k/2])
	}
	return gaps[0], med, gaps[k-1]
}

// RMS returns the root-mean-square of values.
func RMS(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(values, values) / float64(len(values)))
}
