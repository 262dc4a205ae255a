package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// HighestPeak returns the frequency of the maximum power. Ties resolve to
// the lowest frequency. Restricting the spectrum to the search band is the
// caller's job (see Spectrum.Band).
func HighestPeak(freqs, power []float64) (float64, error) {
	if len(freqs) != len(power) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(freqs), len(power))
	}
	if len(freqs) == 0 {
		return 0, ErrEmptyBand
	}
	return freqs[floats.MaxIdx(power)], nil
}

// HighestPeakExcluding is HighestPeak ignoring every bin closer than minSep
// to one of the known frequencies.
func HighestPeakExcluding(freqs, power, known []float64, minSep float64) (float64, error) {
	if minSep <= 0 || len(known) == 0 {
		return HighestPeak(freqs, power)
	}
	if len(freqs) != len(power) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(freqs), len(power))
	}

	masked := make([]float64, len(power))
	open := 0
	for i, f := range freqs {
		masked[i] = power[i]
		for _, k := range known {
			if math.Abs(f-k) < minSep {
				masked[i] = math.Inf(-1)
				break
			}
		}
		if !math.IsInf(masked[i], -1) {
			open++
		}
	}
	if open == 0 {
		return 0, fmt.Errorf("%w: all bins within %v of known frequencies", ErrEmptyBand, minSep)
	}
	return freqs[floats.MaxIdx(masked)], nil
}
