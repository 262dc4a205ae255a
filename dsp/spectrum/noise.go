package spectrum

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-prewhiten/dsp/core"
)

// NoiseAmplitudeFactor converts the median amplitude-squared power of a
// white-noise periodogram into the mean noise amplitude.
//
// For white noise of variance s^2 each bin follows (2 s^2/N) chi2(2). The
// median of chi2(2) is 2 ln 2 and the mean amplitude is s*sqrt(pi/N), hence
// noise = sqrt(pi/(4 ln 2) * median(P)).
var NoiseAmplitudeFactor = math.Sqrt(math.Pi / (4 * math.Ln2))

// MedianNoiseLevel estimates the noise amplitude in the window
// [target-halfWidth, target+halfWidth], leaving out the target bin and its
// immediate neighbours. The grid step is taken from the first two freqs.
func MedianNoiseLevel(freqs, power []float64, target, halfWidth float64) (float64, error) {
	exclude := 0.0
	if len(freqs) >= 2 {
		exclude = 1.5 * (freqs[1] - freqs[0])
	}
	return MedianNoiseLevelExcluding(freqs, power, target, halfWidth, exclude)
}

// MedianNoiseLevelExcluding is MedianNoiseLevel with an explicit exclusion
// half-width: bins with |f-target| < exclude are ignored. The target bin
// itself is always ignored.
func MedianNoiseLevelExcluding(freqs, power []float64, target, halfWidth, exclude float64) (float64, error) {
	if len(freqs) != len(power) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(freqs), len(power))
	}
	if !(halfWidth > 0) || math.IsInf(halfWidth, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidWidth, halfWidth)
	}

	lo := sort.SearchFloat64s(freqs, target-halfWidth)
	sel := make([]float64, 0, 64)
	for i := lo; i < len(freqs) && freqs[i] <= target+halfWidth; i++ {
		d := math.Abs(freqs[i] - target)
		if d == 0 || d < exclude {
			continue
		}
		sel = append(sel, power[i])
	}
	if len(sel) == 0 {
		return 0, fmt.Errorf("%w: target %v half-width %v", ErrEmptySelection, target, halfWidth)
	}

	return NoiseAmplitudeFactor * math.Sqrt(core.Median(sel)), nil
}
