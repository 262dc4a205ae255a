package spectrum

import (
	"math"

	"github.com/cwbudde/algo-prewhiten/dsp/core"
)

// directSums evaluates the periodogram terms exactly for every grid
// frequency. Frequencies are independent, so the grid is split across the
// worker pool; each bin's sum is accumulated serially in sample order.
func directSums(times, values []float64, grid Grid, cfg config, cosOut, sinOut []float64) error {
	n := float64(len(times))
	return core.ParallelFor(grid.Count, cfg.proc, func(lo, hi int) error {
		for k := lo; k < hi; k++ {
			w := 2 * math.Pi * grid.Frequency(k)
			var c, s, c2, s2 float64
			for i, t := range times {
				sn, cs := math.Sincos(w * t)
				y := values[i]
				c += y * cs
				s += y * sn
				c2 += cs*cs - sn*sn
				s2 += 2 * sn * cs
			}
			cosOut[k], sinOut[k] = lombScargleTerms(c, s, c2, s2, n)
		}
		return nil
	})
}
