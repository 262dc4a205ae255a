package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// extirpolationOrder is the number of grid nodes each sample is spread onto.
const extirpolationOrder = 4

// fastSums computes the periodogram terms with the Press & Rybicki (1989)
// method: samples are extirpolated onto a regular mesh so that the four
// trigonometric sums for every grid frequency come out of two FFTs.
func fastSums(times, values []float64, grid Grid, ofac float64, cosOut, sinOut []float64) error {
	span := 0.0
	for _, t := range times {
		span = math.Max(span, t)
	}

	nfreq := 64
	for nfreq < 4*extirpolationOrder*grid.Count {
		nfreq <<= 1
	}
	ndim := 2 * nfreq

	plan, err := algofft.NewPlan64(ndim)
	if err != nil {
		return fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	// Mesh position of t is t*ndim*step, so FFT bin k lands on frequency
	// k*step and the doubled positions in mesh2 on 2*k*step.
	fac := float64(ndim) / (span * ofac)
	mesh1 := make([]float64, ndim)
	mesh2 := make([]float64, ndim)
	for i, t := range times {
		ck := math.Mod(t*fac, float64(ndim))
		ckk := math.Mod(2*ck, float64(ndim))
		extirpolate(mesh1, values[i], ck, extirpolationOrder)
		extirpolate(mesh2, 1, ckk, extirpolationOrder)
	}

	in := make([]complex128, ndim)
	out1 := make([]complex128, ndim)
	out2 := make([]complex128, ndim)
	for i, v := range mesh1 {
		in[i] = complex(v, 0)
	}
	if err := plan.Forward(out1, in); err != nil {
		return fmt.Errorf("spectrum: FFT failed: %w", err)
	}
	for i, v := range mesh2 {
		in[i] = complex(v, 0)
	}
	if err := plan.Forward(out2, in); err != nil {
		return fmt.Errorf("spectrum: FFT failed: %w", err)
	}

	// The forward transform uses exp(-i...), so sine sums are -Im.
	n := float64(len(times))
	for k := range grid.Count {
		x1 := out1[k+1]
		x2 := out2[k+1]
		cosOut[k], sinOut[k] = lombScargleTerms(real(x1), -imag(x1), real(x2), -imag(x2), n)
	}
	return nil
}

// extirpolate adds y to mesh at fractional position x by spreading it over
// m consecutive nodes with Lagrange interpolation weights, the inverse of
// interpolating a smooth function from those nodes.
func extirpolate(mesh []float64, y, x float64, m int) {
	ix := int(x)
	if x == float64(ix) {
		mesh[ix] += y
		return
	}

	n := len(mesh)
	ilo := min(max(int(x-0.5*float64(m)+1), 0), n-m)
	ihi := ilo + m - 1

	nden := 1.0
	for j := 2; j < m; j++ {
		nden *= float64(j)
	}
	fac := x - float64(ilo)
	for j := ilo + 1; j <= ihi; j++ {
		fac *= x - float64(j)
	}

	mesh[ihi] += y * fac / (nden * (x - float64(ihi)))
	for j := ihi - 1; j >= ilo; j-- {
		nden = (nden / float64(j+1-ilo)) * float64(j-ihi)
		mesh[j] += y * fac / (nden * (x - float64(j)))
	}
}
