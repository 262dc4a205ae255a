// Package testutil provides deterministic series and tolerance assertions
// shared by package tests.
package testutil

import (
	"math"
	"math/rand"
)

// Mode is one sinusoid a*sin(2*pi*f*t + phi).
type Mode struct {
	Freq, Amp, Phase float64
}

// EvenTimes returns n samples spaced by dt starting at zero.
func EvenTimes(n int, dt float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * dt
	}
	return out
}

// JitteredTimes returns n increasing times with mean spacing dt and a
// uniform jitter of +/- jitter*dt, seeded for reproducibility.
func JitteredTimes(seed int64, n int, dt, jitter float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)*dt + (rng.Float64()*2-1)*jitter*dt
	}
	return out
}

// Modes evaluates the sum of modes at times.
func Modes(times []float64, modes ...Mode) []float64 {
	out := make([]float64, len(times))
	for _, m := range modes {
		w := 2 * math.Pi * m.Freq
		for i, t := range times {
			out[i] += m.Amp * math.Sin(w*t+m.Phase)
		}
	}
	return out
}

// AddGaussianNoise adds N(0, sigma^2) noise with a fixed seed, in place.
func AddGaussianNoise(seed int64, sigma float64, values []float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	for i := range values {
		values[i] += sigma * rng.NormFloat64()
	}
	return values
}
