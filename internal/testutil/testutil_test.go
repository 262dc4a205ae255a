package testutil

import (
	"math"
	"testing"
)

func TestModesSuperpose(t *testing.T) {
	times := EvenTimes(32, 0.5)
	a := Modes(times, Mode{Freq: 0.1, Amp: 1})
	b := Modes(times, Mode{Freq: 0.3, Amp: 2, Phase: 1})
	ab := Modes(times, Mode{Freq: 0.1, Amp: 1}, Mode{Freq: 0.3, Amp: 2, Phase: 1})
	for i := range ab {
		RequireClose(t, "ab", ab[i], a[i]+b[i], 1e-12)
	}
}

func TestJitteredTimesIncreasing(t *testing.T) {
	times := JitteredTimes(1, 100, 1, 0.3)
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			t.Fatalf("times not increasing at %d", i)
		}
	}
	again := JitteredTimes(1, 100, 1, 0.3)
	for i := range times {
		if times[i] != again[i] {
			t.Fatalf("not reproducible at %d", i)
		}
	}
}

func TestAddGaussianNoiseReproducible(t *testing.T) {
	a := AddGaussianNoise(5, 1, make([]float64, 16))
	b := AddGaussianNoise(5, 1, make([]float64, 16))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
	RequireFinite(t, "noise", a)
	if MaxAbs(a) == 0 {
		t.Fatal("noise is all zero")
	}
	if MaxAbs([]float64{-3, 2}) != 3 || math.IsNaN(MaxAbs(nil)) {
		t.Fatal("MaxAbs mismatch")
	}
}
