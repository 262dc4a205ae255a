package testutil

import (
	"math"
	"testing"
)

// RequireClose fails t if |got-want| > eps.
func RequireClose(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > eps {
		t.Fatalf("%s = %v, want %v (eps %v)", name, got, want, eps)
	}
}

// RequireRelative fails t if got deviates from want by more than rel*|want|.
func RequireRelative(t *testing.T, name string, got, want, rel float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > rel*math.Abs(want) {
		t.Fatalf("%s = %v, want %v (rel %v)", name, got, want, rel)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, name string, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("%s[%d]: non-finite value %v", name, i, v)
		}
	}
}

// MaxAbs returns the largest absolute element of data.
func MaxAbs(data []float64) float64 {
	m := 0.0
	for _, v := range data {
		m = math.Max(m, math.Abs(v))
	}
	return m
}
