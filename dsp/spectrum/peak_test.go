package spectrum

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-prewhiten/internal/testutil"
)

func TestHighestPeakFirstOnTie(t *testing.T) {
	f, err := HighestPeak([]float64{1, 2, 3, 4}, []float64{0, 5, 1, 5})
	if err != nil {
		t.Fatalf("HighestPeak() error = %v", err)
	}
	if f != 2 {
		t.Fatalf("HighestPeak() = %v, want 2", f)
	}
}

func TestHighestPeakErrors(t *testing.T) {
	if _, err := HighestPeak(nil, nil); !errors.Is(err, ErrEmptyBand) {
		t.Fatalf("error = %v, want ErrEmptyBand", err)
	}
	if _, err := HighestPeak([]float64{1}, nil); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("error = %v, want ErrLengthMismatch", err)
	}
}

func TestHighestPeakWithinBand(t *testing.T) {
	times := testutil.JitteredTimes(9, 120, 1, 0.3)
	values := testutil.AddGaussianNoise(10, 1, testutil.Modes(times, testutil.Mode{Freq: 0.4, Amp: 3}))
	spec, err := Compute(times, values, 0.5)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	bands := [][2]float64{{0.01, 0.2}, {0.05, 0.06}, {0.3, 0.5}, {0.1, 0.45}}
	for _, b := range bands {
		f, err := spec.Band(b[0], b[1]).HighestPeak()
		if err != nil {
			t.Fatalf("band %v: %v", b, err)
		}
		if f < b[0] || f > b[1] {
			t.Fatalf("band %v: peak %v outside band", b, f)
		}
	}
}

func TestHighestPeakExcluding(t *testing.T) {
	freqs := []float64{1, 2, 3, 4, 5}
	power := []float64{1, 9, 8, 2, 7}

	f, err := HighestPeakExcluding(freqs, power, []float64{2}, 1.5)
	if err != nil {
		t.Fatalf("HighestPeakExcluding() error = %v", err)
	}
	if f != 5 {
		t.Fatalf("HighestPeakExcluding() = %v, want 5", f)
	}

	f, _ = HighestPeakExcluding(freqs, power, nil, 1.5)
	if f != 2 {
		t.Fatalf("no known frequencies: got %v, want 2", f)
	}

	if _, err := HighestPeakExcluding(freqs, power, []float64{3}, 10); !errors.Is(err, ErrEmptyBand) {
		t.Fatalf("error = %v, want ErrEmptyBand", err)
	}
}
