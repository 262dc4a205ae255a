package sinusoid

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-prewhiten/internal/testutil"
)

func TestPrewhitenRemovesModel(t *testing.T) {
	times := testutil.JitteredTimes(7, 120, 0.5, 0.2)
	values := testutil.Modes(times,
		testutil.Mode{Freq: 0.2, Amp: 1.5, Phase: 0.3},
		testutil.Mode{Freq: 0.45, Amp: 0.5, Phase: -2},
	)
	orig := append([]float64(nil), values...)

	resid, err := Prewhiten(times, values,
		[]float64{0.2, 0.45}, []float64{1.5, 0.5}, []float64{0.3, -2})
	if err != nil {
		t.Fatalf("Prewhiten: %v", err)
	}
	if len(resid) != len(values) {
		t.Fatalf("len = %d, want %d", len(resid), len(values))
	}
	if got := testutil.MaxAbs(resid); got > 1e-12 {
		t.Fatalf("residual max = %g", got)
	}
	for i := range values {
		if values[i] != orig[i] {
			t.Fatalf("input modified at %d", i)
		}
	}
}

func TestPrewhitenNoComponents(t *testing.T) {
	times := []float64{0, 1, 2}
	values := []float64{3, -1, 4}
	resid, err := Prewhiten(times, values, nil, nil, nil)
	if err != nil {
		t.Fatalf("Prewhiten: %v", err)
	}
	for i := range values {
		testutil.RequireClose(t, "resid", resid[i], values[i], 0)
	}
}

func TestPrewhitenMismatch(t *testing.T) {
	if _, err := Prewhiten([]float64{0, 1}, []float64{0}, nil, nil, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
	if _, err := Prewhiten([]float64{0, 1}, []float64{0, 1}, []float64{0.1}, nil, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
}
