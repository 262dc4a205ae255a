package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-prewhiten/internal/testutil"
)

func TestFastMatchesDirect(t *testing.T) {
	times := testutil.JitteredTimes(21, 300, 1, 0.4)
	values := testutil.Modes(times,
		testutil.Mode{Freq: 0.07, Amp: 1},
		testutil.Mode{Freq: 0.21, Amp: 0.5, Phase: 1.2},
	)
	testutil.AddGaussianNoise(22, 0.3, values)

	direct, err := Compute(times, values, 0.45, WithOversampling(4))
	if err != nil {
		t.Fatalf("Compute(direct) error = %v", err)
	}
	fast, err := Compute(times, values, 0.45, WithOversampling(4), WithMethod(MethodFast))
	if err != nil {
		t.Fatalf("Compute(fast) error = %v", err)
	}
	if fast.Len() != direct.Len() {
		t.Fatalf("Len() = %d, want %d", fast.Len(), direct.Len())
	}
	testutil.RequireFinite(t, "fast power", fast.Power)

	peak := testutil.MaxAbs(direct.Power)
	for i := range direct.Power {
		if d := math.Abs(fast.Power[i] - direct.Power[i]); d > 0.02*peak {
			t.Fatalf("bin %d (f=%v): fast %v direct %v", i, direct.Freqs[i], fast.Power[i], direct.Power[i])
		}
	}

	fd, _ := direct.HighestPeak()
	ff, _ := fast.HighestPeak()
	testutil.RequireClose(t, "fast peak", ff, fd, 1.5*direct.Step)
}

func TestExtirpolateConservesSum(t *testing.T) {
	mesh := make([]float64, 32)
	extirpolate(mesh, 2.5, 10.3, 4)
	extirpolate(mesh, -1, 7, 4)
	extirpolate(mesh, 1, 0.2, 4)
	extirpolate(mesh, 1, 31.7, 4)

	// Lagrange weights sum to one, so the total mass is preserved.
	sum := 0.0
	for _, v := range mesh {
		sum += v
	}
	testutil.RequireClose(t, "sum", sum, 2.5-1+1+1, 1e-12)
	if mesh[7] != -1 {
		t.Fatalf("integer position not deposited directly: %v", mesh[7])
	}
}
