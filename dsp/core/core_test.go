package core

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}
	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
	if got := EnsureLen(buf, 16); len(got) != 16 {
		t.Fatalf("len = %d, want 16", len(got))
	}
}

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithWorkers(3), WithChunkSize(10), WithWorkers(-1), nil)
	if cfg.Workers != 3 || cfg.ChunkSize != 10 {
		t.Fatalf("cfg = %+v, want workers=3 chunk=10", cfg)
	}
}

func TestParallelForCoversRange(t *testing.T) {
	for _, workers := range []int{1, 2, 7} {
		out := make([]int, 1000)
		cfg := ProcessorConfig{Workers: workers, ChunkSize: 33}
		err := ParallelFor(len(out), cfg, func(lo, hi int) error {
			for i := lo; i < hi; i++ {
				out[i]++
			}
			return nil
		})
		if err != nil {
			t.Fatalf("ParallelFor() error = %v", err)
		}
		for i, v := range out {
			if v != 1 {
				t.Fatalf("workers=%d: index %d visited %d times", workers, i, v)
			}
		}
	}
}

func TestParallelForError(t *testing.T) {
	wantErr := errors.New("boom")
	var calls atomic.Int32
	err := ParallelFor(100, ProcessorConfig{Workers: 4, ChunkSize: 10}, func(lo, hi int) error {
		calls.Add(1)
		if lo == 50 {
			return wantErr
		}
		return nil
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("ParallelFor() error = %v, want %v", err, wantErr)
	}
	if calls.Load() == 0 {
		t.Fatal("fn never called")
	}
	if err := ParallelFor(0, DefaultProcessorConfig(), nil); err != nil {
		t.Fatalf("ParallelFor(0) error = %v", err)
	}
}

func TestWrapPhase(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
		{7, 7 - 2*math.Pi},
	}
	for _, tc := range tests {
		if got := WrapPhase(tc.in); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("WrapPhase(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1e6, 1e6+1e-7, 1e-12) {
		t.Fatal("expected relative equality")
	}
	if NearlyEqual(1, 1.1, 1e-3) {
		t.Fatal("expected inequality")
	}
	if !AllFinite([]float64{1, 2}) || AllFinite([]float64{1, math.Inf(1)}) {
		t.Fatal("AllFinite mismatch")
	}
}

func TestMedian(t *testing.T) {
	if !math.IsNaN(Median(nil)) {
		t.Fatal("Median(nil) should be NaN")
	}
	if got := Median([]float64{3, 1, 2}); got != 2 {
		t.Fatalf("odd median = %v", got)
	}
	if got := Median([]float64{4, 1, 3, 2}); got != 2.5 {
		t.Fatalf("even median = %v", got)
	}
}
