package montecarlo

import (
	"context"
	"errors"
	"testing"

	"github.com/cwbudde/algo-prewhiten/internal/testutil"
	"github.com/cwbudde/algo-prewhiten/series"
)

func testSeries(t *testing.T) *series.TimeSeries {
	t.Helper()
	times := testutil.JitteredTimes(2, 150, 1, 0.2)
	values := testutil.Modes(times, testutil.Mode{Freq: 0.08, Amp: 2, Phase: 0.4})
	ts, err := series.New(times, values)
	if err != nil {
		t.Fatalf("series.New: %v", err)
	}
	return ts
}

func TestRunDeterministicAcrossWorkers(t *testing.T) {
	ts := testSeries(t)
	var first *Result
	for _, workers := range []int{1, 4} {
		est, err := NewEstimator(Config{Numin: 0.02, Numax: 0.2, Sigma: 0.5, Trials: 24, Seed: 7, Workers: workers})
		if err != nil {
			t.Fatalf("NewEstimator: %v", err)
		}
		res, err := est.Run(context.Background(), ts)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if len(res.Frequencies) != 24 {
			t.Fatalf("trials = %d", len(res.Frequencies))
		}
		if first == nil {
			first = res
			continue
		}
		for i := range res.Frequencies {
			if res.Frequencies[i] != first.Frequencies[i] {
				t.Fatalf("trial %d differs across worker counts: %v vs %v", i, res.Frequencies[i], first.Frequencies[i])
			}
		}
	}
}

func TestRunStatistics(t *testing.T) {
	est, err := NewEstimator(Config{Numin: 0.02, Numax: 0.2, Sigma: 0.3, Trials: 40, Seed: 1})
	if err != nil {
		t.Fatalf("NewEstimator: %v", err)
	}
	res, err := est.Run(context.Background(), testSeries(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// one grid step is 1/(6*149) ~ 0.0011
	testutil.RequireClose(t, "median", res.Median, 0.08, 0.002)
	testutil.RequireClose(t, "mean", res.Mean, 0.08, 0.002)
	if res.StdDev < 0 || res.StdDev > 0.002 {
		t.Fatalf("stddev = %v", res.StdDev)
	}
	for _, f := range res.Frequencies {
		if f < 0.02 || f > 0.2 {
			t.Fatalf("peak %v outside band", f)
		}
	}
}

func TestRunZeroSigmaIsNoiseless(t *testing.T) {
	est, err := NewEstimator(Config{Numin: 0.02, Numax: 0.2, Trials: 5})
	if err != nil {
		t.Fatalf("NewEstimator: %v", err)
	}
	res, err := est.Run(context.Background(), testSeries(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	testutil.RequireClose(t, "stddev", res.StdDev, 0, 1e-12)
	for _, f := range res.Frequencies[1:] {
		if f != res.Frequencies[0] {
			t.Fatalf("noiseless trials differ: %v", res.Frequencies)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	est, err := NewEstimator(Config{Numin: 0.02, Numax: 0.2, Sigma: 1, Trials: 8})
	if err != nil {
		t.Fatalf("NewEstimator: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := est.Run(ctx, testSeries(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNewEstimatorDefaultsAndValidation(t *testing.T) {
	est, err := NewEstimator(Config{Numin: 1, Numax: 2})
	if err != nil {
		t.Fatalf("NewEstimator: %v", err)
	}
	cfg := est.Config()
	if cfg.Trials != 100 || cfg.HiFreq != 2 || cfg.Oversampling != 6 {
		t.Fatalf("defaults = %+v", cfg)
	}

	bad := []Config{
		{Numin: 2, Numax: 1},
		{Numin: -1, Numax: 1},
		{Numin: 0, Numax: 1, HiFreq: 0.5},
		{Numin: 0, Numax: 1, Sigma: -1},
		{Numin: 0, Numax: 1, Trials: -3},
	}
	for _, cfg := range bad {
		if _, err := NewEstimator(cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%+v: err = %v", cfg, err)
		}
	}
}
