package series

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewCopiesInput(t *testing.T) {
	times := []float64{0, 1, 2}
	values := []float64{1, 2, 3}

	ts, err := New(times, values)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	times[0] = 99
	values[0] = 99

	if tt, v := ts.At(0); tt != 0 || v != 1 {
		t.Fatalf("At(0) = (%v, %v), want (0, 1)", tt, v)
	}

	got := ts.Values()
	got[1] = -1
	if _, v := ts.At(1); v != 2 {
		t.Fatalf("Values() leaked internal slice")
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		times  []float64
		values []float64
		want   error
	}{
		{"mismatch", []float64{0, 1}, []float64{1}, ErrLengthMismatch},
		{"empty", nil, nil, ErrEmpty},
		{"nan", []float64{0, 1}, []float64{1, math.NaN()}, ErrNonFinite},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.times, tc.values)
			if !errors.Is(err, tc.want) {
				t.Fatalf("New() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSpanUnsorted(t *testing.T) {
	ts, err := New([]float64{5, 1, 9, 3}, []float64{0, 0, 0, 0})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	lo, hi := ts.Bounds()
	if lo != 1 || hi != 9 {
		t.Fatalf("Bounds() = (%v, %v), want (1, 9)", lo, hi)
	}
	if ts.Span() != 8 {
		t.Fatalf("Span() = %v, want 8", ts.Span())
	}
}

func TestWithValuesSharesTimeAxis(t *testing.T) {
	ts, _ := New([]float64{0, 1}, []float64{1, 1})

	res, err := ts.WithValues([]float64{0, 0})
	if err != nil {
		t.Fatalf("WithValues() error = %v", err)
	}
	if res.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", res.Len())
	}
	if _, v := ts.At(0); v != 1 {
		t.Fatalf("original series modified")
	}
	if _, err := ts.WithValues([]float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("WithValues() error = %v, want ErrLengthMismatch", err)
	}
}

func TestRead(t *testing.T) {
	in := "# time amp\n0.0 1.5\n\n1.0\t-2.0  extra\n  2.5 3e-1\n"

	ts, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if ts.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ts.Len())
	}
	wantT := []float64{0, 1, 2.5}
	wantV := []float64{1.5, -2, 0.3}
	for i := range wantT {
		tt, v := ts.At(i)
		if tt != wantT[i] || v != wantV[i] {
			t.Fatalf("At(%d) = (%v, %v), want (%v, %v)", i, tt, v, wantT[i], wantV[i])
		}
	}
}

func TestReadMalformed(t *testing.T) {
	for _, in := range []string{"1.0\n", "a 1\n", "1 b\n"} {
		if _, err := Read(strings.NewReader(in)); !errors.Is(err, ErrMalformedLine) {
			t.Fatalf("Read(%q) error = %v, want ErrMalformedLine", in, err)
		}
	}
	if _, err := Read(strings.NewReader("# only comments\n")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Read(comments) error = %v, want ErrEmpty", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ts.dat")
	if err := os.WriteFile(path, []byte("0 1\n1 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ts, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if ts.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ts.Len())
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.dat")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
