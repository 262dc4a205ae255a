package series

import (
	"fmt"
	"math"
)

// TimeSeries is an immutable sequence of (time, value) samples.
type TimeSeries struct {
	times  []float64
	values []float64
}

// New validates and copies times and values into a TimeSeries.
func New(times, values []float64) (*TimeSeries, error) {
	if len(times) != len(values) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(times), len(values))
	}
	if len(times) == 0 {
		return nil, ErrEmpty
	}
	for i := range times {
		if math.IsNaN(times[i]) || math.IsInf(times[i], 0) {
			return nil, fmt.Errorf("%w: time at index %d is %v", ErrNonFinite, i, times[i])
		}
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			return nil, fmt.Errorf("%w: value at index %d is %v", ErrNonFinite, i, values[i])
		}
	}

	return &TimeSeries{
		times:  append([]float64(nil), times...),
		values: append([]float64(nil), values...),
	}, nil
}

// WithValues returns a series on the same time axis carrying values.
func (ts *TimeSeries) WithValues(values []float64) (*TimeSeries, error) {
	if len(values) != len(ts.times) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(ts.times), len(values))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: value at index %d is %v", ErrNonFinite, i, v)
		}
	}
	return &TimeSeries{
		times:  ts.times,
		values: append([]float64(nil), values...),
	}, nil
}

// Len returns the number of samples.
func (ts *TimeSeries) Len() int { return len(ts.times) }

// At returns the i-th sample.
func (ts *TimeSeries) At(i int) (t, v float64) { return ts.times[i], ts.values[i] }

// Times returns a copy of the sample times.
func (ts *TimeSeries) Times() []float64 { return append([]float64(nil), ts.times...) }

// Values returns a copy of the sample values.
func (ts *TimeSeries) Values() []float64 { return append([]float64(nil), ts.values...) }

// TimesView returns the sample times without copying. Callers must not
// modify the returned slice.
func (ts *TimeSeries) TimesView() []float64 { return ts.times }

// ValuesView returns the sample values without copying. Callers must not
// modify the returned slice.
func (ts *TimeSeries) ValuesView() []float64 { return ts.values }

// Bounds returns the smallest and largest sample time.
func (ts *TimeSeries) Bounds() (lo, hi float64) {
	lo, hi = ts.times[0], ts.times[0]
	for _, t := range ts.times[1:] {
		if t < lo {
			lo = t
		}
		if t > hi {
			hi = t
		}
	}
	return lo, hi
}

// Span returns max(t) - min(t).
func (ts *TimeSeries) Span() float64 {
	lo, hi := ts.Bounds()
	return hi - lo
}
