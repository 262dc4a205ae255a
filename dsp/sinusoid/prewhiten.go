package sinusoid

import (
	"fmt"

	"github.com/cwbudde/algo-prewhiten/dsp/signal"
	"gonum.org/v1/gonum/floats"
)

// Model evaluates sum_k amps[k]*sin(2*pi*freqs[k]*t + phases[k]) at times.
func Model(times, freqs, amps, phases []float64) ([]float64, error) {
	out := make([]float64, len(times))
	if err := signal.SumOfSines(out, times, freqs, amps, phases); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return out, nil
}

// Prewhiten returns values minus the model of the given sinusoids. The
// inputs are not modified.
func Prewhiten(times, values, freqs, amps, phases []float64) ([]float64, error) {
	if len(times) != len(values) {
		return nil, fmt.Errorf("%w: times/values length mismatch: %d != %d", ErrInvalidInput, len(times), len(values))
	}
	model, err := Model(times, freqs, amps, phases)
	if err != nil {
		return nil, err
	}
	floats.SubTo(model, values, model)
	return model, nil
}

// Residual is Prewhiten applied to the parameters of r.
func (r *Result) Residual(times, values []float64) ([]float64, error) {
	return Prewhiten(times, values, r.Frequencies, r.Amplitudes, r.Phases)
}
