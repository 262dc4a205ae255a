package sinusoid

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("sinusoid: invalid input")
	ErrFitFailed    = errors.New("sinusoid: harmonic fit failed")
)

// FitError reports a fit that did not converge.
type FitError struct {
	// Status is the solver termination code.
	Status Status
	// Frequency is the last (newest) frequency of the fitted set.
	Frequency float64
	// Evaluations is the number of residual evaluations spent.
	Evaluations int
}

func (e *FitError) Error() string {
	return fmt.Sprintf("sinusoid: harmonic fit failed for peak frequency %f [ier=%d: %s]",
		e.Frequency, int(e.Status), e.Status)
}

// Unwrap makes errors.Is(err, ErrFitFailed) hold.
func (e *FitError) Unwrap() error { return ErrFitFailed }
