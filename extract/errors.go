package extract

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig = errors.New("extract: invalid config")
	// ErrNoTermination is returned by Run when Config sets no limit that
	// could stop the loop.
	ErrNoTermination = errors.New("extract: no termination condition configured")
	// ErrFinished is returned by Step once the extractor is done.
	ErrFinished = errors.New("extract: extraction finished")
	// ErrZeroNoise is returned when the residual spectrum around a new
	// component is exactly zero, leaving its SNR undefined.
	ErrZeroNoise = errors.New("extract: zero noise level")
)

// StepError names the iteration and state in which an extraction step
// failed. The table keeps every row completed before the failure.
type StepError struct {
	Iteration int
	State     State
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("extract: iteration %d: %s: %v", e.Iteration, e.State, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
