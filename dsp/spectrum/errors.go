package spectrum

import "errors"

var (
	ErrLengthMismatch      = errors.New("spectrum: times and values differ in length")
	ErrTooFewSamples       = errors.New("spectrum: at least 2 samples required")
	ErrZeroSpan            = errors.New("spectrum: time span is zero")
	ErrInvalidMaxFrequency = errors.New("spectrum: max frequency must be > 0")
	ErrInvalidOversampling = errors.New("spectrum: oversampling factor must be > 0")
	ErrEmptyGrid           = errors.New("spectrum: max frequency below grid resolution")
	ErrGridTooLarge        = errors.New("spectrum: frequency grid too large")
	ErrEmptyBand           = errors.New("spectrum: no frequencies in band")
	ErrEmptySelection      = errors.New("spectrum: noise window contains no samples")
	ErrInvalidWidth        = errors.New("spectrum: noise half-width must be > 0")
)
