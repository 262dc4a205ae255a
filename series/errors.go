package series

import "errors"

var (
	ErrEmpty          = errors.New("series: no samples")
	ErrLengthMismatch = errors.New("series: times and values differ in length")
	ErrNonFinite      = errors.New("series: non-finite sample")
	ErrMalformedLine  = errors.New("series: malformed line")
)
