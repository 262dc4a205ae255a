package sinusoid

import "fmt"

// Status is the termination code of the least-squares solver. Codes 1-4
// mean convergence; the numbering follows MINPACK's lmder.
type Status int

const (
	StatusInvalidInput Status = 0
	// StatusFtol: relative reduction of the sum of squares below ftol.
	StatusFtol Status = 1
	// StatusXtol: relative parameter change below xtol.
	StatusXtol Status = 2
	// StatusFtolXtol: both of the above.
	StatusFtolXtol Status = 3
	// StatusGtol: residual orthogonal to the Jacobian columns within gtol.
	StatusGtol Status = 4
	// StatusMaxEvaluations: evaluation budget exhausted.
	StatusMaxEvaluations Status = 5
	// StatusNoProgress: the damping grew past its limit without finding a
	// step that lowers the sum of squares.
	StatusNoProgress Status = 7
	// StatusNonFinite: residual or parameters became NaN or Inf.
	StatusNonFinite Status = 9
)

// Converged reports whether s is a successful termination.
func (s Status) Converged() bool {
	return s >= StatusFtol && s <= StatusGtol
}

func (s Status) String() string {
	switch s {
	case StatusInvalidInput:
		return "invalid input"
	case StatusFtol:
		return "sum of squares converged"
	case StatusXtol:
		return "parameters converged"
	case StatusFtolXtol:
		return "sum of squares and parameters converged"
	case StatusGtol:
		return "residual orthogonal to jacobian"
	case StatusMaxEvaluations:
		return "evaluation budget exhausted"
	case StatusNoProgress:
		return "no further improvement possible"
	case StatusNonFinite:
		return "non-finite residual"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}
