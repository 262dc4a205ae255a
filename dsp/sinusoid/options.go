package sinusoid

// Default guesses for components without a previous fit.
const (
	DefaultAmplitudeGuess = 1.0
	DefaultPhaseGuess     = 0.0
)

// sqrt(machine epsilon), the MINPACK default for ftol and xtol.
const defaultTolerance = 1.49012e-8

type config struct {
	ftol, xtol, gtol float64
	maxEval          int
	refineFreq       bool
}

// Option configures Fit.
type Option func(*config)

// WithTolerances sets the relative sum-of-squares (ftol), parameter (xtol)
// and orthogonality (gtol) tolerances. Negative values keep the defaults.
func WithTolerances(ftol, xtol, gtol float64) Option {
	return func(c *config) {
		if ftol >= 0 {
			c.ftol = ftol
		}
		if xtol >= 0 {
			c.xtol = xtol
		}
		if gtol >= 0 {
			c.gtol = gtol
		}
	}
}

// WithMaxEvaluations caps the number of residual evaluations. The default
// is 100*(parameters+1).
func WithMaxEvaluations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxEval = n
		}
	}
}

// WithRefineFrequencies also frees the frequencies during the fit.
func WithRefineFrequencies(refine bool) Option {
	return func(c *config) {
		c.refineFreq = refine
	}
}

func applyOptions(opts []Option) config {
	cfg := config{
		ftol: defaultTolerance,
		xtol: defaultTolerance,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
