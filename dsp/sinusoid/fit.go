package sinusoid

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-prewhiten/dsp/core"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	lambdaInit  = 1e-3
	lambdaMin   = 1e-12
	lambdaMax   = 1e16
	lambdaScale = 10.0
	// sum of squares below relTiny times the starting one counts as an
	// exact fit
	relTiny = 1e-30
)

// Result holds the parameters of a fitted sum of sinusoids.
type Result struct {
	Frequencies []float64
	Amplitudes  []float64
	Phases      []float64
	Converged   bool
	Status      Status
	Evaluations int
	Iterations  int
	// RSS is the final residual sum of squares.
	RSS float64
}

// Fit adjusts amplitudes and phases of sinusoids at freqs to minimise the
// squared residual against values.
//
// ampGuess and phaseGuess may be shorter than freqs; missing entries start
// at DefaultAmplitudeGuess and DefaultPhaseGuess. Returned amplitudes are
// non-negative and phases lie in (-pi, pi].
//
// A run that does not converge returns the last iterate together with a
// *FitError. Malformed input returns an error wrapping ErrInvalidInput.
// A frequency listed twice makes the amplitudes unidentifiable; it fails
// with a *FitError of status StatusInvalidInput and a nil result.
func Fit(times, values, freqs, ampGuess, phaseGuess []float64, opts ...Option) (*Result, error) {
	if err := validate(times, values, freqs, ampGuess, phaseGuess); err != nil {
		return nil, err
	}
	if f, ok := duplicateFrequency(freqs); ok {
		return nil, &FitError{Status: StatusInvalidInput, Frequency: f}
	}

	cfg := applyOptions(opts)
	p := newProblem(times, values, freqs, cfg.refineFreq)
	params := p.initial(ampGuess, phaseGuess)
	if p.npar > len(times) {
		return nil, fmt.Errorf("%w: %d parameters for %d samples", ErrInvalidInput, p.npar, len(times))
	}
	if cfg.maxEval == 0 {
		cfg.maxEval = 100 * (p.npar + 1)
	}

	status, iters, evals, rss := p.solve(params, cfg)

	res := p.result(params)
	res.Status = status
	res.Converged = status.Converged()
	res.Iterations = iters
	res.Evaluations = evals
	res.RSS = rss

	if !res.Converged {
		return res, &FitError{
			Status:      status,
			Frequency:   res.Frequencies[len(res.Frequencies)-1],
			Evaluations: evals,
		}
	}
	return res, nil
}

func validate(times, values, freqs, ampGuess, phaseGuess []float64) error {
	switch {
	case len(times) == 0:
		return fmt.Errorf("%w: empty series", ErrInvalidInput)
	case len(times) != len(values):
		return fmt.Errorf("%w: times/values length mismatch: %d != %d", ErrInvalidInput, len(times), len(values))
	case len(freqs) == 0:
		return fmt.Errorf("%w: no frequencies", ErrInvalidInput)
	case len(ampGuess) > len(freqs) || len(phaseGuess) > len(freqs):
		return fmt.Errorf("%w: more guesses than frequencies", ErrInvalidInput)
	}
	for _, xs := range [][]float64{times, values, freqs, ampGuess, phaseGuess} {
		if !core.AllFinite(xs) {
			return fmt.Errorf("%w: non-finite value", ErrInvalidInput)
		}
	}
	return nil
}

func duplicateFrequency(freqs []float64) (float64, bool) {
	seen := make(map[float64]struct{}, len(freqs))
	for _, f := range freqs {
		if _, ok := seen[f]; ok {
			return f, true
		}
		seen[f] = struct{}{}
	}
	return 0, false
}

// problem holds the data and scratch space of one least-squares run.
// Parameters are laid out as [A_0, phi_0, A_1, phi_1, ...] followed by the
// frequencies when they are refined.
type problem struct {
	times, values []float64
	freqs         []float64
	twoPiT        []float64
	k             int
	npar          int
	refine        bool

	resid  []float64
	trial  []float64
	cols   [][]float64
	cosBuf []float64
}

func newProblem(times, values, freqs []float64, refine bool) *problem {
	k := len(freqs)
	npar := 2 * k
	if refine {
		npar += k
	}
	m := len(times)
	twoPiT := make([]float64, m)
	floats.ScaleTo(twoPiT, 2*math.Pi, times)
	cols := make([][]float64, npar)
	for j := range cols {
		cols[j] = make([]float64, m)
	}
	return &problem{
		times:  times,
		values: values,
		freqs:  append([]float64(nil), freqs...),
		twoPiT: twoPiT,
		k:      k,
		npar:   npar,
		refine: refine,
		resid:  make([]float64, m),
		trial:  make([]float64, m),
		cols:   cols,
		cosBuf: make([]float64, m),
	}
}

func (p *problem) initial(ampGuess, phaseGuess []float64) []float64 {
	params := make([]float64, p.npar)
	for k := 0; k < p.k; k++ {
		params[2*k] = DefaultAmplitudeGuess
		params[2*k+1] = DefaultPhaseGuess
		if k < len(ampGuess) {
			params[2*k] = ampGuess[k]
		}
		if k < len(phaseGuess) {
			params[2*k+1] = phaseGuess[k]
		}
		if p.refine {
			params[2*p.k+k] = p.freqs[k]
		}
	}
	return params
}

func (p *problem) freq(params []float64, k int) float64 {
	if p.refine {
		return params[2*p.k+k]
	}
	return p.freqs[k]
}

// residual writes values - model(params) into dst and returns its squared
// norm.
func (p *problem) residual(dst, params []float64) float64 {
	copy(dst, p.values)
	for k := 0; k < p.k; k++ {
		a, phi := params[2*k], params[2*k+1]
		w := 2 * math.Pi * p.freq(params, k)
		for i, t := range p.times {
			dst[i] -= a * math.Sin(w*t+phi)
		}
	}
	return floats.Dot(dst, dst)
}

// jacobian fills the columns of d model / d params.
func (p *problem) jacobian(params []float64) {
	for k := 0; k < p.k; k++ {
		a, phi := params[2*k], params[2*k+1]
		w := 2 * math.Pi * p.freq(params, k)
		colA, colPhi := p.cols[2*k], p.cols[2*k+1]
		for i, t := range p.times {
			s, c := math.Sincos(w*t + phi)
			colA[i] = s
			p.cosBuf[i] = c
		}
		vecmath.ScaleBlock(colPhi, p.cosBuf, a)
		if p.refine {
			vecmath.MulBlock(p.cols[2*p.k+k], colPhi, p.twoPiT)
		}
	}
}

// solve runs Levenberg-Marquardt iterations on params in place.
func (p *problem) solve(params []float64, cfg config) (status Status, iters, evals int, rss float64) {
	n := p.npar
	rss = p.residual(p.resid, params)
	evals = 1
	if !core.IsFinite(rss) {
		return StatusNonFinite, 0, evals, rss
	}
	if rss == 0 {
		return StatusFtol, 0, evals, rss
	}
	floor := relTiny * rss

	diag := make([]float64, n)
	grad := make([]float64, n)
	delta := make([]float64, n)
	candidate := make([]float64, n)
	normal := mat.NewSymDense(n, nil)
	damped := mat.NewSymDense(n, nil)
	gradVec := mat.NewVecDense(n, grad)
	deltaVec := mat.NewVecDense(n, delta)
	var chol mat.Cholesky

	lambda := lambdaInit
	for {
		iters++
		p.jacobian(params)

		for a := 0; a < n; a++ {
			grad[a] = floats.Dot(p.cols[a], p.resid)
			for b := a; b < n; b++ {
				normal.SetSym(a, b, floats.Dot(p.cols[a], p.cols[b]))
			}
			norm := math.Sqrt(normal.At(a, a))
			if norm == 0 {
				norm = 1
			}
			diag[a] = math.Max(diag[a], norm)
		}

		if cfg.gtol > 0 && p.gradientCosine(grad, normal, rss) <= cfg.gtol {
			return StatusGtol, iters, evals, rss
		}

		accepted := false
		for !accepted {
			if evals >= cfg.maxEval {
				return StatusMaxEvaluations, iters, evals, rss
			}

			damped.CopySym(normal)
			for a := 0; a < n; a++ {
				damped.SetSym(a, a, normal.At(a, a)+lambda*diag[a]*diag[a])
			}
			if !solveDamped(&chol, damped, deltaVec, gradVec) {
				lambda *= lambdaScale
				if lambda > lambdaMax {
					return StatusNoProgress, iters, evals, rss
				}
				continue
			}

			floats.AddTo(candidate, params, delta)
			trialRSS := p.residual(p.trial, candidate)
			evals++

			xnorm, dxnorm := scaledNorm(diag, params), scaledNorm(diag, delta)

			if !core.IsFinite(trialRSS) || trialRSS >= rss {
				lambda *= lambdaScale
				if dxnorm <= cfg.xtol*xnorm {
					return StatusXtol, iters, evals, rss
				}
				if lambda > lambdaMax {
					return StatusNoProgress, iters, evals, rss
				}
				continue
			}

			// linear-model prediction of the reduction: 2*d'g - d'(J'J)d
			predicted := (2*floats.Dot(delta, grad) - mat.Inner(deltaVec, normal, deltaVec)) / rss
			actual := 1 - trialRSS/rss

			copy(params, candidate)
			p.resid, p.trial = p.trial, p.resid
			rss = trialRSS
			accepted = true
			lambda = math.Max(lambda/lambdaScale, lambdaMin)

			ftolOK := (actual <= cfg.ftol && math.Abs(predicted) <= cfg.ftol) || rss <= floor
			xtolOK := dxnorm <= cfg.xtol*xnorm
			switch {
			case ftolOK && xtolOK:
				return StatusFtolXtol, iters, evals, rss
			case ftolOK:
				return StatusFtol, iters, evals, rss
			case xtolOK:
				return StatusXtol, iters, evals, rss
			}
		}
	}
}

// solveDamped solves damped * delta = grad. An ill-conditioned but
// positive definite system still yields a usable step, so a mat.Condition
// error is not a failure.
func solveDamped(chol *mat.Cholesky, damped *mat.SymDense, delta, grad *mat.VecDense) bool {
	if ok := chol.Factorize(damped); !ok {
		return false
	}
	if err := chol.SolveVecTo(delta, grad); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return false
		}
	}
	return core.AllFinite(delta.RawVector().Data)
}

// gradientCosine is the largest cosine between the residual and a Jacobian
// column.
func (p *problem) gradientCosine(grad []float64, normal *mat.SymDense, rss float64) float64 {
	rnorm := math.Sqrt(rss)
	worst := 0.0
	for j, g := range grad {
		cn := math.Sqrt(normal.At(j, j))
		if cn == 0 {
			continue
		}
		worst = math.Max(worst, math.Abs(g)/(cn*rnorm))
	}
	return worst
}

func scaledNorm(diag, x []float64) float64 {
	var sum float64
	for i, v := range x {
		d := diag[i] * v
		sum += d * d
	}
	return math.Sqrt(sum)
}

// result folds negative amplitudes into the phase and wraps phases.
func (p *problem) result(params []float64) *Result {
	res := &Result{
		Frequencies: make([]float64, p.k),
		Amplitudes:  make([]float64, p.k),
		Phases:      make([]float64, p.k),
	}
	for k := 0; k < p.k; k++ {
		a, phi := params[2*k], params[2*k+1]
		if a < 0 {
			a = -a
			phi += math.Pi
		}
		res.Frequencies[k] = p.freq(params, k)
		res.Amplitudes[k] = a
		res.Phases[k] = core.WrapPhase(phi)
	}
	return res
}
