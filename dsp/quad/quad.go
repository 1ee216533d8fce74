package quad

import (
	"errors"
	"fmt"
	"math"
)

// ErrDivergence is returned when the refinement budget is exhausted before
// successive estimates agree.
var ErrDivergence = errors.New("quad: too many refinement steps")

// Func is a real integrand of one variable.
type Func func(x float64) float64

const (
	defaultTolerance    = 1e-6
	defaultMaxSteps     = 20
	defaultMinZeroSteps = 6
)

// Option configures an integration call.
type Option func(*config)

type config struct {
	tolerance    float64
	maxSteps     int
	minZeroSteps int
}

func defaultConfig() config {
	return config{
		tolerance:    defaultTolerance,
		maxSteps:     defaultMaxSteps,
		minZeroSteps: defaultMinZeroSteps,
	}
}

// WithTolerance sets the relative agreement required between successive
// estimates.
func WithTolerance(eps float64) Option {
	return func(cfg *config) {
		if eps > 0 {
			cfg.tolerance = eps
		}
	}
}

// WithMaxSteps sets the maximum number of trapezoid refinements.
func WithMaxSteps(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxSteps = n
		}
	}
}

// WithMinZeroSteps sets how many refinements must pass before two exactly
// zero estimates are accepted as converged.
func WithMinZeroSteps(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.minZeroSteps = n
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// trapezoid holds the running composite trapezoid estimate for one interval.
// Refine must be called with step = 1, 2, 3, ... in order.
type trapezoid struct {
	f    Func
	a, b float64
	s    float64
}

// Refine returns the step-th trapezoid estimate. Step 1 evaluates the end
// points; each later step adds 2^(step-2) interior midpoints.
func (t *trapezoid) Refine(step int) float64 {
	if step == 1 {
		t.s = 0.5 * (t.b - t.a) * (t.f(t.a) + t.f(t.b))
		return t.s
	}

	it := 1
	for j := 1; j < step-1; j++ {
		it <<= 1
	}

	tnm := float64(it)
	del := (t.b - t.a) / tnm
	x := t.a + 0.5*del
	sum := 0.0
	for j := 0; j < it; j++ {
		sum += t.f(x)
		x += del
	}

	t.s = 0.5 * (t.s + (t.b-t.a)*sum/tnm)
	return t.s
}

// Trapezoid returns the composite trapezoid estimate of the integral of f on
// [a, b] after the given number of refinements (2^(steps-1) intervals).
func Trapezoid(f Func, a, b float64, steps int) float64 {
	t := trapezoid{f: f, a: a, b: b}
	s := 0.0
	for j := 1; j <= steps; j++ {
		s = t.Refine(j)
	}
	return s
}

// Simpson integrates f over [a, b] with successive trapezoid refinement and
// Richardson extrapolation.
func Simpson(f Func, a, b float64, opts ...Option) (float64, error) {
	cfg := applyOptions(opts)
	t := trapezoid{f: f, a: a, b: b}

	prevT := -1.0e30
	prevS := -1.0e30
	for j := 1; j <= cfg.maxSteps; j++ {
		st := t.Refine(j)
		s := (4.0*st - prevT) / 3.0
		if math.Abs(s-prevS) < cfg.tolerance*math.Abs(prevS) {
			return s, nil
		}
		if s == 0 && prevS == 0 && j > cfg.minZeroSteps {
			return s, nil
		}
		prevS = s
		prevT = st
	}

	return 0, fmt.Errorf("%w: no convergence on [%g, %g] after %d steps", ErrDivergence, a, b, cfg.maxSteps)
}
