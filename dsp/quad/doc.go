// Package quad provides adaptive quadrature for smooth one-dimensional
// integrands on finite intervals.
//
// [Simpson] refines a sequence of composite trapezoid estimates by halving
// the step and combines consecutive estimates with one Richardson
// extrapolation step, which is exactly Simpson's rule:
//
//	s_j = (4*T_j - T_{j-1}) / 3
//
// Refinement stops when successive Simpson estimates agree within a relative
// tolerance (1e-6 by default). If the step budget (20 halvings by default) is
// exhausted first, [ErrDivergence] is returned; no partial result is
// substituted.
//
// # Usage
//
//	v, err := quad.Simpson(math.Sin, 0, math.Pi)
//	v, err := quad.Simpson(f, 0, 10, quad.WithTolerance(1e-9))
//
// Improper integrals are evaluated by capping the upper limit. Integrands
// that are singular at an end point must special-case that argument
// themselves (return a finite limit value) rather than rely on cancellation.
//
// Each call owns its accumulator, so concurrent calls are safe.
package quad
