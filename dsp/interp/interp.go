package interp

import "sort"

// LagrangeInterpolator provides configurable fractional interpolation.
type LagrangeInterpolator struct {
	order int
}

// NewLagrangeInterpolator creates an interpolator.
// order: 1 = linear, 3 = cubic (Hermite-style 4-point interpolation).
// Any other order falls back to linear.
func NewLagrangeInterpolator(order int) *LagrangeInterpolator {
	if order != 3 {
		order = 1
	}
	return &LagrangeInterpolator{order: order}
}

// Order returns the interpolation order (1 or 3).
func (l *LagrangeInterpolator) Order() int {
	return l.order
}

// Taps returns how many samples Interpolate consumes (2 or 4).
func (l *LagrangeInterpolator) Taps() int {
	return l.order + 1
}

// Interpolate interpolates around frac in [0,1].
// For order 1, samples must contain at least 2 values.
// For order 3, samples must contain at least 4 values and interpolates between samples[1] and samples[2].
// Shorter inputs degrade to linear interpolation of the first two samples.
func (l *LagrangeInterpolator) Interpolate(samples []float64, frac float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	if len(samples) < 2 {
		return samples[0]
	}
	if l.order == 3 && len(samples) >= 4 {
		return Hermite4(frac, samples[0], samples[1], samples[2], samples[3])
	}
	return Linear2(frac, samples[0], samples[1])
}

// Linear2 interpolates linearly from x0 (t = 0) to x1 (t = 1).
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// Locate returns the index i of the interval [grid[i], grid[i+1]] that
// contains x and the fractional position of x inside it. grid must be
// sorted ascending with at least two points. Points outside the grid are
// clamped to the first or last interval with frac 0 or 1.
func Locate(grid []float64, x float64) (int, float64) {
	last := len(grid) - 1
	if x <= grid[0] {
		return 0, 0
	}
	if x >= grid[last] {
		return last - 1, 1
	}

	// First index with grid[j] > x; x lies in [grid[j-1], grid[j]).
	j := sort.Search(len(grid), func(k int) bool { return grid[k] > x })
	i := j - 1
	return i, (x - grid[i]) / (grid[i+1] - grid[i])
}
