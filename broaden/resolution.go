package broaden

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-stellar/dsp/core"
	"github.com/cwbudde/algo-stellar/spectrum"
)

// windowWidths is the Gaussian window half-extent in units of n.
const windowWidths = 3

// Resolution degrades s to resolving power r. Each output sample is a
// Gaussian-weighted mean of the input with half width at half maximum
// lambda/(2r), measured in local sampling steps, so irregular grids are
// allowed. Samples whose half width rounds to zero steps are copied.
// r <= 0 returns a copy of s.
func Resolution(s *spectrum.Spectrum, r float64) (*spectrum.Spectrum, error) {
	if err := checkFinite("resolution", r); err != nil {
		return nil, err
	}
	if r <= 0 {
		return s.Clone(), nil
	}

	size := s.Len()
	src := s.Flux
	flux := make([]float64, size)
	var weights, prod []float64

	for i := range flux {
		n := ResolutionHalfWidth(s.Wave[i], s.LocalStep(i), r)
		if n == 0 {
			flux[i] = src[i]
			continue
		}

		low := max(0, i-windowWidths*n)
		high := min(size-1, i+windowWidths*n)
		weights = core.EnsureLen(weights, high-low+1)
		prod = core.EnsureLen(prod, len(weights))

		// Weight 0.5 at distance n.
		a := -math.Log10(0.5) / float64(n*n)
		for k := low; k <= high; k++ {
			d := float64(k - i)
			weights[k-low] = math.Pow(10, -a*d*d)
		}
		vecmath.MulBlock(prod, weights, src[low:high+1])
		flux[i] = floats.Sum(prod) / floats.Sum(weights)
	}
	return s.WithFlux(flux), nil
}

// ResolutionHalfWidth returns the Gaussian half width at half maximum, in
// samples, at wavelength wave for local step and resolving power r.
func ResolutionHalfWidth(wave, step, r float64) int {
	return roundHalfUp(wave / (2 * r) / step)
}

// roundHalfUp rounds x >= 0 to the nearest integer, ties upward.
func roundHalfUp(x float64) int {
	lo := math.Floor(x)
	hi := math.Ceil(x)
	if x-lo < hi-x {
		return int(lo)
	}
	return int(hi)
}
