package broaden

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-stellar/spectrum"
)

// MinVSini is the smallest projected rotational velocity (km/s) that
// Rotation treats as enabled.
const MinVSini = 0.5

// Rotation broadens s with a rotational profile for projected velocity
// vsini (km/s) and linear limb-darkening coefficient u in [0, 1]. The grid
// must be uniform. The first and last nd samples, where
// nd = int(lambda_last*vsini/(step*c) + 5.5), are copied unchanged.
// vsini < MinVSini returns a copy of s.
func Rotation(s *spectrum.Spectrum, vsini, u float64) (*spectrum.Spectrum, error) {
	if err := checkFinite("vsini", vsini); err != nil {
		return nil, err
	}
	if math.IsNaN(u) || u < 0 || u > 1 {
		return nil, fmt.Errorf("%w: limb darkening coefficient %g outside [0, 1]", ErrInvalidParams, u)
	}
	if vsini < MinVSini {
		return s.Clone(), nil
	}

	step, err := s.UniformStep()
	if err != nil {
		return nil, fmt.Errorf("broaden: rotation: %w", err)
	}

	n := s.Len()
	nd := RotationHalfWidth(s.Last(), vsini, step)
	flux := append([]float64(nil), s.Flux...)
	if n <= 2*nd {
		return s.WithFlux(flux), nil
	}

	weights := make([]float64, 2*nd+1)
	prod := make([]float64, len(weights))
	for i := nd; i <= n-1-nd; i++ {
		dlc := s.Wave[i] * vsini / SpeedOfLight
		fillRotationKernel(weights, dlc, step, nd, u)
		vecmath.MulBlock(prod, weights, s.Flux[i-nd:i+nd+1])
		flux[i] = floats.Sum(prod) / floats.Sum(weights)
	}
	return s.WithFlux(flux), nil
}

// RotationHalfWidth returns the kernel half-width nd in samples for a grid
// ending at lastWave with the given step.
func RotationHalfWidth(lastWave, vsini, step float64) int {
	return int(lastWave*vsini/(step*SpeedOfLight) + 5.5)
}

// RotationKernel returns the 2nd+1 unnormalized rotational weights for
// offsets -nd..nd around a sample whose Doppler width is dlc.
func RotationKernel(dlc, step float64, nd int, u float64) []float64 {
	weights := make([]float64, 2*nd+1)
	fillRotationKernel(weights, dlc, step, nd, u)
	return weights
}

func fillRotationKernel(weights []float64, dlc, step float64, nd int, u float64) {
	beta := (1 - u) / (1 - u/3)
	gamma := u / (1 - u/3)
	c1 := 2 / math.Pi * beta / dlc
	c2 := gamma / (2 * dlc)
	dv := step / dlc

	for i := -nd; i <= nd; i++ {
		v := float64(i) * dv
		r2 := 1 - v*v
		if r2 <= 0 {
			weights[i+nd] = 0
			continue
		}
		weights[i+nd] = c1*math.Sqrt(r2) + c2*r2
	}
}
