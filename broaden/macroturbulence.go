package broaden

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/cwbudde/algo-stellar/dsp/conv"
	"github.com/cwbudde/algo-stellar/dsp/fft"
	"github.com/cwbudde/algo-stellar/dsp/quad"
	"github.com/cwbudde/algo-stellar/spectrum"
)

const (
	sqrtPi = 1.772453850905516

	// zeroLag stands in for a zero wavelength offset in the profile.
	zeroLag = 1e-16

	// kernelWidths is the kernel extent in units of the characteristic
	// width Z.
	kernelWidths = 10
)

// Macroturbulence broadens s with the radial-tangential macroturbulence
// profile for velocity vmac (km/s). The grid must be uniform. The result is
// scaled so its trapezoidal flux integral matches the input. vmac <= 0
// returns a copy of s. opts tune the kernel quadrature.
func Macroturbulence(s *spectrum.Spectrum, vmac float64, opts ...quad.Option) (*spectrum.Spectrum, error) {
	if err := checkFinite("vmac", vmac); err != nil {
		return nil, err
	}
	if vmac <= 0 {
		return s.Clone(), nil
	}

	step, err := s.UniformStep()
	if err != nil {
		return nil, fmt.Errorf("broaden: macroturbulence: %w", err)
	}

	z := s.Midpoint() * vmac / SpeedOfLight
	m := MacroturbulenceWidth(z, step)

	n := s.Len()
	size := max(fft.NextPowerOf2(n+m), 2)

	kernel, err := MacroturbulenceKernel(z, step, m, opts...)
	if err != nil {
		return nil, err
	}

	data := make([]float64, size)
	copy(data, s.Flux)
	response := make([]float64, size)
	copy(response, kernel)

	out, err := conv.Circular(data, response, m, conv.ModeConvolve)
	if err != nil {
		return nil, fmt.Errorf("broaden: macroturbulence: %w", err)
	}

	flux := make([]float64, n)
	copy(flux, out)
	if after := integrate.Trapezoidal(s.Wave, flux); after != 0 {
		floats.Scale(s.Integral()/after, flux)
	}
	return s.WithFlux(flux), nil
}

// MacroturbulenceWidth returns the odd kernel length covering ten
// characteristic widths z at the given step.
func MacroturbulenceWidth(z, step float64) int {
	m := int(math.Ceil(kernelWidths * z / step))
	if m%2 == 0 {
		m++
	}
	return m
}

// MacroturbulenceKernel returns the m-sample macroturbulence profile for
// characteristic width z (wavelength units) sampled every step, in
// wrap-around order. m must be odd.
func MacroturbulenceKernel(z, step float64, m int, opts ...quad.Option) ([]float64, error) {
	if !(z > 0) || !(step > 0) || m < 1 || m%2 == 0 {
		return nil, fmt.Errorf("%w: kernel z=%g step=%g m=%d", ErrInvalidParams, z, step, m)
	}

	half := (m - 1) / 2
	profile := make([]float64, half+1)
	for k := range profile {
		v, err := macroProfile(float64(k)*step, z, opts)
		if err != nil {
			return nil, fmt.Errorf("broaden: macroturbulence kernel lag %d: %w", k, err)
		}
		profile[k] = v
	}

	return conv.WrapAround(m, func(k int) float64 {
		if k < 0 {
			k = -k
		}
		return profile[k]
	}), nil
}

// macroProfile evaluates M(lam) = 2 lam/(sqrt(pi) z^2) * int_0^{z/lam} exp(-1/u^2) du.
func macroProfile(lam, z float64, opts []quad.Option) (float64, error) {
	if lam == 0 {
		lam = zeroLag
	}
	integral, err := quad.Simpson(expInvSquare, 0, z/lam, opts...)
	if err != nil {
		return 0, err
	}
	return 2 * lam / (sqrtPi * z * z) * integral, nil
}

func expInvSquare(u float64) float64 {
	if u == 0 {
		return 0
	}
	return math.Exp(-1 / (u * u))
}
