package spectrum

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"
)

// Errors returned by spectrum construction and grid checks.
var (
	ErrTooShort       = errors.New("spectrum: at least two samples required")
	ErrLengthMismatch = errors.New("spectrum: column length mismatch")
	ErrNotIncreasing  = errors.New("spectrum: wavelengths must be strictly increasing")
	ErrNotFinite      = errors.New("spectrum: non-finite wavelength")
	ErrNonUniformGrid = errors.New("spectrum: wavelength grid is not uniform")
	ErrGridTooDense   = errors.New("spectrum: uniform grid too dense")
)

// DefaultUniformTolerance is the relative deviation from the mean step that
// UniformStep accepts.
const DefaultUniformTolerance = 1e-6

// Spectrum is a sampled spectrum. Err is optional (nil or len(Wave)).
type Spectrum struct {
	Wave []float64
	Flux []float64
	Err  []float64
}

// New returns a validated spectrum holding copies of wave and flux.
func New(wave, flux []float64) (*Spectrum, error) {
	return NewWithErr(wave, flux, nil)
}

// NewWithErr is like New but also carries a flux error column.
func NewWithErr(wave, flux, errs []float64) (*Spectrum, error) {
	s := &Spectrum{
		Wave: append([]float64(nil), wave...),
		Flux: append([]float64(nil), flux...),
	}
	if errs != nil {
		s.Err = append([]float64(nil), errs...)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the column lengths and the wavelength ordering.
func (s *Spectrum) Validate() error {
	if len(s.Flux) != len(s.Wave) {
		return fmt.Errorf("%w: %d wavelengths, %d fluxes", ErrLengthMismatch, len(s.Wave), len(s.Flux))
	}
	if s.Err != nil && len(s.Err) != len(s.Wave) {
		return fmt.Errorf("%w: %d wavelengths, %d errors", ErrLengthMismatch, len(s.Wave), len(s.Err))
	}
	if len(s.Wave) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooShort, len(s.Wave))
	}
	return validateGrid(s.Wave)
}

func validateGrid(wave []float64) error {
	for i, w := range wave {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: index %d", ErrNotFinite, i)
		}
		if i > 0 && w <= wave[i-1] {
			return fmt.Errorf("%w: index %d (%g after %g)", ErrNotIncreasing, i, w, wave[i-1])
		}
	}
	return nil
}

// Len returns the number of samples.
func (s *Spectrum) Len() int {
	return len(s.Wave)
}

// Clone returns a deep copy.
func (s *Spectrum) Clone() *Spectrum {
	c := &Spectrum{
		Wave: append([]float64(nil), s.Wave...),
		Flux: append([]float64(nil), s.Flux...),
	}
	if s.Err != nil {
		c.Err = append([]float64(nil), s.Err...)
	}
	return c
}

// WithFlux returns a spectrum on a copy of the same grid (and error column)
// that takes ownership of flux. flux must have Len() samples.
func (s *Spectrum) WithFlux(flux []float64) *Spectrum {
	c := &Spectrum{
		Wave: append([]float64(nil), s.Wave...),
		Flux: flux,
	}
	if s.Err != nil {
		c.Err = append([]float64(nil), s.Err...)
	}
	return c
}

// First returns the first wavelength.
func (s *Spectrum) First() float64 { return s.Wave[0] }

// Last returns the last wavelength.
func (s *Spectrum) Last() float64 { return s.Wave[len(s.Wave)-1] }

// Midpoint returns the wavelength halfway between the grid ends.
func (s *Spectrum) Midpoint() float64 {
	return (s.First() + s.Last()) / 2
}

// LocalStep returns the sampling step at sample i: the smaller of the
// backward and forward neighbor differences. The end samples use their
// single neighbor.
func (s *Spectrum) LocalStep(i int) float64 {
	n := len(s.Wave)
	switch {
	case i == 0:
		return math.Abs(s.Wave[1] - s.Wave[0])
	case i == n-1:
		return math.Abs(s.Wave[i] - s.Wave[i-1])
	}

	back := math.Abs(s.Wave[i] - s.Wave[i-1])
	fwd := math.Abs(s.Wave[i+1] - s.Wave[i])
	if back < fwd {
		return back
	}
	return fwd
}

// MinStep returns the smallest neighbor difference on the grid.
func (s *Spectrum) MinStep() float64 {
	minStep := math.Inf(1)
	for i := 1; i < len(s.Wave); i++ {
		if d := s.Wave[i] - s.Wave[i-1]; d < minStep {
			minStep = d
		}
	}
	return minStep
}

// UniformStep returns the mean grid step if every neighbor difference is
// within DefaultUniformTolerance (relative) of it.
func (s *Spectrum) UniformStep() (float64, error) {
	return s.UniformStepTol(DefaultUniformTolerance)
}

// UniformStepTol is UniformStep with an explicit relative tolerance.
// tol <= 0 selects DefaultUniformTolerance.
func (s *Spectrum) UniformStepTol(tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultUniformTolerance
	}

	n := len(s.Wave)
	step := (s.Last() - s.First()) / float64(n-1)
	for i := 1; i < n; i++ {
		d := s.Wave[i] - s.Wave[i-1]
		if math.Abs(d-step) > tol*step {
			return 0, fmt.Errorf("%w: step %g at index %d, mean %g", ErrNonUniformGrid, d, i, step)
		}
	}
	return step, nil
}

// Integral returns the trapezoidal integral of flux over wavelength.
func (s *Spectrum) Integral() float64 {
	return integrate.Trapezoidal(s.Wave, s.Flux)
}
