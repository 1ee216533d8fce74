package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-stellar/dsp/core"
	"github.com/cwbudde/algo-stellar/dsp/interp"
)

// MaxGridExpansion bounds the number of intervals UniformGrid may create
// per interval of the source grid.
const MaxGridExpansion = 64

// UniformGrid returns an evenly spaced grid from the first to the last
// wavelength of s whose step does not exceed the smallest local step. A
// grid that is already uniform is returned as a copy. A grid that would
// need more than MaxGridExpansion intervals per source interval, as near
// duplicate wavelengths at a segment seam do, yields ErrGridTooDense.
func UniformGrid(s *Spectrum) ([]float64, error) {
	if _, err := s.UniformStep(); err == nil {
		return append([]float64(nil), s.Wave...), nil
	}

	first, last := s.First(), s.Last()
	span := last - first
	minStep := s.MinStep()

	limit := MaxGridExpansion * (s.Len() - 1)
	ratio := span / minStep * (1 - 1e-9)
	if ratio > float64(limit) {
		return nil, fmt.Errorf("%w: minimum step %g over span %g needs more than %d intervals",
			ErrGridTooDense, minStep, span, limit)
	}

	intervals := int(math.Ceil(ratio))
	if intervals < 1 {
		intervals = 1
	}
	step := span / float64(intervals)

	grid := make([]float64, intervals+1)
	for i := range grid {
		grid[i] = first + float64(i)*step
	}
	grid[intervals] = last
	return grid, nil
}

// Resample linearly interpolates s onto grid. Points outside the source
// range take the nearest end value. The error column, if any, is
// interpolated the same way.
func Resample(s *Spectrum, grid []float64) (*Spectrum, error) {
	if err := checkTarget(grid); err != nil {
		return nil, err
	}

	out := &Spectrum{
		Wave: append([]float64(nil), grid...),
		Flux: resampleLinear(s.Wave, s.Flux, grid),
	}
	if s.Err != nil {
		out.Err = resampleLinear(s.Wave, s.Err, grid)
	}
	return out, nil
}

// ResampleCubic interpolates s onto grid with 4-point Hermite
// interpolation. The source grid must be uniform; end samples are
// replicated to fill the outer taps.
func ResampleCubic(s *Spectrum, grid []float64) (*Spectrum, error) {
	if err := checkTarget(grid); err != nil {
		return nil, err
	}
	if _, err := s.UniformStep(); err != nil {
		return nil, err
	}

	ip := interp.NewLagrangeInterpolator(3)
	out := &Spectrum{
		Wave: append([]float64(nil), grid...),
		Flux: resampleTaps(ip, s.Wave, s.Flux, grid),
	}
	if s.Err != nil {
		out.Err = resampleLinear(s.Wave, s.Err, grid)
	}
	return out, nil
}

func checkTarget(grid []float64) error {
	if len(grid) < 2 {
		return fmt.Errorf("%w: target grid has %d points", ErrTooShort, len(grid))
	}
	return validateGrid(grid)
}

func resampleLinear(wave, values, grid []float64) []float64 {
	out := make([]float64, len(grid))
	for j, x := range grid {
		i, frac := interp.Locate(wave, x)
		out[j] = interp.Linear2(frac, values[i], values[i+1])
	}
	return out
}

func resampleTaps(ip *interp.LagrangeInterpolator, wave, values, grid []float64) []float64 {
	taps := make([]float64, ip.Taps())
	out := make([]float64, len(grid))

	for j, x := range grid {
		i, frac := interp.Locate(wave, x)
		// Taps span [i-1, i+2] around the interval [i, i+1].
		for k := range taps {
			taps[k] = values[core.ClampIndex(i-1+k, len(values))]
		}
		out[j] = ip.Interpolate(taps, frac)
	}
	return out
}
