// Package broaden implements the line-broadening operators applied to a
// synthetic stellar spectrum before comparison with an observation.
//
// Three operators are provided, each taking a [spectrum.Spectrum] and
// returning a new spectrum on the same wavelength grid:
//
//   - [Macroturbulence] convolves the flux with the radial-tangential
//     macroturbulence profile through an FFT-based circular convolution
//     and renormalizes so the integrated flux is conserved.
//   - [Rotation] applies a limb-darkened rotational profile with a
//     wavelength-dependent width. The first and last nd samples, where the
//     profile would reach past the grid, are passed through unchanged.
//   - [Resolution] degrades the spectrum to a resolving power R with a
//     Gaussian window sized from the local sampling step, so irregular
//     grids are allowed.
//
// Macroturbulence and Rotation index their kernels by sample offset and
// therefore need a uniform grid; they return [spectrum.ErrNonUniformGrid]
// otherwise. Every operator treats a non-positive (or, for rotation, very
// small) broadening parameter as "disabled" and returns a copy of its
// input.
package broaden
