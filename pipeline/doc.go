// Package pipeline sequences the broadening operators over one spectrum.
//
// A [Pipeline] applies macroturbulence, rotation and instrumental
// resolution in that order, skipping stages whose parameter disables them.
// Macroturbulence and rotation need a uniform wavelength grid; when the
// input grid is irregular the pipeline resamples onto a uniform grid at the
// smallest local step, runs those stages there and resamples back onto the
// original grid before the resolution stage, which handles irregular grids
// itself.
//
// [Pipeline.Synthesize] additionally drives an upstream [Synthesizer] that
// produces the unbroadened flux, forwarding its progress reports.
package pipeline
