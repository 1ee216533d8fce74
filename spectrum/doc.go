// Package spectrum defines the sampled spectrum model shared by the
// broadening operators: a strictly increasing wavelength grid with one
// normalized flux value (and optionally one flux error) per sample.
//
// Operators treat a [Spectrum] as immutable input and return a new value on
// the same grid. Grid helpers derive the local sampling step from
// neighboring samples ([Spectrum.LocalStep]) or verify that the grid is
// uniform ([Spectrum.UniformStep]) for operators whose kernel index
// arithmetic needs a constant step. [Resample] and [UniformGrid] move a
// spectrum onto and off a uniform grid, and [Read]/[Write] handle the
// whitespace-separated "waveobs flux err" text format (optionally gzipped).
package spectrum
