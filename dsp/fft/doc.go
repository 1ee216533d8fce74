// Package fft implements an in-place radix-2 decimation-in-time FFT on
// interleaved float64 buffers, plus the two real-signal specializations the
// circular convolution engine is built on.
//
// Complex sequences are stored as [re0, im0, re1, im1, ...]. Lengths must be
// powers of two; anything else yields [ErrInvalidLength].
//
//   - [Complex]: complex FFT of len(data)/2 points, forward or inverse
//   - [Real]:    FFT of a real sequence via a half-length complex FFT
//   - [TwoReal]: FFTs of two real sequences from one complex FFT
//
// # Sign convention
//
// [Forward] uses the kernel exp(+2*pi*i*j*k/n) and [Inverse] exp(-2*pi*i*j*k/n).
// Neither direction is normalized: Complex(Inverse) after Complex(Forward)
// returns n times the input.
//
// # Real transform layout
//
// [Real] with [Forward] replaces n real samples with the n/2 positive
// frequency bins. Bins 0 and n/2 are both real, so data[0] holds F_0 and
// data[1] holds F_{n/2}. [Real] with [Inverse] expects that layout and
// returns n/2 times the original samples.
//
// Butterfly order and the trigonometric twiddle recurrence are fixed so that
// results are reproducible bit for bit across the packing routines in
// package conv.
package fft
