// Package conv provides frequency-domain circular convolution and
// deconvolution of a real data set with a response kernel stored in
// wrap-around order, plus a direct time-domain reference convolution.
//
// # Wrap-around order
//
// A response of odd length m is stored so that index 0 holds lag 0, indices
// 1..(m-1)/2 hold positive lags, and index m-k holds lag -k:
//
//	m = 5:  [ r(0) r(+1) r(+2) r(-2) r(-1) ]
//
// [WrapAround] builds such a kernel from a function of signed lag.
// [Circular] moves the negative-lag tail to the end of a length-n buffer and
// zeroes the middle before transforming, so the kernel acts as a centered
// (non-causal) filter.
//
// # Usage
//
//	kernel := conv.WrapAround(m, func(k int) float64 { return g(k) })
//	padded := make([]float64, n) // n a power of two >= len(signal)+m
//	copy(padded, signal)
//	out, err := conv.Circular(padded, kernel, conv.ModeConvolve)
//
// Samples of the output past the original signal's support come from the
// zero padding and are normally discarded by the caller.
//
// # Deconvolution
//
// [ModeDeconvolve] divides the spectra instead of multiplying them. A
// response bin with zero power makes the division undefined and yields
// [ErrSingular]; no regularization is applied.
package conv
