package conv

import (
	"errors"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
	ErrInvalidLength  = errors.New("conv: data length must be a power of two")
	ErrEvenKernel     = errors.New("conv: kernel length must be odd")
	ErrKernelTooLong  = errors.New("conv: kernel longer than data")
	ErrInvalidMode    = errors.New("conv: invalid mode")
	ErrSingular       = errors.New("conv: deconvolving at response zero")
)

// Mode selects between convolution and deconvolution in [Circular].
type Mode int

const (
	// ModeConvolve multiplies the data and response spectra.
	ModeConvolve Mode = iota

	// ModeDeconvolve divides the data spectrum by the response spectrum.
	ModeDeconvolve
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeConvolve:
		return "convolve"
	case ModeDeconvolve:
		return "deconvolve"
	default:
		return "unknown"
	}
}
