package conv

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-stellar/dsp/core"
	"github.com/cwbudde/algo-stellar/dsp/fft"
)

// WrapAround returns an m-length kernel in wrap-around order whose entries
// are lag(k) for k = -(m-1)/2 .. (m-1)/2. m should be odd.
func WrapAround(m int, lag func(k int) float64) []float64 {
	if m <= 0 {
		return nil
	}

	kernel := make([]float64, m)
	half := (m - 1) / 2
	for k := 0; k <= half; k++ {
		kernel[k] = lag(k)
	}
	for k := 1; k <= half; k++ {
		kernel[m-k] = lag(-k)
	}
	return kernel
}

// Circular convolves (or deconvolves) data with a response whose first m
// entries hold a kernel in wrap-around order. len(data) must be a power of
// two and include any zero padding the caller needs; len(response) must
// equal len(data). Neither input is modified. The result has len(data)
// samples.
func Circular(data, response []float64, m int, mode Mode) ([]float64, error) {
	n := len(data)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if !fft.IsPowerOf2(n) || n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, n)
	}
	if len(response) != n {
		return nil, fmt.Errorf("%w: data %d, response %d", ErrLengthMismatch, n, len(response))
	}
	if m < 1 {
		return nil, ErrEmptyKernel
	}
	if m%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrEvenKernel, m)
	}
	if m > n {
		return nil, fmt.Errorf("%w: kernel %d, data %d", ErrKernelTooLong, m, n)
	}
	if mode != ModeConvolve && mode != ModeDeconvolve {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}

	resp := embedResponse(response, n, m)

	dataSpec, ans, err := fft.TwoReal(data, resp)
	if err != nil {
		return nil, err
	}

	no2 := float64(n >> 1)
	nbins := n/2 + 1

	if mode == ModeDeconvolve {
		if bin, ok := zeroPowerBin(ans, nbins); ok {
			return nil, fmt.Errorf("%w: frequency bin %d", ErrSingular, bin)
		}
	}

	for k := 0; k < nbins; k++ {
		i := 2 * k
		re, im := ans[i], ans[i+1]
		if mode == ModeConvolve {
			ans[i] = (dataSpec[i]*re - dataSpec[i+1]*im) / no2
			ans[i+1] = (dataSpec[i+1]*re + dataSpec[i]*im) / no2
			continue
		}

		mag2 := re*re + im*im
		ans[i] = (dataSpec[i]*re + dataSpec[i+1]*im) / mag2 / no2
		ans[i+1] = (dataSpec[i+1]*re - dataSpec[i]*im) / mag2 / no2
	}

	// The real inverse expects the Nyquist bin packed into slot 1.
	ans[1] = ans[n]
	out := ans[:n:n]
	if err := fft.Real(out, fft.Inverse); err != nil {
		return nil, err
	}
	return out, nil
}

// embedResponse copies the wrap-around kernel into a length-n buffer with
// the negative-lag tail moved to the end and the middle zeroed.
func embedResponse(response []float64, n, m int) []float64 {
	resp := make([]float64, n)
	copy(resp, response[:m])

	half := (m - 1) / 2
	for i := 1; i <= half; i++ {
		resp[n-i] = resp[m-i]
	}
	core.Zero(resp[half+1 : n-half])
	return resp
}

// zeroPowerBin reports the first of the nbins interleaved bins in spec with
// zero power.
func zeroPowerBin(spec []float64, nbins int) (int, bool) {
	re := make([]float64, nbins)
	im := make([]float64, nbins)
	for k := range re {
		re[k] = spec[2*k]
		im[k] = spec[2*k+1]
	}

	power := make([]float64, nbins)
	vecmath.Power(power, re, im)
	for k, p := range power {
		if p == 0 {
			return k, true
		}
	}
	return 0, false
}
