package fft

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by transforms.
var (
	ErrInvalidLength  = errors.New("fft: length must be a power of two")
	ErrInvalidSign    = errors.New("fft: sign must be Forward or Inverse")
	ErrLengthMismatch = errors.New("fft: buffer length mismatch")
)

// Sign selects the transform direction.
type Sign int

const (
	// Forward transforms with exp(+2*pi*i*j*k/n).
	Forward Sign = 1
	// Inverse transforms with exp(-2*pi*i*j*k/n), unnormalized.
	Inverse Sign = -1
)

// twoPi matches the rounded constant of the reference four1 tables.
const twoPi = 6.28318530717959

func (s Sign) valid() bool {
	return s == Forward || s == Inverse
}

// Complex transforms len(data)/2 complex points stored as interleaved
// real/imaginary pairs, in place.
func Complex(data []float64, sign Sign) error {
	if !sign.valid() {
		return ErrInvalidSign
	}
	if len(data)%2 != 0 || !IsPowerOf2(len(data)/2) {
		return fmt.Errorf("%w: %d complex points", ErrInvalidLength, len(data)/2)
	}

	four1(data, sign)
	return nil
}

// four1 assumes len(data)/2 is a power of two.
func four1(data []float64, sign Sign) {
	n := len(data)
	nn := n >> 1

	// Bit-reversal reordering.
	j := 0
	for i := 0; i < n; i += 2 {
		if j > i {
			data[j], data[i] = data[i], data[j]
			data[j+1], data[i+1] = data[i+1], data[j+1]
		}
		m := nn
		for m >= 2 && j >= m {
			j -= m
			m >>= 1
		}
		j += m
	}

	// Danielson-Lanczos butterflies.
	mmax := 2
	for n > mmax {
		istep := mmax << 1
		theta := float64(sign) * (twoPi / float64(mmax))
		wtemp := math.Sin(0.5 * theta)
		wpr := -2.0 * wtemp * wtemp
		wpi := math.Sin(theta)
		wr := 1.0
		wi := 0.0
		for m := 0; m < mmax; m += 2 {
			for i := m; i < n; i += istep {
				j := i + mmax
				tempr := wr*data[j] - wi*data[j+1]
				tempi := wr*data[j+1] + wi*data[j]
				data[j] = data[i] - tempr
				data[j+1] = data[i+1] - tempi
				data[i] += tempr
				data[i+1] += tempi
			}
			wtemp = wr
			wr = wtemp*wpr - wi*wpi + wr
			wi = wi*wpr + wtemp*wpi + wi
		}
		mmax = istep
	}
}

// Real transforms a real sequence of len(data) samples in place. See the
// package documentation for the packed output layout.
func Real(data []float64, sign Sign) error {
	if !sign.valid() {
		return ErrInvalidSign
	}
	n := len(data)
	if n < 2 || !IsPowerOf2(n) {
		return fmt.Errorf("%w: %d real samples", ErrInvalidLength, n)
	}

	realft(data, sign)
	return nil
}

func realft(data []float64, sign Sign) {
	n := len(data)
	c1 := 0.5
	c2 := 0.5
	theta := math.Pi / float64(n>>1)
	if sign == Forward {
		c2 = -0.5
		four1(data, Forward)
	} else {
		theta = -theta
	}

	wtemp := math.Sin(0.5 * theta)
	wpr := -2.0 * wtemp * wtemp
	wpi := math.Sin(theta)
	wr := 1.0 + wpr
	wi := wpi

	// Bins k and n/2-k are combined pairwise, k = 1 .. n/4-1.
	for i := 2; i <= n>>2; i++ {
		i1 := 2*i - 2
		i2 := i1 + 1
		i3 := n + 2 - 2*i
		i4 := i3 + 1
		h1r := c1 * (data[i1] + data[i3])
		h1i := c1 * (data[i2] - data[i4])
		h2r := -c2 * (data[i2] + data[i4])
		h2i := c2 * (data[i1] - data[i3])
		data[i1] = h1r + wr*h2r - wi*h2i
		data[i2] = h1i + wr*h2i + wi*h2r
		data[i3] = h1r - wr*h2r + wi*h2i
		data[i4] = -h1i + wr*h2i + wi*h2r
		wtemp = wr
		wr = wtemp*wpr - wi*wpi + wr
		wi = wi*wpr + wtemp*wpi + wi
	}

	h1r := data[0]
	if sign == Forward {
		data[0] = h1r + data[1]
		data[1] = h1r - data[1]
		return
	}

	data[0] = c1 * (h1r + data[1])
	data[1] = c1 * (h1r - data[1])
	four1(data, Inverse)
}

// TwoReal returns the forward transforms of two real sequences of equal
// power-of-two length n. Each result holds n interleaved complex bins
// (real length 2n). Both are computed from a single complex FFT by packing
// a into the real and b into the imaginary part and separating the even and
// odd parts of the spectrum.
func TwoReal(a, b []float64) (fa, fb []float64, err error) {
	n := len(a)
	if len(b) != n {
		return nil, nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, n, len(b))
	}
	if !IsPowerOf2(n) {
		return nil, nil, fmt.Errorf("%w: %d real samples", ErrInvalidLength, n)
	}

	fa = make([]float64, 2*n)
	fb = make([]float64, 2*n)
	twofft(a, b, fa, fb)
	return fa, fb, nil
}

// twofft writes the spectra of a and b into fft1 and fft2, each of length
// 2*len(a).
func twofft(a, b, fft1, fft2 []float64) {
	n := len(a)
	for j := 0; j < n; j++ {
		fft1[2*j] = a[j]
		fft1[2*j+1] = b[j]
	}

	four1(fft1, Forward)

	fft2[0] = fft1[1]
	fft1[1] = 0
	fft2[1] = 0

	nn2 := 2 * n
	nn3 := nn2 + 1
	for j := 2; j <= n; j += 2 {
		rep := 0.5 * (fft1[j] + fft1[nn2-j])
		rem := 0.5 * (fft1[j] - fft1[nn2-j])
		aip := 0.5 * (fft1[j+1] + fft1[nn3-j])
		aim := 0.5 * (fft1[j+1] - fft1[nn3-j])
		fft1[j] = rep
		fft1[j+1] = aim
		fft1[nn2-j] = rep
		fft1[nn3-j] = -aim
		fft2[j] = aip
		fft2[j+1] = -rem
		fft2[nn2-j] = aip
		fft2[nn3-j] = rem
	}
}

// IsPowerOf2 reports whether n is a positive power of two.
func IsPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// NextPowerOf2 returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
