package conv

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-stellar/dsp/fft"
	"github.com/cwbudde/algo-stellar/internal/testutil"
)

// linearConvolve is the O(N*M) full linear convolution of a and b.
func linearConvolve(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i := range a {
		for j := range b {
			out[i+j] += a[i] * b[j]
		}
	}
	return out
}

func TestLinearConvolveReference(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected []float64
	}{
		{
			name:     "simple 3x3",
			a:        []float64{1, 2, 3},
			b:        []float64{1, 1, 1},
			expected: []float64{1, 3, 6, 5, 3},
		},
		{
			name:     "impulse",
			a:        []float64{1, 2, 3, 4, 5},
			b:        []float64{1},
			expected: []float64{1, 2, 3, 4, 5},
		},
		{
			name:     "symmetric",
			a:        []float64{1, 2, 1},
			b:        []float64{1, 2, 1},
			expected: []float64{1, 4, 6, 4, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.RequireSliceNearlyEqual(t, linearConvolve(tt.a, tt.b), tt.expected, 1e-12)
		})
	}
}

func TestWrapAroundLayout(t *testing.T) {
	kernel := WrapAround(5, func(k int) float64 { return float64(10 + k) })
	testutil.RequireSliceNearlyEqual(t, kernel, []float64{10, 11, 12, 8, 9}, 0)

	if got := WrapAround(1, func(int) float64 { return 3 }); len(got) != 1 || got[0] != 3 {
		t.Errorf("m=1 kernel = %v, want [3]", got)
	}
	if got := WrapAround(0, func(int) float64 { return 3 }); got != nil {
		t.Errorf("m=0 kernel = %v, want nil", got)
	}
}

func padded(signal []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, signal)
	return out
}

func lagKernel(k int) float64 {
	// Asymmetric so that lag sign errors show up.
	return math.Exp(-float64(k*k)/4) * (1 + 0.1*float64(k))
}

func TestCircularIdentityKernel(t *testing.T) {
	data := testutil.DeterministicNoise(5, 1, 64)
	resp := make([]float64, 64)
	resp[0] = 1

	out, err := Circular(data, resp, 1, ModeConvolve)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out, data, 1e-12)
}

func TestCircularMatchesLinearConvolution(t *testing.T) {
	for _, tc := range []struct {
		length, m int
	}{
		{length: 10, m: 3},
		{length: 50, m: 7},
		{length: 200, m: 31},
		{length: 100, m: 27},
	} {
		signal := testutil.DeterministicNoise(int64(tc.length), 1, tc.length)
		n := fft.NextPowerOf2(tc.length + tc.m)
		half := (tc.m - 1) / 2

		resp := make([]float64, n)
		copy(resp, WrapAround(tc.m, lagKernel))

		out, err := Circular(padded(signal, n), resp, tc.m, ModeConvolve)
		if err != nil {
			t.Fatalf("len=%d m=%d: %v", tc.length, tc.m, err)
		}

		linear := make([]float64, tc.m)
		for j := range linear {
			linear[j] = lagKernel(j - half)
		}
		full := linearConvolve(signal, linear)

		testutil.RequireSliceNearlyEqual(t, out[:tc.length], full[half:half+tc.length], 1e-10)
	}
}

func TestCircularLinearity(t *testing.T) {
	const n, m = 256, 15
	a := padded(testutil.DeterministicNoise(1, 1, 200), n)
	b := padded(testutil.DeterministicSine(3, 200, 0.5, 200), n)
	sum := make([]float64, n)
	for i := range sum {
		sum[i] = a[i] + b[i]
	}

	resp := make([]float64, n)
	copy(resp, WrapAround(m, lagKernel))

	ca, err := Circular(a, resp, m, ModeConvolve)
	if err != nil {
		t.Fatal(err)
	}
	cb, err := Circular(b, resp, m, ModeConvolve)
	if err != nil {
		t.Fatal(err)
	}
	cs, err := Circular(sum, resp, m, ModeConvolve)
	if err != nil {
		t.Fatal(err)
	}

	want := make([]float64, n)
	for i := range want {
		want[i] = ca[i] + cb[i]
	}
	testutil.RequireSliceNearlyEqual(t, cs, want, 1e-10)
}

func TestCircularDeconvolveInvertsConvolve(t *testing.T) {
	const n = 128
	data := testutil.DeterministicNoise(9, 1, n)
	resp := make([]float64, n)
	copy(resp, WrapAround(3, func(k int) float64 {
		if k == 0 {
			return 1
		}
		return 0.2
	}))

	blurred, err := Circular(data, resp, 3, ModeConvolve)
	if err != nil {
		t.Fatal(err)
	}
	recovered, err := Circular(blurred, resp, 3, ModeDeconvolve)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, recovered, data, 1e-10)
}

func TestCircularDeconvolveSingular(t *testing.T) {
	const n = 32
	data := testutil.DeterministicNoise(2, 1, n)

	// Zero DC gain: the response spectrum vanishes at bin 0.
	resp := make([]float64, n)
	copy(resp, WrapAround(3, func(k int) float64 {
		if k == 0 {
			return 1
		}
		return -0.5
	}))

	_, err := Circular(data, resp, 3, ModeDeconvolve)
	if !errors.Is(err, ErrSingular) {
		t.Fatalf("expected ErrSingular, got %v", err)
	}

	// Convolution with the same response is well defined.
	if _, err := Circular(data, resp, 3, ModeConvolve); err != nil {
		t.Fatalf("convolve: unexpected error: %v", err)
	}
}

func TestCircularDoesNotModifyInputs(t *testing.T) {
	const n, m = 64, 9
	data := padded(testutil.DeterministicNoise(4, 1, 40), n)
	resp := make([]float64, n)
	copy(resp, WrapAround(m, lagKernel))
	resp[n/2] = 123 // junk past the kernel must be ignored

	dataCopy := append([]float64(nil), data...)
	respCopy := append([]float64(nil), resp...)

	out, err := Circular(data, resp, m, ModeConvolve)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, data, dataCopy, 0)
	testutil.RequireSliceNearlyEqual(t, resp, respCopy, 0)

	clean := make([]float64, n)
	copy(clean, WrapAround(m, lagKernel))
	want, err := Circular(data, clean, m, ModeConvolve)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, want, 0)
}

func TestCircularErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		resp    []float64
		m       int
		mode    Mode
		wantErr error
	}{
		{"empty", nil, nil, 1, ModeConvolve, ErrEmptyInput},
		{"not power of two", make([]float64, 12), make([]float64, 12), 3, ModeConvolve, ErrInvalidLength},
		{"mismatch", make([]float64, 16), make([]float64, 8), 3, ModeConvolve, ErrLengthMismatch},
		{"even kernel", make([]float64, 16), make([]float64, 16), 4, ModeConvolve, ErrEvenKernel},
		{"zero kernel", make([]float64, 16), make([]float64, 16), 0, ModeConvolve, ErrEmptyKernel},
		{"kernel too long", make([]float64, 16), make([]float64, 16), 17, ModeConvolve, ErrKernelTooLong},
		{"bad mode", make([]float64, 16), make([]float64, 16), 3, Mode(7), ErrInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Circular(tt.data, tt.resp, tt.m, tt.mode)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if ModeConvolve.String() != "convolve" || ModeDeconvolve.String() != "deconvolve" || Mode(9).String() != "unknown" {
		t.Error("unexpected Mode strings")
	}
}
