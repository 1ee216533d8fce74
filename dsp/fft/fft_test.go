package fft

import (
	"errors"
	"math"
	"testing"

	algofft "github.com/cwbudde/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-stellar/internal/testutil"
)

var testSizes = []int{1, 2, 4, 8, 16, 64, 256, 1024}

func interleave(re, im []float64) []float64 {
	out := make([]float64, 2*len(re))
	for i := range re {
		out[2*i] = re[i]
		if im != nil {
			out[2*i+1] = im[i]
		}
	}
	return out
}

func fromComplex(c []complex128) []float64 {
	out := make([]float64, 2*len(c))
	for i, v := range c {
		out[2*i] = real(v)
		out[2*i+1] = imag(v)
	}
	return out
}

func toComplex(d []float64) []complex128 {
	out := make([]complex128, len(d)/2)
	for i := range out {
		out[i] = complex(d[2*i], d[2*i+1])
	}
	return out
}

func TestComplexRoundTrip(t *testing.T) {
	for _, n := range testSizes {
		re := testutil.DeterministicNoise(int64(n), 1, n)
		im := testutil.DeterministicNoise(int64(n)+1, 1, n)
		x := interleave(re, im)

		data := append([]float64(nil), x...)
		if err := Complex(data, Forward); err != nil {
			t.Fatalf("n=%d forward: %v", n, err)
		}
		if err := Complex(data, Inverse); err != nil {
			t.Fatalf("n=%d inverse: %v", n, err)
		}

		want := make([]float64, len(x))
		for i, v := range x {
			want[i] = float64(n) * v
		}
		testutil.RequireSliceNearlyEqual(t, data, want, 1e-9*float64(n))
	}
}

func TestComplexMatchesReference(t *testing.T) {
	for _, n := range testSizes[1:] {
		re := testutil.DeterministicNoise(42, 1, n)
		im := testutil.DeterministicNoise(43, 1, n)
		x := interleave(re, im)

		plan, err := algofft.NewPlan64(n)
		if err != nil {
			t.Fatalf("n=%d: reference plan: %v", n, err)
		}

		// Inverse here carries the exp(-i...) kernel of a conventional forward FFT.
		data := append([]float64(nil), x...)
		if err := Complex(data, Inverse); err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		ref := make([]complex128, n)
		if err := plan.Forward(ref, toComplex(x)); err != nil {
			t.Fatalf("n=%d: reference forward: %v", n, err)
		}
		testutil.RequireSliceNearlyEqual(t, data, fromComplex(ref), 1e-9*float64(n))

		data = append(data[:0], x...)
		if err := Complex(data, Forward); err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if err := plan.Inverse(ref, toComplex(x)); err != nil {
			t.Fatalf("n=%d: reference inverse: %v", n, err)
		}
		scaled := fromComplex(ref)
		for i := range scaled {
			scaled[i] *= float64(n)
		}
		testutil.RequireSliceNearlyEqual(t, data, scaled, 1e-9*float64(n))
	}
}

func TestComplexImpulse(t *testing.T) {
	const n = 16
	data := make([]float64, 2*n)
	data[0] = 1

	if err := Complex(data, Forward); err != nil {
		t.Fatal(err)
	}
	for k := 0; k < n; k++ {
		if math.Abs(data[2*k]-1) > 1e-15 || math.Abs(data[2*k+1]) > 1e-15 {
			t.Fatalf("bin %d = (%v, %v), want (1, 0)", k, data[2*k], data[2*k+1])
		}
	}
}

func TestRealMatchesGonum(t *testing.T) {
	for _, n := range []int{2, 4, 8, 32, 512} {
		x := testutil.DeterministicNoise(7, 1, n)
		data := append([]float64(nil), x...)
		if err := Real(data, Forward); err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		coeffs := fourier.NewFFT(n).Coefficients(nil, x)

		// The forward kernel is exp(+i...), the conjugate of gonum's.
		want := make([]float64, n)
		want[0] = real(coeffs[0])
		want[1] = real(coeffs[n/2])
		for k := 1; k < n/2; k++ {
			want[2*k] = real(coeffs[k])
			want[2*k+1] = -imag(coeffs[k])
		}
		testutil.RequireSliceNearlyEqual(t, data, want, 1e-10*float64(n))
	}
}

func TestRealRoundTrip(t *testing.T) {
	for _, n := range []int{2, 4, 16, 128, 2048} {
		x := testutil.DeterministicNoise(int64(3*n), 2, n)
		data := append([]float64(nil), x...)
		if err := Real(data, Forward); err != nil {
			t.Fatal(err)
		}
		if err := Real(data, Inverse); err != nil {
			t.Fatal(err)
		}
		for i := range data {
			data[i] *= 2 / float64(n)
		}
		testutil.RequireSliceNearlyEqual(t, data, x, 1e-12*float64(n))
	}
}

func TestTwoRealMatchesSeparateTransforms(t *testing.T) {
	for _, n := range []int{1, 2, 8, 64, 256} {
		a := testutil.DeterministicNoise(11, 1, n)
		b := testutil.DeterministicNoise(12, 1, n)

		fa, fb, err := TwoReal(a, b)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		wantA := interleave(a, nil)
		wantB := interleave(b, nil)
		if err := Complex(wantA, Forward); err != nil {
			t.Fatal(err)
		}
		if err := Complex(wantB, Forward); err != nil {
			t.Fatal(err)
		}

		testutil.RequireSliceNearlyEqual(t, fa, wantA, 1e-10*float64(n))
		testutil.RequireSliceNearlyEqual(t, fb, wantB, 1e-10*float64(n))
	}
}

func TestTwoRealDoesNotModifyInputs(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{4, 3, 2, 1}
	if _, _, err := TwoReal(a, b); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, a, []float64{1, 2, 3, 4}, 0)
	testutil.RequireSliceNearlyEqual(t, b, []float64{4, 3, 2, 1}, 0)
}

func TestInvalidArguments(t *testing.T) {
	if err := Complex(make([]float64, 12), Forward); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Complex(6 points): expected ErrInvalidLength, got %v", err)
	}
	if err := Complex(make([]float64, 7), Forward); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Complex(odd buffer): expected ErrInvalidLength, got %v", err)
	}
	if err := Complex(nil, Forward); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Complex(nil): expected ErrInvalidLength, got %v", err)
	}
	if err := Complex(make([]float64, 8), 0); !errors.Is(err, ErrInvalidSign) {
		t.Errorf("Complex(sign 0): expected ErrInvalidSign, got %v", err)
	}
	if err := Real(make([]float64, 1), Forward); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Real(1): expected ErrInvalidLength, got %v", err)
	}
	if err := Real(make([]float64, 24), Inverse); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Real(24): expected ErrInvalidLength, got %v", err)
	}
	if err := Real(make([]float64, 8), 2); !errors.Is(err, ErrInvalidSign) {
		t.Errorf("Real(sign 2): expected ErrInvalidSign, got %v", err)
	}
	if _, _, err := TwoReal(make([]float64, 4), make([]float64, 8)); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("TwoReal mismatch: expected ErrLengthMismatch, got %v", err)
	}
	if _, _, err := TwoReal(make([]float64, 6), make([]float64, 6)); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("TwoReal(6): expected ErrInvalidLength, got %v", err)
	}
}

func TestNextPowerOf2(t *testing.T) {
	cases := map[int]int{-3: 1, 0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 64: 64, 65: 128, 1000: 1024}
	for in, want := range cases {
		if got := NextPowerOf2(in); got != want {
			t.Errorf("NextPowerOf2(%d) = %d, want %d", in, got, want)
		}
	}
}
