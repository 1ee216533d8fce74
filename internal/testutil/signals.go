package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave with the given number
// of cycles per period samples.
func DeterministicSine(cycles, period, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * cycles / period
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Grid returns n evenly spaced wavelengths start, start+step, ...
// Each value is computed from its index so that spacing errors do not
// accumulate.
func Grid(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// AbsorptionLines returns a normalized flux with Gaussian absorption lines of
// the given depth and width (sigma, same units as wave) at each center.
func AbsorptionLines(wave []float64, depth, sigma float64, centers ...float64) []float64 {
	out := DC(1, len(wave))
	for i, w := range wave {
		for _, c := range centers {
			d := (w - c) / sigma
			out[i] *= 1 - depth*math.Exp(-0.5*d*d)
		}
	}
	return out
}
