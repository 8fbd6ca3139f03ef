package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
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

// Sparse returns a zero signal of the given length with the listed samples
// set.
func Sparse(length int, values map[int]float64) []float64 {
	out := make([]float64, length)
	for i, v := range values {
		out[i] = v
	}
	return out
}

// ScaleRange returns a copy of x with samples in [start, end) multiplied by k.
func ScaleRange(x []float64, k float64, start, end int) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	for i := start; i < end; i++ {
		out[i] *= k
	}
	return out
}

// ZeroPad returns x extended with zeros to length n.
func ZeroPad(x []float64, n int) []float64 {
	out := make([]float64, max(n, len(x)))
	copy(out, x)
	return out
}
