package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// RelativeDiff returns |got-want| / |want|. When want is zero the absolute
// difference is returned instead.
func RelativeDiff(got, want float64) float64 {
	diff := math.Abs(got - want)
	ref := math.Abs(want)
	if ref == 0 {
		return diff
	}
	return diff / ref
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FirstNonFinite returns the index of the first NaN or Inf in data, or -1.
func FirstNonFinite(data []float64) int {
	for i, v := range data {
		if !IsFinite(v) {
			return i
		}
	}
	return -1
}

// LinearToDB converts linear amplitude to dB (20*log10). Zero maps to -Inf.
func LinearToDB(linear float64) float64 {
	if linear == 0 {
		return math.Inf(-1)
	}
	if linear < 0 {
		return math.NaN()
	}
	return 20 * math.Log10(linear)
}

// DBToLinear converts dB to linear amplitude.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
