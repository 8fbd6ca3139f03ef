package testutil

import (
	"math"
	"math/cmplx"
	"testing"
)

// NaiveRealDFT returns bins 0..n/2 of the length-n DFT of x, evaluated by
// direct summation in double precision. x is zero-padded or truncated to n.
func NaiveRealDFT(x []float64, n int) []complex128 {
	out := make([]complex128, n/2+1)
	m := min(len(x), n)
	for k := range out {
		var acc complex128
		for i := range m {
			// Reduce the phase index modulo n to keep the argument small.
			idx := (k * i) % n
			angle := -2 * math.Pi * float64(idx) / float64(n)
			acc += complex(x[i], 0) * cmplx.Exp(complex(0, angle))
		}
		out[k] = acc
	}
	return out
}

// RequireSpectrumClose fails t unless got and want have equal length and
// every bin differs by at most rel times the largest reference magnitude.
func RequireSpectrumClose(t *testing.T, got, want []complex128, rel float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("bin count mismatch: got %d, want %d", len(got), len(want))
	}
	scale := 0.0
	for _, w := range want {
		scale = math.Max(scale, cmplx.Abs(w))
	}
	if scale == 0 {
		scale = 1
	}
	for k := range got {
		if d := cmplx.Abs(got[k] - want[k]); d > rel*scale {
			t.Fatalf("bin %d: got %v, want %v (diff %g > %g)", k, got[k], want[k], d, rel*scale)
		}
	}
}

// RequireSpectrumEqual fails t unless got and want are bit-identical.
func RequireSpectrumEqual(t *testing.T, got, want []complex128) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("bin count mismatch: got %d, want %d", len(got), len(want))
	}
	for k := range got {
		if got[k] != want[k] {
			t.Fatalf("bin %d: got %v, want %v", k, got[k], want[k])
		}
	}
}
