package spectrum

import (
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// Spectrum holds the one-sided bins 0..L/2 of a length-L transform. Bin 0
// is the DC component.
type Spectrum []complex128

// Len returns the bin count.
func (s Spectrum) Len() int { return len(s) }

// At returns bin i.
func (s Spectrum) At(i int) complex128 { return s[i] }

// BinCount returns the number of one-sided bins of a real transform of
// length transformLength, i.e. transformLength/2 + 1.
func BinCount(transformLength int) int {
	if transformLength <= 0 {
		return 0
	}
	return transformLength/2 + 1
}

// parts is pooled storage for the split real/imaginary planes the
// algo-vecmath kernels expect.
type parts struct {
	data []float64
}

var partsPool = sync.Pool{
	New: func() any { return new(parts) },
}

// planar runs kernel over the real and imaginary planes of in and returns
// its output. Nil in, nil out.
func planar(in []complex128, kernel func(dst, re, im []float64)) []float64 {
	n := len(in)
	if n == 0 {
		return nil
	}

	p := partsPool.Get().(*parts)
	defer partsPool.Put(p)

	if cap(p.data) < 2*n {
		p.data = make([]float64, 2*n)
	}
	re, im := p.data[:n], p.data[n:2*n]
	for i, c := range in {
		re[i], im[i] = real(c), imag(c)
	}

	out := make([]float64, n)
	kernel(out, re, im)
	return out
}

// Magnitude returns |X[k]| for every bin.
func Magnitude(in []complex128) []float64 {
	return planar(in, vecmath.Magnitude)
}

// Power returns |X[k]|^2 for every bin.
func Power(in []complex128) []float64 {
	return planar(in, vecmath.Power)
}

// Phase returns arg(X[k]) in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}
