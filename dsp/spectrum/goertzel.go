package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"
)

// goertzel evaluates a single DFT term with the second-order recurrence
// s[n] = x[n] + 2cos(w)s[n-1] - s[n-2].
type goertzel struct {
	omega  float64
	coeff  float64
	s0, s1 float64
}

func newGoertzel(k, transformLength int) *goertzel {
	omega := 2 * math.Pi * float64(k) / float64(transformLength)
	return &goertzel{omega: omega, coeff: 2 * math.Cos(omega)}
}

func (g *goertzel) processBlock(input []float64) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff
	for _, x := range input {
		s0, s1 = x+coeff*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
}

// processZeros advances the state over n zero-valued samples.
func (g *goertzel) processZeros(n int) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff
	for range n {
		s0, s1 = coeff*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
}

// value returns X[k] = e^{jw}*s[N-1] - s[N-2]. It is phase-exact only when
// the processed block spans the whole transform length.
func (g *goertzel) value() complex128 {
	return cmplx.Exp(complex(0, g.omega))*complex(g.s0, 0) - complex(g.s1, 0)
}

// DFTBin returns bin k of the length-transformLength DFT of samples, with
// the same zero-padding and truncation rules as [Analyze].
func DFTBin(samples []float64, k, transformLength int) (complex128, error) {
	if transformLength <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTransformLength, transformLength)
	}
	if k < 0 || k >= BinCount(transformLength) {
		return 0, fmt.Errorf("%w: %d not in [0, %d]", ErrBinOutOfRange, k, transformLength/2)
	}

	g := newGoertzel(k, transformLength)
	n := min(len(samples), transformLength)
	g.processBlock(samples[:n])
	g.processZeros(transformLength - n)

	return g.value(), nil
}
