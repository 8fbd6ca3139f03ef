package frequency

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-patchscope/dsp/core"
)

// Stats holds frequency-domain statistics computed from a one-sided
// magnitude spectrum.
//
//nolint:revive
type Stats struct {
	BinCount int
	BinHz    float64 // spacing between bins
	DC       float64 // bin 0 magnitude
	DC_dB    float64
	Max      float64
	MaxBin   int
	MaxHz    float64
	Energy   float64 // sum of squared magnitudes
	Centroid float64 // Hz
	Spread   float64 // Hz
	Flatness float64 // 0..1
	Rolloff  float64 // Hz, 85% energy
}

// RolloffFraction is the energy fraction used by [Calculate] for Rolloff.
const RolloffFraction = 0.85

// BinSpacing returns the frequency distance between adjacent bins of a
// transform of the given length. Odd lengths are handled exactly, unlike
// the 2*(bins-1) shortcut.
func BinSpacing(sampleRate float64, transformLength int) float64 {
	if transformLength <= 0 {
		return 0
	}
	return sampleRate / float64(transformLength)
}

// Calculate computes spectral statistics from a magnitude spectrum (linear
// scale, bins 0..transformLength/2).
func Calculate(magnitude []float64, sampleRate float64, transformLength int) Stats {
	n := len(magnitude)
	if n == 0 {
		return Stats{DC_dB: math.Inf(-1)}
	}

	s := Stats{
		BinCount: n,
		BinHz:    BinSpacing(sampleRate, transformLength),
		DC:       magnitude[0],
		DC_dB:    core.LinearToDB(magnitude[0]),
		Max:      magnitude[0],
	}

	sum := 0.0
	for i, v := range magnitude {
		sum += v
		s.Energy += v * v
		if v > s.Max {
			s.Max = v
			s.MaxBin = i
		}
	}
	s.MaxHz = float64(s.MaxBin) * s.BinHz

	s.Centroid = centroid(magnitude, s.BinHz, sum)
	s.Spread = spread(magnitude, s.BinHz, s.Centroid, sum)
	s.Flatness = Flatness(magnitude)
	s.Rolloff = rolloff(magnitude, s.BinHz, RolloffFraction, s.Energy)

	return s
}

// CalculateFromComplex converts a complex spectrum to magnitude (absolute value)
// and delegates to [Calculate].
func CalculateFromComplex(spectrum []complex128, sampleRate float64, transformLength int) Stats {
	mag := make([]float64, len(spectrum))
	for i, c := range spectrum {
		mag[i] = cmplx.Abs(c)
	}
	return Calculate(mag, sampleRate, transformLength)
}

func centroid(magnitude []float64, binHz, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weighted := 0.0
	for i, v := range magnitude {
		weighted += float64(i) * binHz * v
	}
	return weighted / sumMag
}

func spread(magnitude []float64, binHz, cent, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	acc := 0.0
	for i, v := range magnitude {
		d := float64(i)*binHz - cent
		acc += d * d * v
	}
	return math.Sqrt(acc / sumMag)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1,
// geometric over arithmetic mean of bins 1..N-1. The DC bin is excluded and
// any zero bin forces the result to 0.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	sumLin := 0.0
	sumLog := 0.0
	for _, v := range magnitude[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	bins := float64(n - 1)
	return math.Exp(sumLog/bins) / (sumLin / bins)
}

func rolloff(magnitude []float64, binHz, fraction, totalEnergy float64) float64 {
	if totalEnergy == 0 {
		return 0
	}
	threshold := fraction * totalEnergy
	cum := 0.0
	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return float64(i) * binHz
		}
	}
	return float64(len(magnitude)-1) * binHz
}
