package time

import (
	"math"

	"github.com/cwbudde/algo-patchscope/dsp/core"
)

// SPLReference is the reference pressure (20 µPa) used by [SPL].
const SPLReference = 0.00002

// Stats holds time-domain statistics of a sample block.
//
//nolint:revive
type Stats struct {
	Length         int
	Sum            float64
	Mean           float64 // DC offset
	Mean_dB        float64
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	PeakPos        int
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Energy         float64 // sum of squares
	SPL_dB         float64
	ZeroCrossings  int
	Variance       float64
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	return core.LinearToDB(math.Abs(value))
}

// emptyStats returns a zero-valued Stats with -Inf for all dB fields.
func emptyStats() Stats {
	return Stats{
		Mean_dB:        math.Inf(-1),
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
		SPL_dB:         math.Inf(-1),
	}
}

// Calculate computes all time-domain statistics in a single pass.
//
// The sum is Kahan-compensated and the variance is accumulated with
// Welford's update so long, mostly-silent recordings keep full precision.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	var (
		sum, comp     float64
		mean, m2      float64
		sumSq         float64
		peak          float64
		peakPos       int
		zeroCrossings int
	)

	for i, x := range signal {
		y := x - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t

		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x

		if a := math.Abs(x); a > peak {
			peak = a
			peakPos = i
		}

		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	var crest, crestdB float64
	if rms > 0 {
		crest = peak / rms
		crestdB = core.LinearToDB(crest)
	}

	return Stats{
		Length:         n,
		Sum:            sum,
		Mean:           sum / nf,
		Mean_dB:        ampTodB(sum / nf),
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           peak,
		PeakPos:        peakPos,
		Peak_dB:        ampTodB(peak),
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		Energy:         sumSq,
		SPL_dB:         splFromEnergy(sumSq),
		ZeroCrossings:  zeroCrossings,
		Variance:       m2 / nf,
	}
}

// Sum returns the compensated sum of the signal.
func Sum(signal []float64) float64 {
	return core.KahanSum(signal)
}

// Mean returns the arithmetic mean (DC offset) of the signal, 0 when empty.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return core.KahanSum(signal) / float64(len(signal))
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	peak := 0.0
	for _, x := range signal {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}
	return peak
}

// SPL returns the sound pressure level of the whole block in dB,
// 20*log10(sqrt(energy) / SPLReference). An all-zero block yields -Inf.
func SPL(signal []float64) float64 {
	var energy float64
	for _, x := range signal {
		energy += x * x
	}
	return splFromEnergy(energy)
}

func splFromEnergy(energy float64) float64 {
	return core.LinearToDB(math.Sqrt(energy) / SPLReference)
}

// MatchSPLGain returns the linear gain that brings degraded to the sound
// pressure level of reference. It returns 1 when either block is silent.
func MatchSPLGain(reference, degraded []float64) float64 {
	refSPL := SPL(reference)
	degSPL := SPL(degraded)
	if math.IsInf(refSPL, 0) || math.IsInf(degSPL, 0) {
		return 1
	}
	return core.DBToLinear(refSPL - degSPL)
}
