// Package spectrum computes fixed-length one-sided spectra of real audio
// signals for diagnostic inspection.
//
// [Analyze] zero-pads or truncates a signal to the requested transform
// length L and returns exactly L/2+1 complex bins together with the mean and
// sum of the untransformed samples. Power-of-two lengths run on algo-fft;
// every other length runs on gonum's mixed-radix real FFT, so any positive
// L is accepted.
//
// No taper is applied by default, so bin 0 equals the sample sum. An
// [Analyzer] built with [WithWindow] tapers the copied samples first.
//
// The package also carries small bin-level helpers (magnitude, power, phase)
// and a Goertzel evaluator that reads single DFT bins without a full
// transform.
package spectrum
