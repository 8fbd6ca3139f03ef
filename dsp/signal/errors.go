package signal

import "errors"

var (
	// ErrInvalidSampleRate is returned when a signal is built with a
	// non-positive sample rate.
	ErrInvalidSampleRate = errors.New("signal: sample rate must be > 0")
	// ErrInvalidChannels is returned for a non-positive channel count or a
	// sample count that is not a multiple of it.
	ErrInvalidChannels = errors.New("signal: invalid channel layout")
	// ErrNonFinite is returned when a sample is NaN or ±Inf.
	ErrNonFinite = errors.New("signal: non-finite sample")
)
