package spectrum

import "errors"

var (
	// ErrInvalidTransformLength is returned when a non-positive transform
	// length is requested.
	ErrInvalidTransformLength = errors.New("spectrum: transform length must be > 0")
	// ErrBackendUnsupported is returned when an explicitly selected backend
	// cannot handle the requested transform length.
	ErrBackendUnsupported = errors.New("spectrum: backend does not support transform length")
	// ErrBinOutOfRange is returned for a bin index outside 0..L/2.
	ErrBinOutOfRange = errors.New("spectrum: bin index out of range")
)
