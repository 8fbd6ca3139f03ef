package patch

import (
	"errors"
	"fmt"
)

var (
	// ErrCalibrationMismatch is matched by every [*CalibrationMismatchError].
	ErrCalibrationMismatch = errors.New("patch: calibration mismatch")
	// ErrInsufficientCalibrationData is returned when no calibration point
	// carries usable ratio information.
	ErrInsufficientCalibrationData = errors.New("patch: insufficient calibration data")
	// ErrOutOfRange is returned for windows or indices outside a signal.
	ErrOutOfRange = errors.New("patch: out of range")
	// ErrEmptyWindow is returned when the verified indices do not span at
	// least one sample.
	ErrEmptyWindow = errors.New("patch: verified points do not span a window")
	// ErrSampleRateMismatch is returned when reference and degraded signals
	// use different sample rates.
	ErrSampleRateMismatch = errors.New("patch: sample rate mismatch")
	// ErrNotMono is returned when Locate receives a multi-channel signal.
	ErrNotMono = errors.New("patch: signal must be mono")
)

// CalibrationMismatchError reports a calibration point whose observed
// degraded/reference ratio differs from the expected one by more than the
// relative tolerance.
type CalibrationMismatchError struct {
	Index     int
	Observed  float64
	Expected  float64
	Tolerance float64
}

func (e *CalibrationMismatchError) Error() string {
	return fmt.Sprintf("patch: calibration mismatch at index %d: observed ratio %g, expected %g (tolerance %g)",
		e.Index, e.Observed, e.Expected, e.Tolerance)
}

// Unwrap lets errors.Is match [ErrCalibrationMismatch].
func (e *CalibrationMismatchError) Unwrap() error { return ErrCalibrationMismatch }
