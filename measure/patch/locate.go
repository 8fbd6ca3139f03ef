package patch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-patchscope/dsp/core"
	"github.com/cwbudde/algo-patchscope/dsp/signal"
)

// Undefined marks a calibration point whose ratio is not meaningful because
// the reference sample is (near) zero. Such points are skipped.
var Undefined = math.NaN()

// CalibrationPoint is a sample index with the degraded/reference amplitude
// ratio expected there.
type CalibrationPoint struct {
	Index int
	Ratio float64
}

// Informative reports whether the point carries a ratio to check.
func (p CalibrationPoint) Informative() bool { return !math.IsNaN(p.Ratio) }

// Locator verifies calibration points against a signal pair.
type Locator struct {
	cfg Config
}

// NewLocator creates a Locator.
func NewLocator(opts ...Option) *Locator {
	return &Locator{cfg: ApplyOptions(opts...)}
}

// Config returns the locator configuration.
func (l *Locator) Config() Config { return l.cfg }

// Locate runs [Locator.Locate] with the given options.
func Locate(ref, deg signal.Signal, points []CalibrationPoint, opts ...Option) (Window, error) {
	return NewLocator(opts...).Locate(ref, deg, points)
}

// Locate checks every calibration point and returns the window spanned by
// the outermost verified indices.
//
// A point is skipped when its expected ratio is [Undefined] or when the
// reference sample magnitude is at most Epsilon. Every other point must
// satisfy |observed-expected| <= Tolerance*|expected|; the first point that
// does not, in caller order, aborts with a [*CalibrationMismatchError].
// Indices must lie inside both signals.
func (l *Locator) Locate(ref, deg signal.Signal, points []CalibrationPoint) (Window, error) {
	if ref.SampleRate != deg.SampleRate {
		return Window{}, fmt.Errorf("%w: reference %d Hz, degraded %d Hz", ErrSampleRateMismatch, ref.SampleRate, deg.SampleRate)
	}
	if ref.Channels > 1 || deg.Channels > 1 {
		return Window{}, fmt.Errorf("%w: reference %d channels, degraded %d channels", ErrNotMono, ref.Channels, deg.Channels)
	}

	n := min(ref.Len(), deg.Len())
	lo, hi := math.MaxInt, math.MinInt
	used := 0

	for _, p := range points {
		if p.Index < 0 || p.Index >= n {
			return Window{}, fmt.Errorf("%w: calibration index %d not in [0, %d)", ErrOutOfRange, p.Index, n)
		}

		r := ref.Samples[p.Index]
		if !p.Informative() || math.Abs(r) <= l.cfg.Epsilon {
			continue
		}

		observed := deg.Samples[p.Index] / r
		if !l.matches(observed, p.Ratio) {
			return Window{}, &CalibrationMismatchError{
				Index:     p.Index,
				Observed:  observed,
				Expected:  p.Ratio,
				Tolerance: l.cfg.Tolerance,
			}
		}

		used++
		lo = min(lo, p.Index)
		hi = max(hi, p.Index)
	}

	if used == 0 {
		return Window{}, fmt.Errorf("%w: %d points, none with a usable reference amplitude", ErrInsufficientCalibrationData, len(points))
	}

	w := Window{Start: lo, End: hi}
	if w.End <= w.Start {
		return Window{}, fmt.Errorf("%w: %d verified point(s) at index %d", ErrEmptyWindow, used, lo)
	}
	return w, nil
}

func (l *Locator) matches(observed, expected float64) bool {
	if !core.IsFinite(observed) || !core.IsFinite(expected) {
		return false
	}
	return core.RelativeDiff(observed, expected) <= l.cfg.Tolerance
}

// Ratios returns deg[i]/ref[i] for every index of w. Entries where the
// reference magnitude is at most eps are NaN.
func Ratios(ref, deg signal.Signal, w Window, eps float64) ([]float64, error) {
	if err := w.Validate(min(ref.Len(), deg.Len())); err != nil {
		return nil, err
	}
	if ref.Channels > 1 || deg.Channels > 1 {
		return nil, fmt.Errorf("%w: reference %d channels, degraded %d channels", ErrNotMono, ref.Channels, deg.Channels)
	}

	out := make([]float64, w.Len())
	for i := range out {
		r := ref.Samples[w.Start+i]
		if math.Abs(r) <= eps {
			out[i] = math.NaN()
			continue
		}
		out[i] = deg.Samples[w.Start+i] / r
	}
	return out, nil
}
