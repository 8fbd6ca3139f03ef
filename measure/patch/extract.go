package patch

import (
	"fmt"

	"github.com/cwbudde/algo-patchscope/dsp/signal"
)

// Extract copies the frames [w.Start, w.End) of sig into a new signal with
// the same sample rate and channel count.
func Extract(sig signal.Signal, w Window) (signal.Signal, error) {
	if err := w.Validate(sig.Len()); err != nil {
		return signal.Signal{}, err
	}

	ch := max(sig.Channels, 1)
	out := make([]float64, w.Len()*ch)
	copy(out, sig.Samples[w.Start*ch:w.End*ch])

	return signal.Signal{Samples: out, SampleRate: sig.SampleRate, Channels: ch}, nil
}

// ExtractPair extracts w from both signals. The window must fit the shorter
// of the two.
func ExtractPair(ref, deg signal.Signal, w Window) (refPatch, degPatch signal.Signal, err error) {
	if ref.SampleRate != deg.SampleRate {
		return signal.Signal{}, signal.Signal{}, fmt.Errorf("%w: reference %d Hz, degraded %d Hz", ErrSampleRateMismatch, ref.SampleRate, deg.SampleRate)
	}
	if err := w.Validate(min(ref.Len(), deg.Len())); err != nil {
		return signal.Signal{}, signal.Signal{}, err
	}

	refPatch, err = Extract(ref, w)
	if err != nil {
		return signal.Signal{}, signal.Signal{}, fmt.Errorf("reference: %w", err)
	}
	degPatch, err = Extract(deg, w)
	if err != nil {
		return signal.Signal{}, signal.Signal{}, fmt.Errorf("degraded: %w", err)
	}
	return refPatch, degPatch, nil
}
