package patch

import (
	"fmt"
	"time"
)

// Window is a half-open sample range [Start, End).
type Window struct {
	Start int
	End   int
}

// Len returns End - Start.
func (w Window) Len() int { return w.End - w.Start }

// Contains reports whether index i lies inside the window.
func (w Window) Contains(i int) bool { return i >= w.Start && i < w.End }

// Validate checks 0 <= Start < End <= n.
func (w Window) Validate(n int) error {
	if w.Start < 0 || w.End <= w.Start || w.End > n {
		return fmt.Errorf("%w: window %s over %d samples", ErrOutOfRange, w, n)
	}
	return nil
}

// Duration returns the playback length of the window at sampleRate.
func (w Window) Duration(sampleRate int) time.Duration {
	if sampleRate <= 0 || w.End <= w.Start {
		return 0
	}
	return time.Duration(float64(w.Len()) / float64(sampleRate) * float64(time.Second))
}

func (w Window) String() string {
	return fmt.Sprintf("[%d, %d)", w.Start, w.End)
}
