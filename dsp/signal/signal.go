package signal

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-patchscope/dsp/core"
)

// Signal is an immutable block of audio samples.
//
// Multi-channel samples are interleaved frame by frame. Every operation in
// this module returns new storage, so a Signal can be shared freely once it
// has been built.
type Signal struct {
	Samples    []float64
	SampleRate int
	Channels   int
}

// New copies samples into a validated Signal.
func New(samples []float64, sampleRate, channels int) (Signal, error) {
	if sampleRate <= 0 {
		return Signal{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if channels <= 0 || len(samples)%channels != 0 {
		return Signal{}, fmt.Errorf("%w: %d samples over %d channels", ErrInvalidChannels, len(samples), channels)
	}
	if i := core.FirstNonFinite(samples); i >= 0 {
		return Signal{}, fmt.Errorf("%w at index %d: %v", ErrNonFinite, i, samples[i])
	}

	out := make([]float64, len(samples))
	copy(out, samples)
	return Signal{Samples: out, SampleRate: sampleRate, Channels: channels}, nil
}

// NewMono is shorthand for New(samples, sampleRate, 1).
func NewMono(samples []float64, sampleRate int) (Signal, error) {
	return New(samples, sampleRate, 1)
}

// Len returns the number of frames (samples per channel).
func (s Signal) Len() int {
	if s.Channels <= 1 {
		return len(s.Samples)
	}
	return len(s.Samples) / s.Channels
}

// Empty reports whether the signal holds no frames.
func (s Signal) Empty() bool { return s.Len() == 0 }

// Duration returns the playback length of the signal.
func (s Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(s.Len()) / float64(s.SampleRate) * float64(time.Second))
}

// At returns sample i of a mono signal.
func (s Signal) At(i int) float64 { return s.Samples[i] }

// Clone returns a deep copy of s.
func (s Signal) Clone() Signal {
	out := make([]float64, len(s.Samples))
	copy(out, s.Samples)
	return Signal{Samples: out, SampleRate: s.SampleRate, Channels: s.Channels}
}

// Validate checks the invariants New enforces. It is useful for signals that
// were assembled as struct literals.
func (s Signal) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, s.SampleRate)
	}
	if s.Channels <= 0 || len(s.Samples)%s.Channels != 0 {
		return fmt.Errorf("%w: %d samples over %d channels", ErrInvalidChannels, len(s.Samples), s.Channels)
	}
	if i := core.FirstNonFinite(s.Samples); i >= 0 {
		return fmt.Errorf("%w at index %d: %v", ErrNonFinite, i, s.Samples[i])
	}
	return nil
}

// Mono averages the interleaved channels of s into a single channel.
// A mono input is copied unchanged.
func Mono(s Signal) Signal {
	if s.Channels <= 1 {
		out := s.Clone()
		out.Channels = 1
		return out
	}

	frames := s.Len()
	out := make([]float64, frames)
	inv := 1 / float64(s.Channels)
	for f := range frames {
		base := f * s.Channels
		sum := 0.0
		for ch := range s.Channels {
			sum += s.Samples[base+ch]
		}
		out[f] = sum * inv
	}
	return Signal{Samples: out, SampleRate: s.SampleRate, Channels: 1}
}
