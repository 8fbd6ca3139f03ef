package codec

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-patchscope/dsp/core"
	"github.com/cwbudde/algo-patchscope/dsp/signal"
)

// BitDepth is the sample width of encoded WAV output.
type BitDepth int

const (
	// Depth16 writes 16-bit signed PCM.
	Depth16 BitDepth = 16
	// Depth24 writes 24-bit signed PCM.
	Depth24 BitDepth = 24
	// Depth32 writes 32-bit signed integer PCM.
	Depth32 BitDepth = 32

	// DefaultBitDepth is used when no depth is configured.
	DefaultBitDepth = Depth16
)

// Valid reports whether d is a supported output depth.
func (d BitDepth) Valid() bool {
	return d == Depth16 || d == Depth24 || d == Depth32
}

// wavPCM is the WAVE_FORMAT_PCM audio format tag.
const wavPCM = 1

// Encode writes sig to path as PCM WAV. The file is created or truncated.
func Encode(path string, sig signal.Signal, depth BitDepth) (err error) {
	if !depth.Valid() {
		return fmt.Errorf("%w: %d", ErrBitDepth, depth)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("codec: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("codec: close %s: %w", path, cerr)
		}
	}()

	return EncodeWriter(f, sig, depth)
}

// EncodeWriter writes sig as PCM WAV to ws. The header is finalised by
// seeking back, so ws must support seeking.
func EncodeWriter(ws io.WriteSeeker, sig signal.Signal, depth BitDepth) error {
	if !depth.Valid() {
		return fmt.Errorf("%w: %d", ErrBitDepth, depth)
	}
	if err := sig.Validate(); err != nil {
		return fmt.Errorf("codec: encode: %w", err)
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: sig.Channels,
			SampleRate:  sig.SampleRate,
		},
		Data:           quantize(sig.Samples, int(depth)),
		SourceBitDepth: int(depth),
	}

	enc := wav.NewEncoder(ws, sig.SampleRate, int(depth), sig.Channels, wavPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("codec: writing WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("codec: finalising WAV header: %w", err)
	}
	return nil
}

// quantize clips samples to [-1, 1] and maps them onto signed integers of
// the given width.
func quantize(samples []float64, bits int) []int {
	scale := intScale(bits)

	out := make([]int, len(samples))
	for i, s := range samples {
		out[i] = int(core.Clamp(math.Round(s*scale), -scale, scale-1))
	}
	return out
}
