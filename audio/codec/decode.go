package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"

	"github.com/cwbudde/algo-patchscope/dsp/signal"
)

// Decode reads the audio file at path. The format is taken from the
// extension.
func Decode(path string) (signal.Signal, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return signal.Signal{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	sig, err := DecodeReader(f, format)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%s: %w", path, err)
	}
	return sig, nil
}

// LoadMono decodes path and averages its channels.
func LoadMono(path string) (signal.Signal, error) {
	sig, err := Decode(path)
	if err != nil {
		return signal.Signal{}, err
	}
	return signal.Mono(sig), nil
}

// DecodeReader decodes a stream of the given format. WAV input that is not
// an io.ReadSeeker is buffered in memory first.
func DecodeReader(r io.Reader, format Format) (signal.Signal, error) {
	var (
		samples  []float64
		rate, ch int
		err      error
	)

	switch format {
	case FormatWAV:
		samples, rate, ch, err = decodeWAV(r)
	case FormatFLAC:
		samples, rate, ch, err = decodeFLAC(r)
	case FormatOgg:
		samples, rate, ch, err = decodeOgg(r)
	case FormatMP3:
		samples, rate, ch, err = decodeMP3(r)
	default:
		return signal.Signal{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%w: %s: %w", ErrDecode, format, err)
	}

	sig, err := signal.New(samples, rate, ch)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%w: %s: %w", ErrDecode, format, err)
	}
	return sig, nil
}

func decodeWAV(r io.Reader) ([]float64, int, int, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, 0, 0, err
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, 0, 0, errors.New("invalid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	if buf.Format == nil {
		return nil, 0, 0, errors.New("WAV file without format chunk")
	}

	bits := buf.SourceBitDepth
	if bits <= 0 {
		bits = int(dec.BitDepth)
	}

	out := make([]float64, len(buf.Data))
	scale := intScale(bits)
	for i, v := range buf.Data {
		// 8-bit WAV is unsigned.
		if bits == 8 {
			v -= 128
		}
		out[i] = float64(v) / scale
	}
	return out, buf.Format.SampleRate, buf.Format.NumChannels, nil
}

func decodeFLAC(r io.Reader) ([]float64, int, int, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, 0, 0, err
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	scale := intScale(int(info.BitsPerSample))

	out := make([]float64, 0, int(info.NSamples)*channels)
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, 0, fmt.Errorf("parsing FLAC frame: %w", err)
		}

		n := int(frame.Subframes[0].NSamples)
		for i := 0; i < n; i++ {
			for c := 0; c < channels; c++ {
				out = append(out, float64(frame.Subframes[c].Samples[i])/scale)
			}
		}
	}
	return out, int(info.SampleRate), channels, nil
}

func decodeOgg(r io.Reader) ([]float64, int, int, error) {
	reader, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, 0, 0, err
	}

	channels := reader.Channels()
	buf := make([]float32, 4096*max(channels, 1))
	var out []float64
	for {
		n, err := reader.Read(buf)
		for _, s := range buf[:n] {
			out = append(out, float64(s))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, 0, err
		}
	}
	return out, reader.SampleRate(), channels, nil
}

// go-mp3 always yields 16-bit little-endian stereo.
const mp3Channels = 2

func decodeMP3(r io.Reader) ([]float64, int, int, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, 0, err
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, 0, err
	}
	if len(raw) == 0 {
		return nil, 0, 0, errors.New("no MP3 frames")
	}

	n := len(raw) / 2
	n -= n % mp3Channels
	out := make([]float64, n)
	scale := intScale(16)
	for i := range out {
		out[i] = float64(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / scale
	}
	return out, dec.SampleRate(), mp3Channels, nil
}

// intScale returns 2^(bits-1), the magnitude of the most negative value of
// a signed integer sample.
func intScale(bits int) float64 {
	if bits <= 0 {
		bits = 16
	}
	return float64(uint64(1) << uint(bits-1))
}
