package codec

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an audio container.
type Format int

const (
	// FormatUnknown is the zero value; it never decodes.
	FormatUnknown Format = iota
	// FormatWAV is RIFF WAVE integer PCM, decoded with go-audio/wav.
	FormatWAV
	// FormatFLAC is native FLAC, decoded with mewkiz/flac.
	FormatFLAC
	// FormatOgg is Vorbis in an Ogg container, decoded with jfreymuth/oggvorbis.
	FormatOgg
	// FormatMP3 is MPEG-1/2 Layer III, decoded with hajimehoshi/go-mp3.
	FormatMP3
)

func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatFLAC:
		return "flac"
	case FormatOgg:
		return "ogg"
	case FormatMP3:
		return "mp3"
	default:
		return "unknown"
	}
}

// FormatFromPath detects the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".wave":
		return FormatWAV, nil
	case ".flac":
		return FormatFLAC, nil
	case ".ogg", ".oga":
		return FormatOgg, nil
	case ".mp3":
		return FormatMP3, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
