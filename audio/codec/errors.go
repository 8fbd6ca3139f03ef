package codec

import "errors"

var (
	// ErrUnsupportedFormat is returned for unknown file extensions or formats.
	ErrUnsupportedFormat = errors.New("codec: unsupported format")
	// ErrDecode wraps every failure to parse an input stream.
	ErrDecode = errors.New("codec: decode failed")
	// ErrBitDepth is returned for output bit depths other than 16, 24 or 32.
	ErrBitDepth = errors.New("codec: unsupported bit depth")
)
