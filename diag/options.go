package diag

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-patchscope/audio/codec"
	"github.com/cwbudde/algo-patchscope/dsp/spectrum"
	"github.com/cwbudde/algo-patchscope/dsp/window"
	"github.com/cwbudde/algo-patchscope/measure/patch"
)

const (
	// DefaultTransformLength is the spectrum length used for inspection.
	DefaultTransformLength = 262144
	// DefaultHeadBins is how many leading bins are logged after analysis.
	DefaultHeadBins = 6
)

// Config holds pipeline settings.
type Config struct {
	TransformLength int
	HeadBins        int
	BitDepth        codec.BitDepth
	Logger          *logrus.Logger
	Analyzer        *spectrum.Analyzer
	Window          window.Type
	Patch           []patch.Option
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default pipeline settings. The default logger
// discards its output.
func DefaultConfig() Config {
	return Config{
		TransformLength: DefaultTransformLength,
		HeadBins:        DefaultHeadBins,
		BitDepth:        codec.DefaultBitDepth,
		Logger:          discardLogger(),
	}
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// WithTransformLength sets the spectrum transform length. Non-positive
// values are ignored.
func WithTransformLength(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.TransformLength = n
		}
	}
}

// WithHeadBins sets how many leading bins are logged. Negative values are
// ignored.
func WithHeadBins(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.HeadBins = n
		}
	}
}

// WithTolerance sets the relative calibration tolerance.
func WithTolerance(tol float64) Option {
	return func(cfg *Config) {
		cfg.Patch = append(cfg.Patch, patch.WithTolerance(tol))
	}
}

// WithEpsilon sets the near-zero reference threshold.
func WithEpsilon(eps float64) Option {
	return func(cfg *Config) {
		cfg.Patch = append(cfg.Patch, patch.WithEpsilon(eps))
	}
}

// WithBitDepth sets the WAV output depth. Unsupported depths are ignored.
func WithBitDepth(d codec.BitDepth) Option {
	return func(cfg *Config) {
		if d.Valid() {
			cfg.BitDepth = d
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *logrus.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithWindow sets the analysis taper. It has no effect together with
// [WithAnalyzer].
func WithWindow(t window.Type) Option {
	return func(cfg *Config) {
		if t.Valid() {
			cfg.Window = t
		}
	}
}

// WithWindowName sets the analysis taper by name, as accepted by
// [window.ParseType]. Unknown names are ignored.
func WithWindowName(name string) Option {
	return func(cfg *Config) {
		if t, err := window.ParseType(name); err == nil {
			cfg.Window = t
		}
	}
}

// WithAnalyzer shares an existing analyzer and its plan cache.
func WithAnalyzer(a *spectrum.Analyzer) Option {
	return func(cfg *Config) {
		if a != nil {
			cfg.Analyzer = a
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Analyzer == nil {
		cfg.Analyzer = spectrum.NewAnalyzer(spectrum.WithWindow(cfg.Window))
	}
	return cfg
}
