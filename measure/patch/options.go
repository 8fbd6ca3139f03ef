package patch

import "math"

const (
	// DefaultTolerance is the relative tolerance applied to ratio checks.
	DefaultTolerance = 1e-4
	// DefaultEpsilon is the reference amplitude at or below which a ratio is
	// considered undefined.
	DefaultEpsilon = 1e-12
)

// Config holds locator settings.
type Config struct {
	Tolerance float64
	Epsilon   float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default locator settings.
func DefaultConfig() Config {
	return Config{
		Tolerance: DefaultTolerance,
		Epsilon:   DefaultEpsilon,
	}
}

// WithTolerance sets the relative ratio tolerance. Non-positive or
// non-finite values are ignored.
func WithTolerance(tol float64) Option {
	return func(cfg *Config) {
		if tol > 0 && !math.IsInf(tol, 0) {
			cfg.Tolerance = tol
		}
	}
}

// WithEpsilon sets the near-zero threshold for reference amplitudes.
// Negative or non-finite values are ignored; zero skips only exact zeros.
func WithEpsilon(eps float64) Option {
	return func(cfg *Config) {
		if eps >= 0 && !math.IsInf(eps, 0) {
			cfg.Epsilon = eps
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
	return cfg
}
