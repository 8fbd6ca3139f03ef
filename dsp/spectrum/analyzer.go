package spectrum

import (
	"errors"
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-patchscope/dsp/core"
	"github.com/cwbudde/algo-patchscope/dsp/signal"
	"github.com/cwbudde/algo-patchscope/dsp/window"
	freqstats "github.com/cwbudde/algo-patchscope/stats/frequency"
	timestats "github.com/cwbudde/algo-patchscope/stats/time"
)

// Backend selects the FFT implementation used by an [Analyzer].
type Backend int

const (
	// BackendAuto uses algo-fft for power-of-two lengths and gonum otherwise.
	BackendAuto Backend = iota
	// BackendAlgoFFT forces algo-fft. Only power-of-two lengths are
	// accepted; others fail with ErrBackendUnsupported.
	BackendAlgoFFT
	// BackendGonum forces gonum's real FFT.
	BackendGonum
)

func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendAlgoFFT:
		return "algo-fft"
	case BackendGonum:
		return "gonum"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// Analysis is the result of one spectrum analysis call.
type Analysis struct {
	// Bins holds TransformLength/2+1 one-sided bins.
	Bins            Spectrum
	TransformLength int
	SampleRate      int
	// Mean and Sum describe the original, unpadded time-domain samples.
	Mean float64
	Sum  float64
	Time timestats.Stats
	// Backend is the implementation that produced Bins.
	Backend Backend
	// Window is the taper applied to the samples before the transform.
	Window window.Type
}

// Head returns a copy of the first n bins (fewer if the spectrum is shorter).
func (a Analysis) Head(n int) Spectrum {
	n = max(0, min(n, len(a.Bins)))
	out := make(Spectrum, n)
	copy(out, a.Bins[:n])
	return out
}

// Bin returns bin k.
func (a Analysis) Bin(k int) (complex128, error) {
	if k < 0 || k >= len(a.Bins) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrBinOutOfRange, k, len(a.Bins))
	}
	return a.Bins[k], nil
}

// BinFrequency returns the centre frequency of bin k in Hz.
func (a Analysis) BinFrequency(k int) float64 {
	return float64(k) * freqstats.BinSpacing(float64(a.SampleRate), a.TransformLength)
}

// Magnitude returns |X[k]| for every bin.
func (a Analysis) Magnitude() []float64 { return Magnitude(a.Bins) }

// Power returns |X[k]|^2 for every bin.
func (a Analysis) Power() []float64 { return Power(a.Bins) }

// Shape returns spectral shape statistics of the analysis.
func (a Analysis) Shape() freqstats.Stats {
	return freqstats.CalculateFromComplex(a.Bins, float64(a.SampleRate), a.TransformLength)
}

// AnalyzerOption configures an [Analyzer].
type AnalyzerOption func(*Analyzer)

// WithBackend selects the FFT backend.
func WithBackend(b Backend) AnalyzerOption {
	return func(a *Analyzer) {
		if b >= BackendAuto && b <= BackendGonum {
			a.backend = b
		}
	}
}

// WithWindow tapers the copied samples before the transform. The padding is
// left untouched. Unknown types are ignored.
func WithWindow(t window.Type) AnalyzerOption {
	return func(a *Analyzer) {
		if t.Valid() {
			a.window = t
		}
	}
}

// Analyzer computes fixed-length one-sided spectra. FFT plans are cached
// per transform length; an Analyzer is safe for concurrent use.
type Analyzer struct {
	backend Backend
	window  window.Type

	mu    sync.Mutex
	plans map[planKey]realTransform
}

type planKey struct {
	backend Backend
	length  int
}

// realTransform writes the len(dst) leading bins of the DFT of src.
type realTransform interface {
	forward(dst []complex128, src []float64) error
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		backend: BackendAuto,
		window:  window.TypeRectangular,
		plans:   make(map[planKey]realTransform),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

var defaultAnalyzer = NewAnalyzer()

// Analyze runs [Analyzer.Analyze] on a shared default analyzer.
func Analyze(sig signal.Signal, transformLength int) (Analysis, error) {
	return defaultAnalyzer.Analyze(sig, transformLength)
}

// Analyze transforms sig at transformLength.
//
// The signal is zero-padded at the end or truncated to transformLength
// before the transform; both are expected and not errors. Multi-channel
// input is averaged to mono first. With a window other than rectangular
// only the copied samples are tapered. sig is never modified.
func (a *Analyzer) Analyze(sig signal.Signal, transformLength int) (Analysis, error) {
	if transformLength <= 0 {
		return Analysis{}, fmt.Errorf("%w: %d", ErrInvalidTransformLength, transformLength)
	}

	mono := sig
	if sig.Channels > 1 {
		mono = signal.Mono(sig)
	}

	t, backend, err := a.plan(transformLength)
	if err != nil {
		return Analysis{}, err
	}

	frame := make([]float64, transformLength)
	n := core.PadOrTruncate(frame, mono.Samples)
	window.Apply(a.window, frame[:n], window.WithPeriodic())

	bins := make(Spectrum, BinCount(transformLength))
	if err := t.forward(bins, frame); err != nil {
		return Analysis{}, fmt.Errorf("spectrum: %s forward transform: %w", backend, err)
	}

	ts := timestats.Calculate(mono.Samples)

	return Analysis{
		Bins:            bins,
		TransformLength: transformLength,
		SampleRate:      sig.SampleRate,
		Mean:            ts.Mean,
		Sum:             ts.Sum,
		Time:            ts,
		Backend:         backend,
		Window:          a.window,
	}, nil
}

// Bins evaluates only the requested bins of the transformLength DFT of sig,
// using the Goertzel recurrence and the analyzer's window. It is intended for
// reading a handful of early bins without paying for the full transform.
func (a *Analyzer) Bins(sig signal.Signal, transformLength int, ks ...int) (Spectrum, error) {
	mono := sig
	if sig.Channels > 1 {
		mono = signal.Mono(sig)
	}

	samples := mono.Samples
	if a.window != window.TypeRectangular {
		samples = make([]float64, min(len(mono.Samples), max(transformLength, 0)))
		copy(samples, mono.Samples)
		window.Apply(a.window, samples, window.WithPeriodic())
	}

	out := make(Spectrum, len(ks))
	for i, k := range ks {
		v, err := DFTBin(samples, k, transformLength)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (a *Analyzer) plan(n int) (realTransform, Backend, error) {
	backend := a.backend
	if backend == BackendAuto {
		backend = BackendGonum
		if core.IsPowerOfTwo(n) {
			backend = BackendAlgoFFT
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if t, ok := a.plans[planKey{backend, n}]; ok {
		return t, backend, nil
	}

	var t realTransform
	switch backend {
	case BackendAlgoFFT:
		p, err := newAlgoFFTTransform(n)
		if err == nil {
			t = p
			break
		}
		if a.backend == BackendAlgoFFT {
			return nil, backend, fmt.Errorf("%w: %s length %d: %w", ErrBackendUnsupported, backend, n, err)
		}
		backend = BackendGonum
		if cached, ok := a.plans[planKey{backend, n}]; ok {
			return cached, backend, nil
		}
		t = newGonumTransform(n)
	default:
		t = newGonumTransform(n)
	}

	a.plans[planKey{backend, n}] = t
	return t, backend, nil
}

type algoFFTTransform struct {
	mu      sync.Mutex
	plan    *algofft.Plan[complex128]
	in, out []complex128
}

// errNotPowerOfTwo rejects lengths algo-fft plans but does not transform
// correctly (mixed-radix sizes such as 40 or 1000).
var errNotPowerOfTwo = errors.New("length is not a power of two")

func newAlgoFFTTransform(n int) (*algoFFTTransform, error) {
	if !core.IsPowerOfTwo(n) {
		return nil, errNotPowerOfTwo
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, err
	}
	return &algoFFTTransform{
		plan: plan,
		in:   make([]complex128, n),
		out:  make([]complex128, n),
	}, nil
}

func (t *algoFFTTransform) forward(dst []complex128, src []float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, x := range src {
		t.in[i] = complex(x, 0)
	}
	if err := t.plan.Forward(t.out, t.in); err != nil {
		return err
	}
	copy(dst, t.out[:len(dst)])
	return nil
}

type gonumTransform struct {
	mu  sync.Mutex
	fft *fourier.FFT
}

func newGonumTransform(n int) *gonumTransform {
	return &gonumTransform{fft: fourier.NewFFT(n)}
}

func (t *gonumTransform) forward(dst []complex128, src []float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fft.Coefficients(dst, src)
	return nil
}
