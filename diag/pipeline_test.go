package diag

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/cwbudde/algo-patchscope/audio/codec"
	"github.com/cwbudde/algo-patchscope/dsp/signal"
	"github.com/cwbudde/algo-patchscope/dsp/spectrum"
	"github.com/cwbudde/algo-patchscope/dsp/window"
	"github.com/cwbudde/algo-patchscope/internal/testutil"
	"github.com/cwbudde/algo-patchscope/measure/patch"
)

func writeWAV(t *testing.T, path string, samples []float64, rate int) {
	t.Helper()
	sig, err := signal.NewMono(samples, rate)
	if err != nil {
		t.Fatalf("NewMono() error = %v", err)
	}
	if err := codec.Encode(path, sig, codec.Depth16); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
}

// fixture writes a reference/degraded pair whose non-zero samples are exact
// at 16 bits, so ratios survive the WAV round trip unchanged.
func fixture(t *testing.T) (dir, ref, deg string) {
	t.Helper()
	dir = t.TempDir()
	ref = filepath.Join(dir, "ref.wav")
	deg = filepath.Join(dir, "deg.wav")

	writeWAV(t, ref, testutil.Sparse(1000, map[int]float64{100: 0.5, 400: 0.125, 700: -0.25}), 8000)
	writeWAV(t, deg, testutil.Sparse(1000, map[int]float64{100: 0.25, 400: 0.0625, 700: -0.125}), 8000)
	return dir, ref, deg
}

func points() []patch.CalibrationPoint {
	return []patch.CalibrationPoint{
		{Index: 99, Ratio: patch.Undefined},
		{Index: 100, Ratio: 0.5},
		{Index: 101, Ratio: 0.5},
		{Index: 700, Ratio: 0.5},
	}
}

func TestIsolate(t *testing.T) {
	dir, ref, deg := fixture(t)
	logger, hook := logtest.NewNullLogger()

	p := New(WithLogger(logger), WithTransformLength(2048))
	req := Request{
		Reference: ref,
		Degraded:  deg,
		Points:    points(),
		RefOut:    filepath.Join(dir, "ref_patch.wav"),
		DegOut:    filepath.Join(dir, "deg_patch.wav"),
	}

	report, err := p.Isolate(context.Background(), req)
	if err != nil {
		t.Fatalf("Isolate() error = %v", err)
	}
	if report.Window != (patch.Window{Start: 100, End: 700}) {
		t.Fatalf("window = %s, want [100, 700)", report.Window)
	}
	if len(report.Reference.Bins) != 1025 {
		t.Fatalf("reference bins = %d, want 1025", len(report.Reference.Bins))
	}
	if math.Abs(report.Reference.Sum-0.375) > 1e-12 {
		t.Fatalf("reference sum = %v, want 0.375", report.Reference.Sum)
	}
	if math.Abs(report.SPLGain-2) > 1e-9 {
		t.Fatalf("SPL gain = %v, want 2", report.SPLGain)
	}
	if len(report.Written) != 2 {
		t.Fatalf("written = %v, want two files", report.Written)
	}

	refPatch, err := codec.Decode(req.RefOut)
	if err != nil {
		t.Fatalf("Decode(RefOut) error = %v", err)
	}
	degPatch, err := codec.Decode(req.DegOut)
	if err != nil {
		t.Fatalf("Decode(DegOut) error = %v", err)
	}
	testutil.RequireSliceEqual(t, refPatch.Samples, report.RefPatch.Samples)
	testutil.RequireSliceEqual(t, degPatch.Samples, report.DegPatch.Samples)
	if refPatch.Len() != 600 || refPatch.Samples[0] != 0.5 || degPatch.Samples[300] != 0.0625 {
		t.Fatalf("unexpected patch content: len=%d first=%v", refPatch.Len(), refPatch.Samples[0])
	}

	var located bool
	for _, e := range hook.AllEntries() {
		if e.Message == "patch located" {
			located = true
			if e.Data["start"] != 100 || e.Data["end"] != 700 {
				t.Fatalf("log fields = %v", e.Data)
			}
		}
	}
	if !located {
		t.Fatal("missing \"patch located\" log entry")
	}
}

func TestIsolateSkipsEmptyOutputs(t *testing.T) {
	_, ref, deg := fixture(t)
	report, err := New(WithTransformLength(64)).Isolate(context.Background(), Request{
		Reference: ref,
		Degraded:  deg,
		Points:    points(),
	})
	if err != nil {
		t.Fatalf("Isolate() error = %v", err)
	}
	if len(report.Written) != 0 {
		t.Fatalf("written = %v, want none", report.Written)
	}
	// The reference is longer than the transform; analysis truncates.
	if len(report.Reference.Bins) != 33 {
		t.Fatalf("bins = %d, want 33", len(report.Reference.Bins))
	}
}

func TestIsolateCalibrationMismatch(t *testing.T) {
	_, ref, deg := fixture(t)
	logger, hook := logtest.NewNullLogger()

	pts := points()
	pts[3].Ratio = 1.5
	_, err := New(WithLogger(logger), WithTransformLength(1024)).Isolate(context.Background(), Request{
		Reference: ref,
		Degraded:  deg,
		Points:    pts,
	})

	var mismatch *patch.CalibrationMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Isolate() error = %v, want *CalibrationMismatchError", err)
	}
	if mismatch.Index != 700 || mismatch.Observed != 0.5 {
		t.Fatalf("mismatch = %+v", mismatch)
	}

	last := hook.LastEntry()
	if last == nil || last.Level != logrus.ErrorLevel || last.Data["index"] != 700 || last.Data["observed"] != 0.5 {
		t.Fatalf("last log entry = %+v", last)
	}
}

func TestIsolateWithTolerance(t *testing.T) {
	_, ref, deg := fixture(t)
	pts := points()
	pts[3].Ratio = 0.501

	req := Request{Reference: ref, Degraded: deg, Points: pts}
	if _, err := New(WithTransformLength(64)).Isolate(context.Background(), req); !errors.Is(err, patch.ErrCalibrationMismatch) {
		t.Fatalf("default tolerance: error = %v, want ErrCalibrationMismatch", err)
	}
	if _, err := New(WithTransformLength(64), WithTolerance(1e-2)).Isolate(context.Background(), req); err != nil {
		t.Fatalf("WithTolerance: error = %v", err)
	}
}

func TestIsolateInputErrors(t *testing.T) {
	dir, ref, _ := fixture(t)
	p := New()

	if _, err := p.Isolate(context.Background(), Request{Reference: ref}); !errors.Is(err, ErrNoInput) {
		t.Fatalf("Isolate() error = %v, want ErrNoInput", err)
	}

	_, err := p.Isolate(context.Background(), Request{
		Reference: ref,
		Degraded:  filepath.Join(dir, "missing.wav"),
		Points:    points(),
	})
	if !errors.Is(err, codec.ErrDecode) {
		t.Fatalf("Isolate() error = %v, want codec.ErrDecode", err)
	}
}

func TestIsolateCancelled(t *testing.T) {
	dir, ref, deg := fixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(dir, "never.wav")
	_, err := New().Isolate(ctx, Request{Reference: ref, Degraded: deg, Points: points(), RefOut: out})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Isolate() error = %v, want context.Canceled", err)
	}
	if _, err := codec.Decode(out); err == nil {
		t.Fatal("cancelled run must not write output")
	}
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.wav")
	writeWAV(t, path, []float64{0.5, 0.25, -0.125, 0, 0, 0, 0, 0.25}, 16000)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	a, err := New(WithLogger(logger), WithTransformLength(16)).Inspect(path)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if len(a.Bins) != 9 {
		t.Fatalf("bins = %d, want 9", len(a.Bins))
	}
	if math.Abs(real(a.Bins[0])-0.875) > 1e-12 || math.Abs(a.Sum-0.875) > 1e-12 {
		t.Fatalf("DC = %v, sum = %v, want 0.875", a.Bins[0], a.Sum)
	}
	if a.BinFrequency(1) != 1000 {
		t.Fatalf("BinFrequency(1) = %v, want 1000", a.BinFrequency(1))
	}

	bins := 0
	for _, e := range hook.AllEntries() {
		if e.Message == "spectrum bin" {
			bins++
		}
	}
	if bins != DefaultHeadBins {
		t.Fatalf("logged %d bins, want %d", bins, DefaultHeadBins)
	}
}

func TestInspectErrors(t *testing.T) {
	if _, err := New().Inspect(filepath.Join(t.TempDir(), "x.txt")); !errors.Is(err, codec.ErrUnsupportedFormat) {
		t.Fatalf("Inspect() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestOptions(t *testing.T) {
	shared := spectrum.NewAnalyzer(spectrum.WithBackend(spectrum.BackendGonum))
	cfg := ApplyOptions(
		WithTransformLength(-1),
		WithHeadBins(-3),
		WithBitDepth(12),
		WithLogger(nil),
		WithAnalyzer(shared),
		nil,
	)
	if cfg.TransformLength != DefaultTransformLength || cfg.HeadBins != DefaultHeadBins || cfg.BitDepth != codec.DefaultBitDepth {
		t.Fatalf("invalid options must be ignored: %+v", cfg)
	}
	if cfg.Logger == nil || cfg.Analyzer != shared {
		t.Fatal("logger or analyzer not set")
	}

	cfg = ApplyOptions(WithTransformLength(1024), WithBitDepth(codec.Depth24), WithHeadBins(0), WithWindow(window.TypeBlackman))
	if cfg.TransformLength != 1024 || cfg.BitDepth != codec.Depth24 || cfg.HeadBins != 0 || cfg.Analyzer == nil {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Window != window.TypeBlackman {
		t.Fatalf("Window = %s, want blackman", cfg.Window)
	}

	cfg = ApplyOptions(WithWindowName("FLAT-TOP"), WithWindowName("bogus"))
	if cfg.Window != window.TypeFlatTop {
		t.Fatalf("Window = %s, want flat-top", cfg.Window)
	}
}

func TestInspectWithWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ones.wav")
	writeWAV(t, path, []float64{0.5, 0.5, 0.5, 0.5}, 8000)

	logger, hook := logtest.NewNullLogger()

	a, err := New(WithLogger(logger), WithTransformLength(8), WithWindowName(" Hann ")).Inspect(path)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if a.Window != window.TypeHann {
		t.Fatalf("Window = %s, want hann", a.Window)
	}
	// Periodic Hann of length 4 is [0 0.5 1 0.5] and sums to 2.
	if math.Abs(real(a.Bins[0])-1) > 1e-12 || math.Abs(a.Sum-2) > 1e-12 {
		t.Fatalf("DC = %v, sum = %v", a.Bins[0], a.Sum)
	}

	last := hook.LastEntry()
	if last == nil || last.Message != "spectrum analysed" {
		t.Fatalf("last entry = %+v, want spectrum analysed", last)
	}
	if cg, _ := last.Data["coherent_gain"].(float64); math.Abs(cg-0.5) > 1e-12 {
		t.Fatalf("coherent_gain = %v, want 0.5", last.Data["coherent_gain"])
	}
	if enbw, _ := last.Data["enbw"].(float64); math.Abs(enbw-1.5) > 1e-12 {
		t.Fatalf("enbw = %v, want 1.5", last.Data["enbw"])
	}
}

func TestInspectRectangularOmitsWindowGains(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ones.wav")
	writeWAV(t, path, []float64{0.5, 0.5, 0.5, 0.5}, 8000)

	logger, hook := logtest.NewNullLogger()
	if _, err := New(WithLogger(logger), WithTransformLength(8), WithWindowName("no-such-window")).Inspect(path); err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}

	last := hook.LastEntry()
	if last == nil {
		t.Fatal("nothing logged")
	}
	if last.Data["window"] != "rectangular" {
		t.Fatalf("window = %v, want rectangular", last.Data["window"])
	}
	if _, ok := last.Data["coherent_gain"]; ok {
		t.Fatal("rectangular analysis must not log coherent_gain")
	}
	if _, ok := last.Data["enbw"]; ok {
		t.Fatal("rectangular analysis must not log enbw")
	}
}

func TestInspectLogsBinMagnitudeAndPhase(t *testing.T) {
	// x[n] = delta[n-1] gives X[k] = exp(-2*pi*i*k/L).
	path := filepath.Join(t.TempDir(), "delay.wav")
	writeWAV(t, path, []float64{0, 0.5}, 8000)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	if _, err := New(WithLogger(logger), WithTransformLength(8), WithHeadBins(3)).Inspect(path); err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}

	var got []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "spectrum bin" {
			got = append(got, e)
		}
	}
	if len(got) != 3 {
		t.Fatalf("logged %d bins, want 3", len(got))
	}
	for k, e := range got {
		mag, _ := e.Data["magnitude"].(float64)
		phase, _ := e.Data["phase"].(float64)
		if math.Abs(mag-0.5) > 1e-12 {
			t.Fatalf("bin %d magnitude = %v, want 0.5", k, mag)
		}
		want := -2 * math.Pi * float64(k) / 8
		if math.Abs(phase-want) > 1e-12 {
			t.Fatalf("bin %d phase = %v, want %v", k, phase, want)
		}
	}
}
