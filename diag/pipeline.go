package diag

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-patchscope/audio/codec"
	"github.com/cwbudde/algo-patchscope/dsp/signal"
	"github.com/cwbudde/algo-patchscope/dsp/spectrum"
	"github.com/cwbudde/algo-patchscope/dsp/window"
	"github.com/cwbudde/algo-patchscope/measure/patch"
	timestats "github.com/cwbudde/algo-patchscope/stats/time"
)

// ErrNoInput is returned when a request names no reference or degraded file.
var ErrNoInput = errors.New("diag: missing input path")

// Request describes one isolation run. Empty output paths skip writing.
type Request struct {
	Reference string
	Degraded  string
	Points    []patch.CalibrationPoint
	RefOut    string
	DegOut    string
}

// Report is the outcome of [Pipeline.Isolate].
type Report struct {
	Reference spectrum.Analysis
	Window    patch.Window
	RefPatch  signal.Signal
	DegPatch  signal.Signal
	// SPLGain brings the degraded patch to the level of the reference patch.
	SPLGain float64
	// Written lists the output files in the order they were produced.
	Written []string
	Elapsed time.Duration
}

// Pipeline runs inspection and isolation with a fixed configuration.
// It is safe for concurrent use.
type Pipeline struct {
	cfg     Config
	locator *patch.Locator
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	cfg := ApplyOptions(opts...)
	return &Pipeline{
		cfg:     cfg,
		locator: patch.NewLocator(cfg.Patch...),
	}
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

func (p *Pipeline) log(fn string) *logrus.Entry {
	return p.cfg.Logger.WithField("function", fn)
}

// Inspect decodes path to mono and analyses it at the configured transform
// length.
func (p *Pipeline) Inspect(path string) (spectrum.Analysis, error) {
	sig, err := codec.LoadMono(path)
	if err != nil {
		p.log("Inspect").WithFields(logrus.Fields{
			"path":  path,
			"error": err,
		}).Error("decode failed")
		return spectrum.Analysis{}, fmt.Errorf("diag: inspect: %w", err)
	}
	return p.analyze("Inspect", path, sig)
}

func (p *Pipeline) analyze(fn, path string, sig signal.Signal) (spectrum.Analysis, error) {
	a, err := p.cfg.Analyzer.Analyze(sig, p.cfg.TransformLength)
	if err != nil {
		return spectrum.Analysis{}, fmt.Errorf("diag: analyze %s: %w", path, err)
	}

	fields := logrus.Fields{
		"path":      path,
		"samples":   sig.Len(),
		"rate":      sig.SampleRate,
		"length":    a.TransformLength,
		"bins":      len(a.Bins),
		"backend":   a.Backend.String(),
		"window":    a.Window.String(),
		"mean":      a.Mean,
		"sum":       a.Sum,
		"spl_db":    a.Time.SPL_dB,
		"truncated": sig.Len() > a.TransformLength,
	}
	if a.Window != window.TypeRectangular {
		// Gains of the taper as applied to the analysed frame.
		coeffs := window.Generate(a.Window, min(sig.Len(), a.TransformLength), window.WithPeriodic())
		if cg, err := window.CoherentGain(coeffs); err == nil {
			fields["coherent_gain"] = cg
		}
		if enbw, err := window.EquivalentNoiseBandwidth(coeffs); err == nil {
			fields["enbw"] = enbw
		}
	}
	entry := p.log(fn).WithFields(fields)
	entry.Info("spectrum analysed")

	if entry.Logger.IsLevelEnabled(logrus.DebugLevel) {
		head := a.Head(p.cfg.HeadBins)
		mag := spectrum.Magnitude(head)
		phase := spectrum.Phase(head)
		for k, v := range head {
			entry.WithFields(logrus.Fields{
				"bin":       k,
				"hz":        a.BinFrequency(k),
				"real":      real(v),
				"imag":      imag(v),
				"magnitude": mag[k],
				"phase":     phase[k],
			}).Debug("spectrum bin")
		}
	}
	return a, nil
}

// Isolate decodes both inputs, analyses the reference, locates the patch
// window from req.Points and extracts it. Requested outputs are written as
// WAV. The context is checked between stages.
func (p *Pipeline) Isolate(ctx context.Context, req Request) (Report, error) {
	start := time.Now()
	log := p.log("Isolate")

	if req.Reference == "" || req.Degraded == "" {
		return Report{}, ErrNoInput
	}

	ref, err := p.load(ctx, req.Reference)
	if err != nil {
		return Report{}, err
	}
	deg, err := p.load(ctx, req.Degraded)
	if err != nil {
		return Report{}, err
	}

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	analysis, err := p.analyze("Isolate", req.Reference, ref)
	if err != nil {
		return Report{}, err
	}

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	w, err := p.locator.Locate(ref, deg, req.Points)
	if err != nil {
		fields := logrus.Fields{"points": len(req.Points), "error": err}
		var mismatch *patch.CalibrationMismatchError
		if errors.As(err, &mismatch) {
			fields["index"] = mismatch.Index
			fields["observed"] = mismatch.Observed
			fields["expected"] = mismatch.Expected
		}
		log.WithFields(fields).Error("calibration failed")
		return Report{}, fmt.Errorf("diag: locate: %w", err)
	}

	refPatch, degPatch, err := patch.ExtractPair(ref, deg, w)
	if err != nil {
		return Report{}, fmt.Errorf("diag: extract: %w", err)
	}

	report := Report{
		Reference: analysis,
		Window:    w,
		RefPatch:  refPatch,
		DegPatch:  degPatch,
		SPLGain:   timestats.MatchSPLGain(refPatch.Samples, degPatch.Samples),
	}

	log.WithFields(logrus.Fields{
		"start":    w.Start,
		"end":      w.End,
		"duration": w.Duration(ref.SampleRate).String(),
		"spl_gain": report.SPLGain,
	}).Info("patch located")

	for _, out := range []struct {
		path string
		sig  signal.Signal
	}{
		{req.RefOut, refPatch},
		{req.DegOut, degPatch},
	} {
		if out.path == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		if err := codec.Encode(out.path, out.sig, p.cfg.BitDepth); err != nil {
			return Report{}, fmt.Errorf("diag: write %s: %w", out.path, err)
		}
		report.Written = append(report.Written, out.path)
		log.WithFields(logrus.Fields{
			"path":   out.path,
			"bits":   int(p.cfg.BitDepth),
			"frames": out.sig.Len(),
		}).Info("patch written")
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

func (p *Pipeline) load(ctx context.Context, path string) (signal.Signal, error) {
	if err := ctx.Err(); err != nil {
		return signal.Signal{}, err
	}
	sig, err := codec.LoadMono(path)
	if err != nil {
		p.log("Isolate").WithFields(logrus.Fields{
			"path":  path,
			"error": err,
		}).Error("decode failed")
		return signal.Signal{}, fmt.Errorf("diag: load: %w", err)
	}
	p.log("Isolate").WithFields(logrus.Fields{
		"path":    path,
		"samples": sig.Len(),
		"rate":    sig.SampleRate,
	}).Debug("decoded")
	return sig, nil
}
