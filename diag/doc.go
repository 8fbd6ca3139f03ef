// Package diag wires decoding, spectrum inspection, patch localisation and
// WAV output into one pipeline.
//
// A typical isolation run:
//
//	p := diag.New(diag.WithLogger(logger))
//	report, err := p.Isolate(ctx, diag.Request{
//		Reference: "ref.flac",
//		Degraded:  "deg.mp3",
//		Points:    points,
//		RefOut:    "ref_patch.wav",
//		DegOut:    "deg_patch.wav",
//	})
//
// Both inputs are decoded to mono. The reference spectrum is computed
// independently of the localisation and is part of the report.
package diag
