// Package patch verifies and extracts the sample region in which a degraded
// recording diverges from its reference.
//
// Localisation is a calibration step rather than a search. The caller
// supplies candidate sample indices (typically a window boundary and its
// immediate neighbours) together with the degraded/reference amplitude ratio
// expected at each of them. [Locate] recomputes every ratio, rejects the set
// with a [*CalibrationMismatchError] as soon as one point disagrees, and
// otherwise returns the half-open [Window] spanned by the outermost verified
// indices. Points whose reference amplitude is (near) zero carry no ratio
// information and are skipped.
//
// # Usage
//
//	w, err := patch.Locate(ref, deg, []patch.CalibrationPoint{
//		{Index: 71040, Ratio: 0.5},
//		{Index: 99839, Ratio: 0.5},
//	})
//	if err != nil {
//		return err // unverified window, do not extract
//	}
//	refPatch, degPatch, err := patch.ExtractPair(ref, deg, w)
package patch
