// Package window provides cosine-sum taper windows for spectrum inspection.
//
// The spectrum analyzer uses [TypeRectangular] unless told otherwise, which
// keeps the DC bin equal to the plain sample sum. A taper trades that
// property for lower leakage around strong tones; [CoherentGain] and
// [EquivalentNoiseBandwidth] quantify the cost.
package window
