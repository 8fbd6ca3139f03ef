package patch_test

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-patchscope/dsp/signal"
	"github.com/cwbudde/algo-patchscope/measure/patch"
)

func ExampleLocate() {
	ref, _ := signal.NewMono([]float64{0.2, 0.4, 0, 0.8, 0.1}, 48000)
	deg, _ := signal.NewMono([]float64{0.2, 0.2, 0, 0.4, 0.1}, 48000)

	w, err := patch.Locate(ref, deg, []patch.CalibrationPoint{
		{Index: 1, Ratio: 0.5},
		{Index: 2, Ratio: patch.Undefined},
		{Index: 3, Ratio: 0.5},
	})
	if err != nil {
		panic(err)
	}

	refPatch, degPatch, err := patch.ExtractPair(ref, deg, w)
	if err != nil {
		panic(err)
	}
	fmt.Println(w, refPatch.Samples, degPatch.Samples)

	_, err = patch.Locate(ref, deg, []patch.CalibrationPoint{
		{Index: 1, Ratio: 1.5},
		{Index: 3, Ratio: 0.5},
	})
	var mismatch *patch.CalibrationMismatchError
	if errors.As(err, &mismatch) {
		fmt.Printf("index %d observed %.2f expected %.2f\n", mismatch.Index, mismatch.Observed, mismatch.Expected)
	}

	// Output:
	// [1, 3) [0.4 0] [0.2 0]
	// index 1 observed 0.50 expected 1.50
}
