package spectrum

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-patchscope/dsp/signal"
	"github.com/cwbudde/algo-patchscope/internal/testutil"
)

func BenchmarkAnalyze(b *testing.B) {
	sig, err := signal.NewMono(testutil.DeterministicNoise(1, 1, 100000), 48000)
	if err != nil {
		b.Fatal(err)
	}

	for _, n := range []int{65536, 100000, 262144} {
		a := NewAnalyzer()
		b.Run(fmt.Sprintf("L=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				if _, err := a.Analyze(sig, n); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
