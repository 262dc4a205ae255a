package spectrum

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-prewhiten/dsp/core"
	"github.com/cwbudde/algo-prewhiten/internal/testutil"
)

func BenchmarkCompute(b *testing.B) {
	for _, n := range []int{256, 2048} {
		times := testutil.JitteredTimes(1, n, 1, 0.3)
		values := testutil.AddGaussianNoise(2, 1, testutil.Modes(times, testutil.Mode{Freq: 0.1, Amp: 1}))

		b.Run(fmt.Sprintf("direct/n=%d", n), func(b *testing.B) {
			for b.Loop() {
				if _, err := Compute(times, values, 0.5, WithProcessorOptions(core.WithWorkers(1))); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(fmt.Sprintf("direct-parallel/n=%d", n), func(b *testing.B) {
			for b.Loop() {
				if _, err := Compute(times, values, 0.5); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(fmt.Sprintf("fast/n=%d", n), func(b *testing.B) {
			for b.Loop() {
				if _, err := Compute(times, values, 0.5, WithMethod(MethodFast)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
