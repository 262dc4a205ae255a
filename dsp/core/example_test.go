package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-prewhiten/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithWorkers(4),
		core.WithChunkSize(128),
	)

	fmt.Printf("workers=%d chunk=%d\n", cfg.Workers, cfg.ChunkSize)

	// Output:
	// workers=4 chunk=128
}

func ExampleParallelFor() {
	squares := make([]int, 6)
	_ = core.ParallelFor(len(squares), core.ProcessorConfig{Workers: 2, ChunkSize: 2}, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			squares[i] = i * i
		}
		return nil
	})
	fmt.Println(squares)

	// Output:
	// [0 1 4 9 16 25]
}
