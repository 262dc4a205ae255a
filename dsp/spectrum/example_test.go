package spectrum_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-prewhiten/dsp/spectrum"
)

func ExampleCompute() {
	times := make([]float64, 100)
	values := make([]float64, 100)
	for i := range times {
		times[i] = float64(i)
		values[i] = 3 * math.Sin(2*math.Pi*0.05*times[i])
	}

	spec, err := spectrum.Compute(times, values, 0.5, spectrum.WithOversampling(6))
	if err != nil {
		panic(err)
	}
	f, _ := spec.Band(0.01, 0.2).HighestPeak()
	fmt.Printf("bins=%d peak=%.2f\n", spec.Len(), f)

	// Output:
	// bins=297 peak=0.05
}

func ExampleMedianNoiseLevel() {
	freqs := []float64{1, 2, 3, 4, 5, 6, 7}
	power := []float64{4, 4, 9, 100, 9, 4, 4}
	noise, _ := spectrum.MedianNoiseLevel(freqs, power, 4, 3)
	fmt.Printf("%.4f\n", noise)

	// Output:
	// 2.1289
}
