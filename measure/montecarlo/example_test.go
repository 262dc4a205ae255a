package montecarlo_test

import (
	"context"
	"fmt"
	"math"

	"github.com/cwbudde/algo-prewhiten/measure/montecarlo"
	"github.com/cwbudde/algo-prewhiten/series"
)

func ExampleEstimator_Run() {
	times := make([]float64, 200)
	values := make([]float64, 200)
	for i := range times {
		times[i] = float64(i)
		values[i] = math.Sin(2 * math.Pi * 0.1 * times[i])
	}
	ts, _ := series.New(times, values)

	est, _ := montecarlo.NewEstimator(montecarlo.Config{
		Numin: 0.05, Numax: 0.2, Sigma: 0.1, Trials: 20, Seed: 3,
	})
	res, err := est.Run(context.Background(), ts)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("median=%.2f trials=%d\n", res.Median, len(res.Frequencies))
	// Output: median=0.10 trials=20
}
