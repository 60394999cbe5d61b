package montecarlo_test

import (
	"fmt"

	"github.com/katalvlaran/percolate/montecarlo"
)

// ExampleRun estimates the threshold of a 1×1 grid, which is exactly 1.
func ExampleRun() {
	s, err := montecarlo.Run(1, montecarlo.WithTrials(5), montecarlo.WithSeed(42))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("mean                    = %.4f\n", s.Mean())
	fmt.Printf("stddev                  = %.4f\n", s.StdDev())
	fmt.Printf("95%% confidence interval = [%.4f, %.4f]\n", s.ConfidenceLo(), s.ConfidenceHi())
	// Output:
	// mean                    = 1.0000
	// stddev                  = 0.0000
	// 95% confidence interval = [1.0000, 1.0000]
}

func ExampleRun_invalidTrials() {
	_, err := montecarlo.Run(10, montecarlo.WithTrials(-1))
	fmt.Println(err)
	// Output: montecarlo: invalid option supplied: montecarlo: trial count must be positive (-1)
}
