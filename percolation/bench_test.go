package percolation_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/percolate/percolation"
)

// BenchmarkOpenUntilPercolates opens random sites of a 200×200 grid until it
// percolates. Complexity: O(n²·α(n²)) per iteration.
func BenchmarkOpenUntilPercolates(b *testing.B) {
	const n = 200
	order := rand.New(rand.NewSource(42)).Perm(n * n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g, _ := percolation.New(n)
		for _, idx := range order {
			_ = g.Open(idx/n+1, idx%n+1)
			if g.Percolates() {
				break
			}
		}
	}
}
