package montecarlo

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/percolate/cluster"
	"github.com/katalvlaran/percolate/percolation"
)

// RunTrial runs one experiment on a fresh n×n grid: sites are opened in a
// uniformly random order (without repetition) until the grid percolates.
// A nil rng falls back to the default seed.
//
// Steps:
//  1. Build the grid; n ≤ 0 → ErrInvalidSize.
//  2. Shuffle the n² flat site ids with rng.
//  3. Open sites in that order, checking Percolates after each open.
//  4. Label the open sites to measure the spanning cluster.
//
// Complexity: O(n²·α(n²)).
func RunTrial(n int, rng *rand.Rand) (Trial, error) {
	g, err := percolation.New(n)
	if err != nil {
		return Trial{}, err
	}
	if rng == nil {
		rng = NewRand(0)
	}

	order := make([]int, n*n)
	for i := range order {
		order[i] = i
	}
	shuffleInPlace(order, rng)

	for _, idx := range order {
		if err := g.Open(idx/n+1, idx%n+1); err != nil {
			return Trial{}, fmt.Errorf("open site %d: %w", idx, err)
		}
		if g.Percolates() {
			break
		}
	}

	mask, err := openMask(g)
	if err != nil {
		return Trial{}, err
	}
	lab, err := cluster.Label(mask, cluster.DefaultOptions())
	if err != nil {
		return Trial{}, err
	}

	total := float64(n * n)
	return Trial{
		OpenSites:        g.NumberOfOpenSites(),
		Threshold:        float64(g.NumberOfOpenSites()) / total,
		SpanningFraction: float64(lab.SpanningSize()) / total,
	}, nil
}

// openMask snapshots the grid's open sites through IsOpen, 0-indexed.
func openMask(g *percolation.Grid) ([][]bool, error) {
	n := g.Size()
	mask := make([][]bool, n)
	for r := 0; r < n; r++ {
		mask[r] = make([]bool, n)
		for c := 0; c < n; c++ {
			open, err := g.IsOpen(r+1, c+1)
			if err != nil {
				return nil, err
			}
			mask[r][c] = open
		}
	}

	return mask, nil
}
