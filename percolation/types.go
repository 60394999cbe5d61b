package percolation

import (
	"errors"

	"github.com/katalvlaran/percolate/unionfind"
)

// Sentinel errors for percolation grids.
var (
	// ErrInvalidSize indicates a grid dimension n ≤ 0 at construction.
	ErrInvalidSize = errors.New("percolation: grid size must be positive")

	// ErrOutOfBounds indicates a row or column outside [1, n].
	ErrOutOfBounds = errors.New("percolation: site out of bounds")
)

// neighborOffsets lists the four orthogonal neighbours as (dRow, dCol).
var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Grid is an n×n percolation system.
//
// sites[r][c] holds the open flag for site (r+1, c+1). perc includes the
// virtual-bottom node and answers Percolates; full omits it and answers IsFull.
// n, top and bottom never change after New.
type Grid struct {
	n         int
	sites     [][]bool
	perc      *unionfind.UF
	full      *unionfind.UF
	top       int // virtual-top id in both forests: n²
	bottom    int // virtual-bottom id in perc only: n²+1
	openCount int
}
