package percolation

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/percolate/unionfind"
)

// maxSize is the largest n for which n²+2 union-find ids fit in an int.
var maxSize = int(math.Sqrt(float64(math.MaxInt - 2)))

// New creates an n×n grid with every site blocked.
// Returns ErrInvalidSize when n ≤ 0 or n² + 2 overflows int.
//
// Complexity: O(n²) time and memory.
func New(n int) (*Grid, error) {
	if n <= 0 || n > maxSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	sq := n * n

	perc, err := unionfind.New(sq + 2)
	if err != nil {
		return nil, err
	}
	full, err := unionfind.New(sq + 1)
	if err != nil {
		return nil, err
	}

	sites := make([][]bool, n)
	for r := range sites {
		sites[r] = make([]bool, n)
	}

	return &Grid{
		n:      n,
		sites:  sites,
		perc:   perc,
		full:   full,
		top:    sq,
		bottom: sq + 1,
	}, nil
}

// Size returns the grid dimension n.
func (g *Grid) Size() int { return g.n }

// Open opens site (row, col) if it is not open already.
//
// Steps:
//  1. Validate the coordinate; out of range → ErrOutOfBounds, nothing changes.
//  2. If the site is already open, return: every union it could trigger has
//     already happened, and unions are idempotent.
//  3. Mark open and bump the open counter.
//  4. Row 1: join with virtual-top in both forests.
//     Row n: join with virtual-bottom in the percolation forest only.
//  5. Join with every open in-grid neighbour in both forests.
//
// Complexity: O(α(n²)) amortized.
func (g *Grid) Open(row, col int) error {
	if err := g.validate(row, col); err != nil {
		return err
	}
	if g.sites[row-1][col-1] {
		return nil
	}

	g.sites[row-1][col-1] = true
	g.openCount++
	id := index(g.n, row, col)

	if row == 1 {
		g.join(id, g.top)
	}
	if row == g.n {
		// ids are in range by construction
		_ = g.perc.Union(id, g.bottom)
	}

	for _, d := range neighborOffsets {
		nr, nc := row+d[0], col+d[1]
		if !g.inBounds(nr, nc) || !g.sites[nr-1][nc-1] {
			continue
		}
		g.join(id, index(g.n, nr, nc))
	}

	return nil
}

// IsOpen reports whether site (row, col) is open.
func (g *Grid) IsOpen(row, col int) (bool, error) {
	if err := g.validate(row, col); err != nil {
		return false, err
	}

	return g.sites[row-1][col-1], nil
}

// IsFull reports whether site (row, col) is connected to the top row through
// open sites. A blocked site is never full.
//
// Complexity: O(α(n²)) amortized.
func (g *Grid) IsFull(row, col int) (bool, error) {
	if err := g.validate(row, col); err != nil {
		return false, err
	}
	if !g.sites[row-1][col-1] {
		return false, nil
	}
	ok, _ := g.full.Connected(index(g.n, row, col), g.top)

	return ok, nil
}

// NumberOfOpenSites returns how many distinct sites have been opened.
func (g *Grid) NumberOfOpenSites() int { return g.openCount }

// Percolates reports whether an open path links the top row to the bottom row.
func (g *Grid) Percolates() bool {
	ok, _ := g.perc.Connected(g.top, g.bottom)

	return ok
}

// Index maps a 1-indexed (row, col) to its flat site identity in [0, n²).
func (g *Grid) Index(row, col int) (int, error) {
	if err := g.validate(row, col); err != nil {
		return -1, err
	}

	return index(g.n, row, col), nil
}

// Site is the inverse of Index. idx must lie in [0, n²).
func (g *Grid) Site(idx int) (row, col int, err error) {
	if idx < 0 || idx >= g.n*g.n {
		return 0, 0, fmt.Errorf("%w: index %d not in [0, %d)", ErrOutOfBounds, idx, g.n*g.n)
	}
	row, col = site(g.n, idx)

	return row, col, nil
}

// String renders the grid one row per line:
// '#' blocked, '.' open but not full, '~' full.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.n * (g.n + 1))
	for r := 1; r <= g.n; r++ {
		for c := 1; c <= g.n; c++ {
			switch full, _ := g.IsFull(r, c); {
			case full:
				b.WriteByte('~')
			case g.sites[r-1][c-1]:
				b.WriteByte('.')
			default:
				b.WriteByte('#')
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// join unions p and q in both forests.
func (g *Grid) join(p, q int) {
	// ids are in range by construction
	_ = g.perc.Union(p, q)
	_ = g.full.Union(p, q)
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 1 && row <= g.n && col >= 1 && col <= g.n
}

func (g *Grid) validate(row, col int) error {
	if !g.inBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) not in [1,%d]", ErrOutOfBounds, row, col, g.n)
	}

	return nil
}

// index maps a valid 1-indexed (row, col) to n*(row-1) + (col-1).
func index(n, row, col int) int {
	return n*(row-1) + (col - 1)
}

// site converts a flat index back to a 1-indexed (row, col).
func site(n, idx int) (row, col int) {
	return idx/n + 1, idx%n + 1
}
