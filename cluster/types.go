package cluster

import "errors"

// Sentinel errors for cluster labelling.
var (
	// ErrEmptyGrid indicates the input mask has no rows or no columns.
	ErrEmptyGrid = errors.New("cluster: mask must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("cluster: all rows must have the same length")
)

// Connectivity selects neighbour connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// Options contains tunable parameters for labelling.
type Options struct {
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
}

// DefaultOptions returns Options with Conn=Conn4, the neighbourhood used by site percolation.
func DefaultOptions() Options {
	return Options{Conn: Conn4}
}

// Labeling is the immutable result of Label.
// labels[i] is the cluster id of row-major index i, or -1 for a blocked site.
type Labeling struct {
	Width, Height int
	labels        []int
	comps         [][]int
}

// offsets returns (dCol, dRow) neighbour offsets for conn.
func offsets(conn Connectivity) [][2]int {
	if conn == Conn8 {
		return [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	}

	return [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
}
