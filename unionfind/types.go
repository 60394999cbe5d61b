package unionfind

import "errors"

// Sentinel errors for union-find operations.
var (
	// ErrNegativeSize is returned by New when the requested universe size is negative.
	ErrNegativeSize = errors.New("unionfind: size must be non-negative")

	// ErrElementOutOfRange is returned when an element id lies outside [0, Len()).
	ErrElementOutOfRange = errors.New("unionfind: element out of range")
)

// UF is a weighted quick-union forest over elements 0..Len()-1.
//
// parent[i] is the parent of i; a root satisfies parent[i] == i.
// size[r] is only meaningful for roots: the number of elements in r's tree.
type UF struct {
	parent []int
	size   []int
	count  int // number of disjoint sets
}
