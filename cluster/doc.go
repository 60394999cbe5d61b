// Package cluster labels connected clusters of open sites in a 2D mask.
//
// What:
//
//   - Label wraps a rectangular [][]bool mask (true = open) and groups open
//     sites into clusters under 4- or 8-connectivity.
//   - Each cluster is a list of row-major indices (row*width + col, 0-indexed).
//   - Spanning clusters touch both the first and the last row; on a
//     percolation configuration these are exactly the clusters that make the
//     system percolate (under Conn4).
//
// Why:
//
//   - Percolation studies: size of the spanning cluster at threshold,
//     cluster-size distribution, visual highlighting.
//
// Complexity:
//
//   - Label:        O(W·H·d) time, O(W·H) memory (d = 4 or 8).
//   - Components, Largest, Spanning, ComponentOf: O(1) or O(#clusters) after labelling.
//
// Errors:
//
//   - ErrEmptyGrid: mask has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
package cluster
