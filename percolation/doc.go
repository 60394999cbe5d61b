// Package percolation models site percolation on an n×n grid.
//
// What:
//
//   - A Grid starts with every site blocked. Sites are opened one at a time
//     with Open(row, col); rows and columns are 1-indexed in [1, n].
//   - A site is full when it is open and connected to the top row through a
//     chain of open 4-neighbours (up, down, left, right).
//   - The system percolates when some full site exists in the bottom row.
//
// How:
//
//   - Every site has a flat identity n*(row-1) + (col-1) in [0, n²).
//   - Two independent union-find forests (package unionfind) track
//     connectivity as sites open:
//     – percolation forest: n²+2 elements, virtual-top = n², virtual-bottom = n²+1;
//     – fullness forest:    n²+1 elements, virtual-top = n², no virtual-bottom.
//   - Percolates asks the percolation forest whether the two virtual nodes are
//     joined. IsFull asks the fullness forest whether a site is joined with
//     the virtual-top node.
//
// Why two forests:
//
//	Sharing a single forest for both queries causes "backwash": once the system
//	percolates, every open site touching the bottom row is linked to the top via
//	the virtual-bottom node and would be reported full, even without an open path
//	from the top. The fullness forest never sees the virtual-bottom node.
//
// Complexity:
//
//   - New:                         O(n²) time and memory.
//   - Open/IsFull/Percolates:      O(α(n²)) amortized (at most 6 unions per Open).
//   - IsOpen/NumberOfOpenSites:    O(1).
//
// Errors:
//
//   - ErrInvalidSize: New called with n ≤ 0. No grid is returned.
//   - ErrOutOfBounds: a coordinate outside [1, n]. The grid is left untouched.
//
// Concurrency: a Grid is a plain single-owner value and is not safe for concurrent
// use. Independent grids share no state and may be driven from different goroutines.
package percolation
