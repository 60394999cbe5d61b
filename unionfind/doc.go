// Package unionfind provides a weighted quick-union disjoint-set (union-find)
// over a fixed universe of integer elements 0..n-1.
//
// What & Why
//
//   - A disjoint set partitions n elements into equivalence classes and answers
//     "are p and q in the same class?" while classes are merged one pair at a time.
//   - Typical consumers: Kruskal's MST, dynamic connectivity on grids
//     (percolation), image labelling, equivalence of variables.
//
// Algorithm
//
//   - Union by size: the root of the smaller tree is attached under the root
//     of the larger one, so every tree has height O(log n).
//   - Path halving in Find: every visited node is re-pointed to its grandparent,
//     which flattens trees further at no extra memory cost.
//
// Complexity
//
//   - New:        O(n) time, O(n) memory.
//   - Find/Union: O(α(n)) amortized (α = inverse Ackermann), O(log n) worst case.
//   - Count/Len:  O(1).
//
// Guarantees
//
//   - Unions are monotone: once two elements are joined they stay joined for the
//     lifetime of the structure. Nothing is ever removed or split.
//   - Union of already-connected elements is a no-op.
//
// Errors
//
//   - ErrNegativeSize: New called with n < 0.
//   - ErrElementOutOfRange: an element outside [0, n) was passed.
//
// Concurrency: a *UF is not safe for concurrent mutation. Callers that share one
// across goroutines must synchronize externally.
package unionfind
