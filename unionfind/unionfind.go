package unionfind

import "fmt"

// New returns a UF with n singleton sets {0}, {1}, ..., {n-1}.
// n == 0 yields an empty, valid structure.
//
// Complexity: O(n) time and memory.
func New(n int) (*UF, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeSize, n)
	}
	u := &UF{
		parent: make([]int, n),
		size:   make([]int, n),
		count:  n,
	}
	for i := 0; i < n; i++ {
		u.parent[i] = i
		u.size[i] = 1
	}

	return u, nil
}

// Len returns the size of the element universe.
func (u *UF) Len() int { return len(u.parent) }

// Count returns the current number of disjoint sets.
func (u *UF) Count() int { return u.count }

// Find returns the canonical root of p's set.
//
// Complexity: O(α(n)) amortized.
func (u *UF) Find(p int) (int, error) {
	if err := u.validate(p); err != nil {
		return -1, err
	}

	return u.root(p), nil
}

// Connected reports whether p and q belong to the same set.
func (u *UF) Connected(p, q int) (bool, error) {
	if err := u.validate(p); err != nil {
		return false, err
	}
	if err := u.validate(q); err != nil {
		return false, err
	}

	return u.root(p) == u.root(q), nil
}

// Union merges the sets containing p and q. Merging two elements that are
// already connected changes nothing.
//
// Steps:
//  1. Validate both ids.
//  2. Resolve both roots; return early when equal.
//  3. Attach the smaller tree under the larger root and add up sizes.
//
// Complexity: O(α(n)) amortized.
func (u *UF) Union(p, q int) error {
	if err := u.validate(p); err != nil {
		return err
	}
	if err := u.validate(q); err != nil {
		return err
	}

	rootP, rootQ := u.root(p), u.root(q)
	if rootP == rootQ {
		return nil
	}
	if u.size[rootP] < u.size[rootQ] {
		rootP, rootQ = rootQ, rootP
	}
	u.parent[rootQ] = rootP
	u.size[rootP] += u.size[rootQ]
	u.count--

	return nil
}

// SizeOf returns the number of elements in p's set.
func (u *UF) SizeOf(p int) (int, error) {
	if err := u.validate(p); err != nil {
		return 0, err
	}

	return u.size[u.root(p)], nil
}

// root walks to the root of p, halving the path on the way.
// p must already be validated.
func (u *UF) root(p int) int {
	for u.parent[p] != p {
		u.parent[p] = u.parent[u.parent[p]]
		p = u.parent[p]
	}

	return p
}

func (u *UF) validate(p int) error {
	if p < 0 || p >= len(u.parent) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrElementOutOfRange, p, len(u.parent))
	}

	return nil
}
