package cluster

import "sort"

// Label groups the open cells of mask into connected clusters.
// The mask is read, never retained or modified.
//
// Clusters are discovered in row-major order of their first cell; cells inside a
// cluster are listed in BFS order from that first cell.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for labels and output.
func Label(mask [][]bool, opts Options) (*Labeling, error) {
	if len(mask) == 0 || len(mask[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(mask), len(mask[0])
	for _, row := range mask {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}

	l := &Labeling{Width: w, Height: h, labels: make([]int, w*h)}
	for i := range l.labels {
		l.labels[i] = -1
	}
	offs := offsets(opts.Conn)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i0 := y*w + x
			if !mask[y][x] || l.labels[i0] >= 0 {
				continue
			}
			id := len(l.comps)
			l.labels[i0] = id
			queue := []int{i0}

			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				ux, uy := u%w, u/w
				for _, d := range offs {
					vx, vy := ux+d[0], uy+d[1]
					if vx < 0 || vx >= w || vy < 0 || vy >= h || !mask[vy][vx] {
						continue
					}
					vi := vy*w + vx
					if l.labels[vi] < 0 {
						l.labels[vi] = id
						queue = append(queue, vi)
					}
				}
			}
			l.comps = append(l.comps, queue)
		}
	}

	return l, nil
}

// Components returns every cluster as a slice of row-major indices.
// The returned slices are shared with the Labeling; do not modify them.
func (l *Labeling) Components() [][]int { return l.comps }

// Len returns the number of clusters.
func (l *Labeling) Len() int { return len(l.comps) }

// ComponentOf returns the cluster id of (row, col), 0-indexed, or -1 when the
// cell is blocked or outside the mask.
func (l *Labeling) ComponentOf(row, col int) int {
	if row < 0 || row >= l.Height || col < 0 || col >= l.Width {
		return -1
	}

	return l.labels[row*l.Width+col]
}

// Largest returns the size of the biggest cluster, 0 when there are none.
func (l *Labeling) Largest() int {
	best := 0
	for _, c := range l.comps {
		if len(c) > best {
			best = len(c)
		}
	}

	return best
}

// Spanning returns the ids of clusters that touch both the first and last row,
// in ascending order.
//
// Complexity: O(W + #clusters).
func (l *Labeling) Spanning() []int {
	top := make(map[int]bool)
	for x := 0; x < l.Width; x++ {
		if id := l.labels[x]; id >= 0 {
			top[id] = true
		}
	}

	var ids []int
	seen := make(map[int]bool)
	last := (l.Height - 1) * l.Width
	for x := 0; x < l.Width; x++ {
		id := l.labels[last+x]
		if id >= 0 && top[id] && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	return ids
}

// SpanningSize returns the total number of cells in spanning clusters.
func (l *Labeling) SpanningSize() int {
	total := 0
	for _, id := range l.Spanning() {
		total += len(l.comps[id])
	}

	return total
}
