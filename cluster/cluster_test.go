// File: cluster/cluster_test.go
package cluster

import (
	"reflect"
	"sort"
	"testing"
)

// grid converts a compact picture ('.' = open, '#' = blocked) into a mask.
func grid(rows ...string) [][]bool {
	m := make([][]bool, len(rows))
	for y, r := range rows {
		m[y] = make([]bool, len(r))
		for x, ch := range r {
			m[y][x] = ch == '.'
		}
	}
	return m
}

// TestLabel_Simple4 tests Label on a 4×3 mask with orthogonal connectivity.
//
//	# . . #
//	. . # #
//	# # . .
//
// Expected: 2 clusters of sizes 4 and 2.
func TestLabel_Simple4(t *testing.T) {
	l, err := Label(grid("#..#", "..##", "##.."), DefaultOptions())
	if err != nil {
		t.Fatalf("Label failed: %v", err)
	}
	if l.Len() != 2 {
		t.Fatalf("got %d clusters; want 2", l.Len())
	}
	sizes := []int{len(l.Components()[0]), len(l.Components()[1])}
	sort.Ints(sizes)
	if want := []int{2, 4}; !reflect.DeepEqual(sizes, want) {
		t.Errorf("cluster sizes = %v; want %v", sizes, want)
	}
	if got := l.Largest(); got != 4 {
		t.Errorf("Largest = %d; want 4", got)
	}
}

// TestLabel_Diagonal8 checks that corner-touching cells merge only under Conn8.
//
//	. # #
//	# . #
//	# # .
func TestLabel_Diagonal8(t *testing.T) {
	mask := grid(".##", "#.#", "##.")

	l4, _ := Label(mask, Options{Conn: Conn4})
	if l4.Len() != 3 {
		t.Errorf("Conn4: got %d clusters; want 3", l4.Len())
	}
	if got := l4.Spanning(); len(got) != 0 {
		t.Errorf("Conn4: spanning = %v; want none", got)
	}

	l8, _ := Label(mask, Options{Conn: Conn8})
	if l8.Len() != 1 {
		t.Errorf("Conn8: got %d clusters; want 1", l8.Len())
	}
	if got := l8.Spanning(); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("Conn8: spanning = %v; want [0]", got)
	}
}

// TestLabel_Spanning checks spanning detection and SpanningSize on a mask with
// one spanning column, one top-only and one bottom-only cluster.
//
//	. # . #
//	. # # #
//	. # # .
func TestLabel_Spanning(t *testing.T) {
	l, _ := Label(grid(".#.#", ".###", ".##."), DefaultOptions())
	span := l.Spanning()
	if len(span) != 1 {
		t.Fatalf("spanning = %v; want exactly one", span)
	}
	if id := l.ComponentOf(0, 0); span[0] != id {
		t.Errorf("spanning id = %d; want cluster of (0,0) = %d", span[0], id)
	}
	if got := l.SpanningSize(); got != 3 {
		t.Errorf("SpanningSize = %d; want 3", got)
	}
}

// TestLabel_SingleRow: on a one-row mask every cluster touches top and bottom.
func TestLabel_SingleRow(t *testing.T) {
	l, _ := Label(grid(".#.."), DefaultOptions())
	if got := l.Spanning(); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("spanning = %v; want [0 1]", got)
	}
	if got := l.SpanningSize(); got != 3 {
		t.Errorf("SpanningSize = %d; want 3", got)
	}
}

// TestLabel_AllBlocked: no clusters, nothing spans, every label is -1.
func TestLabel_AllBlocked(t *testing.T) {
	l, _ := Label(grid("##", "##"), DefaultOptions())
	if l.Len() != 0 || l.Largest() != 0 || l.SpanningSize() != 0 {
		t.Errorf("blocked mask: len=%d largest=%d spanning=%d; want zeros",
			l.Len(), l.Largest(), l.SpanningSize())
	}
	if id := l.ComponentOf(1, 1); id != -1 {
		t.Errorf("ComponentOf blocked = %d; want -1", id)
	}
	if id := l.ComponentOf(5, 0); id != -1 {
		t.Errorf("ComponentOf outside = %d; want -1", id)
	}
}

// TestLabel_InvalidMasks ensures Label rejects bad inputs.
func TestLabel_InvalidMasks(t *testing.T) {
	if _, err := Label(nil, DefaultOptions()); err != ErrEmptyGrid {
		t.Errorf("nil mask: got %v; want ErrEmptyGrid", err)
	}
	if _, err := Label([][]bool{{}}, DefaultOptions()); err != ErrEmptyGrid {
		t.Errorf("empty row: got %v; want ErrEmptyGrid", err)
	}
	if _, err := Label([][]bool{{true}, {}}, DefaultOptions()); err != ErrNonRectangular {
		t.Errorf("jagged mask: got %v; want ErrNonRectangular", err)
	}
}
