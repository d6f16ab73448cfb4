// Package captures precomputes, for every cell, the groups of neighbors
// that an empty cell may capture at once.
package captures

import (
	"gonum.org/v1/gonum/stat/combin"

	"github.com/domino14/capgrid/board"
)

// Threshold is the largest neighbor sum that may be captured.
const Threshold = 6

// neighbors is the orthogonal adjacency of the 3x3 grid. The order of each
// list determines combo generation order and must not change.
var neighbors = [board.NumCells][]int{
	{1, 3}, {0, 2, 4}, {1, 5},
	{0, 4, 6}, {1, 3, 5, 7}, {2, 4, 8},
	{3, 7}, {4, 6, 8}, {5, 7},
}

// A Combo is a set of neighbor positions captured together.
type Combo []int

// Table holds the combos of every position. Build it once with NewTable and
// share it; nothing mutates it after construction.
type Table struct {
	combos [board.NumCells][]Combo
}

// NewTable generates, per position, every pair of neighbors, then every
// triple (when there are at least three neighbors), then the full set of
// four at the center. Within a size, combos are in lexicographic order of
// neighbor index.
func NewTable() *Table {
	t := &Table{}
	for pos := 0; pos < board.NumCells; pos++ {
		nbs := neighbors[pos]
		nc := len(nbs)
		sizes := []int{2}
		if nc >= 3 {
			sizes = append(sizes, 3)
		}
		if nc == 4 {
			sizes = append(sizes, 4)
		}
		for _, k := range sizes {
			for _, idxs := range combin.Combinations(nc, k) {
				c := make(Combo, k)
				for i, idx := range idxs {
					c[i] = nbs[idx]
				}
				t.combos[pos] = append(t.combos[pos], c)
			}
		}
	}
	return t
}

// For returns the combos of pos in generation order. Callers must not
// modify the returned slice.
func (t *Table) For(pos int) []Combo {
	return t.combos[pos]
}

// Count is the number of combos at pos.
func (t *Table) Count(pos int) int {
	return len(t.combos[pos])
}

// Neighbors returns the adjacency list of pos.
func Neighbors(pos int) []int {
	return neighbors[pos]
}

// Sum adds the values of the combo's cells in s. ok is false as soon as one
// of them is empty, in which case the combo cannot capture.
func (c Combo) Sum(s board.State) (sum uint8, ok bool) {
	for _, p := range c {
		v := s.Cell(p)
		if v == 0 {
			return 0, false
		}
		sum += v
	}
	return sum, true
}

// Capturable reports whether the combo is fully occupied in s and sums to
// at most Threshold.
func (c Combo) Capturable(s board.State) (uint8, bool) {
	sum, ok := c.Sum(s)
	if !ok || sum > Threshold {
		return sum, false
	}
	return sum, true
}
