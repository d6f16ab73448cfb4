package solver

import (
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/capgrid/board"
	"github.com/domino14/capgrid/movegen"
)

// A Frontier maps every state reached at one depth to the number of paths
// that reach it, modulo board.Modulus.
type Frontier struct {
	ways map[board.State]uint32
}

var _ movegen.Accumulator = (*Frontier)(nil)

func NewFrontier(sizeHint int) *Frontier {
	return &Frontier{ways: make(map[board.State]uint32, sizeHint)}
}

// Add merges ways into the count for s.
func (f *Frontier) Add(s board.State, ways uint32) {
	f.ways[s] = (f.ways[s] + ways) & board.ModMask
}

func (f *Frontier) Ways(s board.State) (uint32, bool) {
	w, ok := f.ways[s]
	return w, ok
}

func (f *Frontier) Len() int {
	return len(f.ways)
}

// Each visits every entry in unspecified order.
func (f *Frontier) Each(fn func(s board.State, ways uint32)) {
	for s, w := range f.ways {
		fn(s, w)
	}
}

// Entry is a frontier state with its path count.
type Entry struct {
	State board.State
	Ways  uint32
}

// Top returns up to n entries with the most paths. Ties are broken by
// state so the output is stable.
func (f *Frontier) Top(n int) []Entry {
	entries := lo.MapToSlice(f.ways, func(s board.State, w uint32) Entry {
		return Entry{State: s, Ways: w}
	})
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Ways != entries[j].Ways {
			return entries[i].Ways > entries[j].Ways
		}
		return entries[i].State < entries[j].State
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// WaysValues returns all path counts, for histogramming.
func (f *Frontier) WaysValues() []float64 {
	return lo.MapToSlice(f.ways, func(_ board.State, w uint32) float64 {
		return float64(w)
	})
}
