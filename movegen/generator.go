// Package movegen generates the successor positions of a capture-game
// board. Every empty cell is a move; a move either captures a group of
// neighbors or drops the default token.
package movegen

import (
	"github.com/domino14/capgrid/board"
	"github.com/domino14/capgrid/captures"
)

// DefaultToken is placed on an empty cell when nothing can be captured.
const DefaultToken = 1

// An Accumulator receives generated states together with the number of
// paths leading to them. Implementations merge repeated states.
type Accumulator interface {
	Add(s board.State, ways uint32)
}

// MoveGenerator is the interface the solvers drive.
type MoveGenerator interface {
	Expand(s board.State, ways uint32, pos int, acc Accumulator) int
	ExpandAll(s board.State, ways uint32, acc Accumulator) int
}

type Generator struct {
	table *captures.Table
}

var _ MoveGenerator = (*Generator)(nil)

func NewGenerator(table *captures.Table) *Generator {
	return &Generator{table: table}
}

func (g *Generator) Table() *captures.Table {
	return g.table
}

// Expand plays the empty cell pos of s. Each combo that is fully occupied
// and sums to at most captures.Threshold yields its own child: the combo's
// cells are emptied and pos takes the sum. If no combo qualifies, pos gets
// DefaultToken. Every child is handed to acc with the given ways. The
// number of children produced is returned.
func (g *Generator) Expand(s board.State, ways uint32, pos int, acc Accumulator) int {
	produced := 0
	for _, combo := range g.table.For(pos) {
		sum, ok := combo.Capturable(s)
		if !ok {
			continue
		}
		ns := s
		for _, p := range combo {
			ns = ns.SetCell(p, 0)
		}
		acc.Add(ns.SetCell(pos, sum), ways)
		produced++
	}
	if produced == 0 {
		acc.Add(s.SetCell(pos, DefaultToken), ways)
		produced = 1
	}
	return produced
}

// ExpandAll calls Expand for every empty cell of s, in ascending order.
func (g *Generator) ExpandAll(s board.State, ways uint32, acc Accumulator) int {
	produced := 0
	mask := s.EmptyMask()
	for pos := 0; mask != 0; pos++ {
		if mask&1 != 0 {
			produced += g.Expand(s, ways, pos, acc)
		}
		mask >>= 1
	}
	return produced
}
