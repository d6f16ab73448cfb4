package movegen

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/capgrid/board"
)

// A Child is one generated successor, kept unmerged.
type Child struct {
	State board.State
	Ways  uint32
}

// Children collects successors in generation order without merging
// duplicates. It is handy for inspection and for depth-first search where
// each child is visited once per generating move.
type Children []Child

func (c *Children) Add(s board.State, ways uint32) {
	*c = append(*c, Child{State: s, Ways: ways})
}

// Reset empties the list, keeping its storage.
func (c *Children) Reset() {
	*c = (*c)[:0]
}

// Move describes a single transition for display.
type Move struct {
	Pos      int
	Captured []int
	Placed   uint8
	Result   board.State
}

func (m Move) ShortDescription() string {
	if len(m.Captured) == 0 {
		return fmt.Sprintf("%s place %d", board.PosName(m.Pos), m.Placed)
	}
	names := lo.Map(m.Captured, func(p int, _ int) string { return board.PosName(p) })
	return fmt.Sprintf("%s capture %s -> %d", board.PosName(m.Pos),
		strings.Join(names, ","), m.Placed)
}

// Moves enumerates the transitions available at the empty cell pos,
// with the combo behind each capture. It mirrors Expand.
func (g *Generator) Moves(s board.State, pos int) []Move {
	if s.Cell(pos) != 0 {
		return nil
	}
	var moves []Move
	for _, combo := range g.table.For(pos) {
		sum, ok := combo.Capturable(s)
		if !ok {
			continue
		}
		ns := s
		for _, p := range combo {
			ns = ns.SetCell(p, 0)
		}
		moves = append(moves, Move{
			Pos:      pos,
			Captured: append([]int(nil), combo...),
			Placed:   sum,
			Result:   ns.SetCell(pos, sum),
		})
	}
	if len(moves) == 0 {
		moves = append(moves, Move{
			Pos:    pos,
			Placed: DefaultToken,
			Result: s.SetCell(pos, DefaultToken),
		})
	}
	return moves
}
