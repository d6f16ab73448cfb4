// Package board packs a 3x3 capture-game position into a single integer.
// Each of the nine cells holds a 3-bit value; cell pos (row-major, 0..8)
// lives in bits [3*pos, 3*pos+3). A zero cell is empty.
package board

import (
	"fmt"
	"strings"
)

const (
	Dim      = 3
	NumCells = Dim * Dim

	// MaxCellValue is the largest token a cell can hold.
	MaxCellValue = 7

	cellBits = 3
	cellMask = (1 << cellBits) - 1
)

// Modulus bounds path counts and checksums. Everything reduced by it is
// reduced with ModMask since it is a power of two.
const (
	Modulus = 1 << 30
	ModMask = Modulus - 1
)

// State is a packed board. It is a plain value; every transformation
// returns a new State.
type State uint32

// FromCells packs the given cells. Values wider than three bits are masked.
func FromCells(cells [NumCells]uint8) State {
	var s State
	for pos, v := range cells {
		s = s.SetCell(pos, v)
	}
	return s
}

// Cell returns the value at pos.
func (s State) Cell(pos int) uint8 {
	return uint8((s >> (pos * cellBits)) & cellMask)
}

// SetCell returns a copy of s with pos overwritten by value&7.
func (s State) SetCell(pos int, value uint8) State {
	shift := pos * cellBits
	return (s &^ (cellMask << shift)) | (State(value&cellMask) << shift)
}

func (s State) Cells() [NumCells]uint8 {
	var cells [NumCells]uint8
	for pos := range cells {
		cells[pos] = s.Cell(pos)
	}
	return cells
}

// IsFull is true when no cell is empty.
func (s State) IsFull() bool {
	return s.EmptyMask() == 0
}

// EmptyMask has bit pos set for every empty cell.
func (s State) EmptyMask() uint16 {
	var mask uint16
	for pos := 0; pos < NumCells; pos++ {
		if s.Cell(pos) == 0 {
			mask |= 1 << pos
		}
	}
	return mask
}

// Hash folds the board into the checksum domain: the cells read as a
// base-10 number (cell 0 most significant), truncated to 30 bits.
// It is not a map key; two distinct states may share a Hash.
func (s State) Hash() uint32 {
	var h uint32
	for pos := 0; pos < NumCells; pos++ {
		h = h*10 + uint32(s.Cell(pos))
	}
	return h & ModMask
}

// String renders the cells in row-major order, e.g. "120/004/000".
func (s State) String() string {
	var sb strings.Builder
	for pos := 0; pos < NumCells; pos++ {
		if pos > 0 && pos%Dim == 0 {
			sb.WriteByte('/')
		}
		sb.WriteByte('0' + s.Cell(pos))
	}
	return sb.String()
}

// ToDisplayText draws the board as a small grid, empty cells shown as dots.
func (s State) ToDisplayText() string {
	var str string
	row := "   "
	for c := 0; c < Dim; c++ {
		row = row + fmt.Sprintf("%c", 'A'+c) + " "
	}
	str = str + row + "\n"
	str = str + "   " + strings.Repeat("-", Dim*2) + "\n"
	for r := 0; r < Dim; r++ {
		row := fmt.Sprintf("%2d|", r+1)
		for c := 0; c < Dim; c++ {
			v := s.Cell(r*Dim + c)
			if v == 0 {
				row = row + ". "
			} else {
				row = row + fmt.Sprintf("%d ", v)
			}
		}
		row = row + "|"
		str = str + row + "\n"
	}
	str = str + "   " + strings.Repeat("-", Dim*2) + "\n"
	return "\n" + str
}
