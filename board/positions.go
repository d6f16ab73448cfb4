package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var ErrBadBoardString = errors.New("board string must have 9 digits in 0-7")

var allPositions = lo.Range(NumCells)

// EmptyPositions lists the empty cells in ascending order.
func (s State) EmptyPositions() []int {
	return lo.Filter(allPositions, func(pos int, _ int) bool {
		return s.Cell(pos) == 0
	})
}

// NumTokens counts the non-empty cells.
func (s State) NumTokens() int {
	return lo.CountBy(allPositions, func(pos int) bool {
		return s.Cell(pos) != 0
	})
}

// FromString parses the String form back into a State. Row separators
// ('/') and spaces are ignored.
func FromString(str string) (State, error) {
	digits := strings.Map(func(r rune) rune {
		if r == '/' || r == ' ' {
			return -1
		}
		return r
	}, str)
	if len(digits) != NumCells {
		return 0, fmt.Errorf("%w: %q", ErrBadBoardString, str)
	}
	var cells [NumCells]uint8
	for i, ch := range digits {
		v, err := strconv.ParseUint(string(ch), 10, 8)
		if err != nil || v > MaxCellValue {
			return 0, fmt.Errorf("%w: %q", ErrBadBoardString, str)
		}
		cells[i] = uint8(v)
	}
	return FromCells(cells), nil
}

// PosName gives a cell its display coordinate, e.g. 4 -> "B2".
func PosName(pos int) string {
	return fmt.Sprintf("%c%d", 'A'+pos%Dim, pos/Dim+1)
}
