package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"
)

func randomState() State {
	var cells [NumCells]uint8
	for i := range cells {
		cells[i] = uint8(frand.Intn(MaxCellValue + 1))
	}
	return FromCells(cells)
}

func TestSetCellRoundTrip(t *testing.T) {
	is := is.New(t)
	for iter := 0; iter < 200; iter++ {
		s := randomState()
		for pos := 0; pos < NumCells; pos++ {
			for v := uint8(0); v <= MaxCellValue; v++ {
				ns := s.SetCell(pos, v)
				is.Equal(ns.Cell(pos), v)
				for other := 0; other < NumCells; other++ {
					if other != pos {
						is.Equal(ns.Cell(other), s.Cell(other))
					}
				}
			}
		}
	}
}

func TestSetCellMasksWideValues(t *testing.T) {
	is := is.New(t)
	s := State(0).SetCell(4, 9)
	is.Equal(s.Cell(4), uint8(1))
	is.Equal(s.Cell(3), uint8(0))
	is.Equal(s.Cell(5), uint8(0))
	// Nothing leaks above the ninth cell.
	s = State(0).SetCell(8, 0xff)
	is.Equal(uint32(s)>>27, uint32(0))
}

func TestIsFull(t *testing.T) {
	is := is.New(t)
	full := FromCells([NumCells]uint8{1, 2, 3, 4, 5, 6, 7, 1, 2})
	is.True(full.IsFull())
	is.Equal(full.EmptyMask(), uint16(0))
	for pos := 0; pos < NumCells; pos++ {
		s := full.SetCell(pos, 0)
		is.True(!s.IsFull())
		is.Equal(s.EmptyMask(), uint16(1)<<pos)
	}
	is.True(!State(0).IsFull())
	is.Equal(State(0).EmptyMask(), uint16(0x1ff))
}

func TestHash(t *testing.T) {
	is := is.New(t)
	is.Equal(State(0).Hash(), uint32(0))

	ones := FromCells([NumCells]uint8{1, 1, 1, 1, 1, 1, 1, 1, 1})
	is.Equal(ones.Hash(), uint32(111111111))

	s := FromCells([NumCells]uint8{1, 2, 3, 4, 5, 6, 7, 0, 1})
	is.Equal(s.Hash(), uint32(123456701))

	// 777777777 fits in 30 bits already; no truncation happens for 9 digits.
	sevens := FromCells([NumCells]uint8{7, 7, 7, 7, 7, 7, 7, 7, 7})
	is.Equal(sevens.Hash(), uint32(777777777))

	for i := 0; i < 500; i++ {
		is.True(randomState().Hash() < Modulus)
	}
}

func TestEmptyPositionsAndTokens(t *testing.T) {
	is := is.New(t)
	s := FromCells([NumCells]uint8{0, 3, 0, 0, 1, 0, 2, 0, 0})
	is.Equal(s.EmptyPositions(), []int{0, 2, 3, 5, 7, 8})
	is.Equal(s.NumTokens(), 3)
	is.Equal(len(State(0).EmptyPositions()), NumCells)
}

func TestStringRoundTrip(t *testing.T) {
	is := is.New(t)
	s := FromCells([NumCells]uint8{1, 2, 0, 0, 4, 0, 7, 0, 3})
	is.Equal(s.String(), "120/040/703")
	back, err := FromString(s.String())
	is.NoErr(err)
	is.Equal(back, s)

	back, err = FromString("1 2 0 0 4 0 7 0 3")
	is.NoErr(err)
	is.Equal(back, s)

	_, err = FromString("12/04")
	is.True(errors.Is(err, ErrBadBoardString))
	_, err = FromString("120/040/708")
	is.True(errors.Is(err, ErrBadBoardString))
}

func TestPosName(t *testing.T) {
	is := is.New(t)
	is.Equal(PosName(0), "A1")
	is.Equal(PosName(4), "B2")
	is.Equal(PosName(8), "C3")
}
