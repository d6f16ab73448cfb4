package gameio

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/capgrid/board"
)

func TestParseInput(t *testing.T) {
	is := is.New(t)
	in, err := ParseInput(strings.NewReader("3\n1 2 3\n4 5 6\n7 0 1\n"))
	is.NoErr(err)
	is.Equal(in.MaxDepth, 3)
	is.Equal(in.Board, board.FromCells([board.NumCells]uint8{1, 2, 3, 4, 5, 6, 7, 0, 1}))
}

func TestParseInputTolerance(t *testing.T) {
	type testcase struct {
		name  string
		input string
		depth int
		cells [board.NumCells]uint8
	}
	cases := []testcase{
		{"one line of cells", "20\n0 0 0 0 0 0 0 0 0\n", 20,
			[board.NumCells]uint8{}},
		{"junk tokens skipped", "1\nfoo 1 -2 2 x3 3\n4 5\n\n6 7 bar 1 2\n", 1,
			[board.NumCells]uint8{1, 2, 3, 4, 5, 6, 7, 1, 2}},
		{"extra values ignored", "2\n1 1 1 1 1 1 1 1 1 9 9 9\n", 2,
			[board.NumCells]uint8{1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{"wide values masked", "0\n8 9 15 0 0 0 0 0 0\n", 0,
			[board.NumCells]uint8{0, 1, 7, 0, 0, 0, 0, 0, 0}},
		{"depth whitespace", "  5 \t\r\n1 2 3 4 5 6 0 0 0", 5,
			[board.NumCells]uint8{1, 2, 3, 4, 5, 6, 0, 0, 0}},
		{"byte order mark", "\ufeff4\n0 0 0 0 1 0 0 0 0\n", 4,
			[board.NumCells]uint8{0, 0, 0, 0, 1, 0, 0, 0, 0}},
		{"leading plus sign", "+2\n+1 2 3 4 5 6 7 1 2 3\n", 2,
			[board.NumCells]uint8{1, 2, 3, 4, 5, 6, 7, 1, 2}},
		{"only one plus sign", "1\n++1 + 1 2 3 4 5 6 7 1 2\n", 1,
			[board.NumCells]uint8{1, 2, 3, 4, 5, 6, 7, 1, 2}},
		{"no final newline", "3\n1 2 3 4 5 6 7 1 2", 3,
			[board.NumCells]uint8{1, 2, 3, 4, 5, 6, 7, 1, 2}},
		{"windows line endings", "7\r\n1 0 0\r\n0 0 0\r\n0 0 2\r\n", 7,
			[board.NumCells]uint8{1, 0, 0, 0, 0, 0, 0, 0, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := ParseInput(strings.NewReader(tc.input))
			assert.NoError(t, err)
			if assert.NotNil(t, in) {
				assert.Equal(t, tc.depth, in.MaxDepth)
				assert.Equal(t, board.FromCells(tc.cells), in.Board)
			}
		})
	}
}

func TestParseInputLongLine(t *testing.T) {
	is := is.New(t)
	junk := strings.Repeat("junk ", 40000)
	in, err := ParseInput(strings.NewReader("6\n" + junk + "1 2 3 4 5 6 7 1 2\n"))
	is.NoErr(err)
	is.Equal(in.MaxDepth, 6)
	is.Equal(in.Board.String(), "123/456/712")
}

func TestParseInputErrors(t *testing.T) {
	is := is.New(t)
	_, err := ParseInput(strings.NewReader(""))
	is.True(errors.Is(err, ErrMissingDepth))

	_, err = ParseInput(strings.NewReader("abc\n0 0 0 0 0 0 0 0 0\n"))
	is.True(errors.Is(err, ErrBadDepth))

	_, err = ParseInput(strings.NewReader("-1\n0 0 0 0 0 0 0 0 0\n"))
	is.True(errors.Is(err, ErrBadDepth))

	// depth and cells on the same line is not a depth line
	_, err = ParseInput(strings.NewReader("3 0 0 0 0 0 0 0 0 0\n"))
	is.True(errors.Is(err, ErrBadDepth))

	_, err = ParseInput(strings.NewReader("3\n1 2 3\n4 5\n"))
	is.True(errors.Is(err, ErrNotEnoughCells))
	is.True(strings.Contains(err.Error(), "got 5"))
}

func TestWriteResult(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	is.NoErr(WriteResult(&buf, 111111111))
	is.Equal(buf.String(), "111111111\n")
}
