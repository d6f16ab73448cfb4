// Package gameio reads a search request (a depth bound and a starting
// board) from text and writes the resulting checksum.
package gameio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/domino14/capgrid/board"
)

var (
	ErrMissingDepth   = errors.New("missing depth line")
	ErrBadDepth       = errors.New("depth must be a single unsigned integer")
	ErrNotEnoughCells = errors.New("expected 9 cell values")
)

// Input is a parsed search request.
type Input struct {
	MaxDepth int
	Board    board.State
}

// ParseInput reads the depth bound from the first line and the nine cell
// values from whatever follows. Cell tokens may be spread over any number
// of lines of any length; tokens that are not unsigned integers are
// skipped, and reading stops as soon as nine values are found. A leading
// UTF-8 byte order mark is ignored.
func ParseInput(r io.Reader) (*Input, error) {
	br := bufio.NewReader(transform.NewReader(r,
		unicode.BOMOverride(unicode.UTF8.NewDecoder())))

	line, err := readLine(br)
	if err == io.EOF && line == "" {
		return nil, ErrMissingDepth
	} else if err != nil && err != io.EOF {
		return nil, err
	}
	depthLine := strings.TrimSpace(line)
	depth, err := parseUnsigned(depthLine, 31)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadDepth, depthLine)
	}

	var cells [board.NumCells]uint8
	n := 0
	for n < board.NumCells {
		line, err := readLine(br)
		if err != nil && err != io.EOF {
			return nil, err
		}
		for _, tok := range strings.Fields(line) {
			v, perr := parseUnsigned(tok, 32)
			if perr != nil {
				log.Debug().Str("token", tok).Msg("skipping-token")
				continue
			}
			if v > board.MaxCellValue {
				log.Warn().Str("token", tok).Int("cell", n).Msg("cell-value-masked")
			}
			cells[n] = uint8(v)
			n++
			if n == board.NumCells {
				break
			}
		}
		if err == io.EOF {
			break
		}
	}
	if n < board.NumCells {
		return nil, fmt.Errorf("%w, got %d", ErrNotEnoughCells, n)
	}
	return &Input{MaxDepth: int(depth), Board: board.FromCells(cells)}, nil
}

// readLine returns the next line without its terminator. The last line of
// the input comes back together with io.EOF.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

// parseUnsigned accepts a decimal number with at most one leading '+'.
func parseUnsigned(tok string, bitSize int) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(tok, "+"), 10, bitSize)
}

// WriteResult prints the checksum on its own line.
func WriteResult(w io.Writer, result uint32) error {
	_, err := fmt.Fprintln(w, result)
	return err
}
