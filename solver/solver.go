// Package solver computes the path-weighted checksum of every position
// reachable from a starting board within a depth bound.
//
// Two engines are provided. LevelSolver advances a whole frontier one
// depth at a time, merging identical positions. MemoSolver walks the move
// tree depth-first and caches (position, depth) results in a bounded
// table. Both produce the same checksum.
package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/domino14/capgrid/board"
)

type Engine string

const (
	EngineLevels Engine = "levels"
	EngineMemo   Engine = "memo"
)

var (
	ErrUnknownEngine  = errors.New("unknown engine")
	ErrEngineMismatch = errors.New("engines disagree")
)

// A Solver returns the checksum for root searched to maxDepth plies.
type Solver interface {
	Solve(ctx context.Context, root board.State, maxDepth int) (uint32, error)
}

// fold adds ways copies of the board hash to acc.
func fold(acc uint32, s board.State, ways uint32) uint32 {
	return uint32((uint64(acc) + uint64(ways)*uint64(s.Hash())) & board.ModMask)
}

// Verify runs both engines and fails if they disagree.
func Verify(ctx context.Context, levels *LevelSolver, memo *MemoSolver,
	root board.State, maxDepth int) (uint32, error) {

	a, err := levels.Solve(ctx, root, maxDepth)
	if err != nil {
		return 0, err
	}
	b, err := memo.Solve(ctx, root, maxDepth)
	if err != nil {
		return 0, err
	}
	if a != b {
		return 0, fmt.Errorf("%w: levels=%d memo=%d", ErrEngineMismatch, a, b)
	}
	return a, nil
}
