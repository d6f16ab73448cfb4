package solver

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/domino14/capgrid/board"
	"github.com/domino14/capgrid/movegen"
)

const (
	// cancelCheckInterval is how many nodes are visited between context checks.
	cancelCheckInterval = 4096
	maxBufferedPlies    = 256
)

// MemoSolver walks the move tree depth-first. The checksum of a node is
// its board hash when it is terminal, and otherwise the sum of its
// children's checksums; results are cached per (state, depth).
type MemoSolver struct {
	gen    movegen.MoveGenerator
	ttable *TranspositionTable

	maxPower         int
	fractionOfMemory float64

	maxDepth int
	nodes    uint64
	ctx      context.Context
	// one child buffer per ply so recursion does not reallocate
	buffers []movegen.Children
}

var _ Solver = (*MemoSolver)(nil)

func NewMemoSolver(gen movegen.MoveGenerator) *MemoSolver {
	return &MemoSolver{
		gen:              gen,
		ttable:           &TranspositionTable{},
		maxPower:         MaxTablePower,
		fractionOfMemory: 0.25,
	}
}

// SetTableLimits bounds the memo table to 2^maxPower entries and to the
// given fraction of system memory.
func (s *MemoSolver) SetTableLimits(maxPower int, fractionOfMemory float64) {
	s.maxPower = maxPower
	s.fractionOfMemory = fractionOfMemory
}

func (s *MemoSolver) TableStats() TableStats {
	return s.ttable.Stats()
}

func (s *MemoSolver) Nodes() uint64 {
	return s.nodes
}

func (s *MemoSolver) Solve(ctx context.Context, root board.State, maxDepth int) (uint32, error) {
	s.ttable.Reset(TablePowerForDepth(maxDepth, s.maxPower), s.fractionOfMemory)
	s.maxDepth = maxDepth
	s.nodes = 0
	s.ctx = ctx
	s.buffers = make([]movegen.Children, min(maxDepth, maxBufferedPlies)+1)
	defer func() { s.ctx = nil }()

	result, err := s.checksum(root, 0)
	if err != nil {
		return 0, err
	}
	ts := s.ttable.Stats()
	log.Debug().
		Uint64("nodes", s.nodes).
		Uint64("tt-lookups", ts.Lookups).
		Uint64("tt-hits", ts.Hits).
		Uint64("tt-collisions", ts.Collisions).
		Msg("memo-solve-done")
	return result, nil
}

func (s *MemoSolver) checksum(st board.State, depth int) (uint32, error) {
	s.nodes++
	if s.nodes%cancelCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			return 0, err
		}
	}
	if depth == s.maxDepth || st.IsFull() {
		return st.Hash(), nil
	}
	if r, ok := s.ttable.lookup(st, depth); ok {
		return r, nil
	}

	kids := s.childBuffer(depth)
	s.gen.ExpandAll(st, 1, kids)

	var result uint32
	// deeper plies fill their own buffers, so kids stays intact here
	for _, k := range *kids {
		r, err := s.checksum(k.State, depth+1)
		if err != nil {
			return 0, err
		}
		result = (result + r) & board.ModMask
	}
	s.ttable.store(st, depth, result)
	return result, nil
}

func (s *MemoSolver) childBuffer(depth int) *movegen.Children {
	if depth >= len(s.buffers) {
		return &movegen.Children{}
	}
	b := &s.buffers[depth]
	b.Reset()
	return b
}
