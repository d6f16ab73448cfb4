package solver

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/cespare/xxhash"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/capgrid/board"
)

const entrySize = 12

const (
	// MaxTablePower caps the table at 2^21 entries unless configured
	// otherwise.
	MaxTablePower = 21
	minTablePower = 12
	validBit      = 1 << 31
	depthMask     = validBit - 1
)

// 12 bytes (entrySize)
type TableEntry struct {
	bits       board.State
	result     uint32
	depthValid uint32
}

func (t TableEntry) depth() int {
	return int(t.depthValid & depthMask)
}

func (t TableEntry) valid() bool {
	return t.depthValid&validBit != 0
}

// TranspositionTable is a direct-mapped cache of (state, depth) -> partial
// checksum. A newer entry always replaces whatever shares its slot, so the
// table never grows past its allocation.
type TranspositionTable struct {
	table        []TableEntry
	sizePowerOf2 int
	sizeMask     uint64

	created atomic.Uint64
	lookups atomic.Uint64
	hits    atomic.Uint64
	// slot held by a different (state, depth)
	collisions atomic.Uint64
}

// TablePowerForDepth picks the table size for a search of maxDepth plies:
// it doubles twice every five plies, from 2^12 up to maxPower.
func TablePowerForDepth(maxDepth, maxPower int) int {
	p := (maxDepth+4)/5*2 + minTablePower
	return min(p, maxPower)
}

// Reset sizes the table to 2^power entries, shrinking it if that would take
// more than fractionOfMemory of system memory, and clears it.
func (t *TranspositionTable) Reset(power int, fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	if totalMem > 0 && fractionOfMemory > 0 {
		allowed := int(math.Log2(fractionOfMemory * float64(totalMem) / entrySize))
		if allowed < power {
			log.Warn().Int("requested-power", power).Int("allowed-power", allowed).
				Msg("shrinking-memo-table")
			power = allowed
		}
	}
	if power < minTablePower {
		power = minTablePower
	}
	numElems := 1 << power
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}
	t.sizePowerOf2 = power
	t.sizeMask = uint64(numElems - 1)

	log.Debug().Int("num-elems", numElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("memo-table-size")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.collisions.Store(0)
}

func (t *TranspositionTable) index(s board.State, depth int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(s))
	binary.LittleEndian.PutUint32(buf[4:], uint32(depth))
	return xxhash.Sum64(buf[:]) & t.sizeMask
}

func (t *TranspositionTable) lookup(s board.State, depth int) (uint32, bool) {
	t.lookups.Add(1)
	e := t.table[t.index(s, depth)]
	if !e.valid() {
		return 0, false
	}
	if e.bits != s || e.depth() != depth {
		t.collisions.Add(1)
		return 0, false
	}
	t.hits.Add(1)
	return e.result, true
}

func (t *TranspositionTable) store(s board.State, depth int, result uint32) {
	t.table[t.index(s, depth)] = TableEntry{
		bits:       s,
		result:     result,
		depthValid: uint32(depth)&depthMask | validBit,
	}
	t.created.Add(1)
}

// TableStats reports usage counters since the last Reset.
type TableStats struct {
	Size       int    `yaml:"size"`
	Created    uint64 `yaml:"created"`
	Lookups    uint64 `yaml:"lookups"`
	Hits       uint64 `yaml:"hits"`
	Collisions uint64 `yaml:"collisions"`
}

func (t *TranspositionTable) Stats() TableStats {
	return TableStats{
		Size:       len(t.table),
		Created:    t.created.Load(),
		Lookups:    t.lookups.Load(),
		Hits:       t.hits.Load(),
		Collisions: t.collisions.Load(),
	}
}
