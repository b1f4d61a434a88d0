package search

import (
	"github.com/corvid-games/zugzwang/pkg/board"
	"github.com/corvid-games/zugzwang/pkg/eval"
)

// Bound records which side of the search window an Entry's Value is exact
// on, mirroring the classic alpha-beta TT cases.
type Bound uint8

const (
	Exact Bound = iota
	Lower
	Upper
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	default:
		return "?"
	}
}

const flagUsed uint8 = 1 << 0
const flagBoundShift = 1

// Entry is one transposition table slot: the exact board it was computed
// for (used to resolve index collisions, since the table is far smaller
// than the key space), the negamax value and the depth it was searched to,
// a move-ordering hint, the bound kind, and a replacement-policy age.
//
// Entries are keyed purely on board contents, not on which color is to
// move -- this matches original_source/src/hash_table.cpp exactly. In a
// well-formed game this is harmless since a given stone configuration is
// reached by only one side to move; it is a known simplification the
// reference engine accepts rather than doubling the table.
type Entry struct {
	Board    board.Board
	Value    eval.Score
	Depth    uint8
	BestMove board.Square
	Flags    uint8
	Age      uint8
}

func (e Entry) used() bool {
	return e.Flags&flagUsed != 0
}

// Bound extracts the entry's bound kind from its flags.
func (e Entry) Bound() Bound {
	return Bound((e.Flags >> flagBoundShift) & 0x3)
}

func newEntry(b board.Board, value eval.Score, depth uint8, bestMove board.Square, bound Bound) Entry {
	return Entry{
		Board:    b,
		Value:    value,
		Depth:    depth,
		BestMove: bestMove,
		Flags:    flagUsed | uint8(bound)<<flagBoundShift,
	}
}

// TableSize is the fixed entry count (2^24, HASH_TABLE_SIZE in
// original_source/src/hash_table.cpp): a direct-mapped table indexed by
// the low 24 bits of a ZobristHash, no chaining.
const TableSize = 1 << 24

const tableMask = TableSize - 1

// Table is the search's transposition table: a fixed-size, direct-mapped
// array of Entry, not safety-guarded by a mutex or an atomic pointer. That
// is deliberate, not an oversight: the engine serializes GetMove calls
// against one Table under its mutex (see pkg/engine), so there is never a data race
// to defend against, and original_source's single-threaded engine has the
// same property.
type Table struct {
	entries []Entry
	used    int
}

// NewTable allocates a fresh, empty transposition table.
func NewTable() *Table {
	return &Table{entries: make([]Entry, TableSize)}
}

func index(hash ZobristHash) uint32 {
	return uint32(hash) & tableMask
}

// Read looks up b (identified by hash) in the table. A hit requires both
// the index slot to be in use and its stored board to equal b exactly,
// since distinct boards can share an index. On a hit, the entry's age is
// reset to 0 (it was just demonstrably useful).
func (t *Table) Read(hash ZobristHash, b board.Board) (Entry, bool) {
	i := index(hash)
	e := &t.entries[i]
	if !e.used() || e.Board != b {
		return Entry{}, false
	}
	e.Age = 0
	return *e, true
}

// Write inserts e at its index slot, replacing whatever is there if the
// slot is unused, the new entry was searched deeper than the resident one,
// or the resident entry has gone stale (age >= 2 full iterations without a
// hit). Otherwise -- the new entry is no deeper and the resident one is
// fresh -- the resident entry is kept, whether or not it is for the same board.
func (t *Table) Write(hash ZobristHash, e Entry) {
	i := index(hash)
	slot := &t.entries[i]
	if !slot.used() {
		t.used++
	} else if e.Depth <= slot.Depth && slot.Age < 2 {
		return
	}
	*slot = e
}

// Age increments the age of every occupied slot, saturating at 255. Called
// once per search (see pkg/engine), it is how entries left untouched by
// recent searches become eligible for early replacement.
func (t *Table) Age() {
	for i := range t.entries {
		e := &t.entries[i]
		if e.used() && e.Age < 255 {
			e.Age++
		}
	}
}

// Clear empties every slot, forgetting all stored positions. The engine
// calls this when it detects the table has grown stale for a new game
// (see pkg/engine's new-game heuristic).
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
	t.used = 0
}

// LoadFactor returns the fraction of slots currently in use, in [0; 1].
func (t *Table) LoadFactor() float64 {
	return float64(t.used) / float64(len(t.entries))
}
