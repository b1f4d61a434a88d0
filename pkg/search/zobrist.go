package search

import (
	"math/rand"

	"github.com/corvid-games/zugzwang/pkg/board"
)

// ZobristHash is a 32-bit incremental XOR hash of a board position. The
// transposition table indexes on its low 24 bits (see Table); the extra 8
// bits do no verification work since Table.Read compares full boards, but
// keeping 32-bit keys costs nothing and matches original_source's sizing.
type ZobristHash uint32

// ZobristTable is a compile-time-seeded (deterministic, given a seed) table
// of per-(square, color) random 32-bit words, plus a derived table of
// per-(row, row-byte-pattern, color) precomputed XORs, so hashing a board
// costs 16 table lookups (8 rows * 2 colors) instead of 128 (64 squares * 2
// colors).
type ZobristTable struct {
	pieces  [64][board.NumColors]uint32
	rowHash [8][256][board.NumColors]uint32
}

// NewZobristTable builds the Zobrist key tables from the given seed. A fixed
// seed (e.g. 0) gives reproducible hashes across runs, as required for
// deterministic TT round-trip tests.
func NewZobristTable(seed int64) *ZobristTable {
	zt := &ZobristTable{}

	r := rand.New(rand.NewSource(seed))
	for sq := 0; sq < 64; sq++ {
		for c := board.ZeroColor; c < board.NumColors; c++ {
			zt.pieces[sq][c] = r.Uint32()
		}
	}

	for y := 0; y < 8; y++ {
		for row := 0; row < 256; row++ {
			for c := board.ZeroColor; c < board.NumColors; c++ {
				var h uint32
				for bit := 0; bit < 8; bit++ {
					if row&(1<<bit) != 0 {
						h ^= zt.pieces[y*8+bit][c]
					}
				}
				zt.rowHash[y][row][c] = h
			}
		}
	}
	return zt
}

// Hash computes the Zobrist hash of b: the XOR, over each row and color, of
// the row's precomputed hash for that row's occupied-square byte pattern.
func (zt *ZobristTable) Hash(b board.Board) ZobristHash {
	var hash uint32
	for y := 0; y < 8; y++ {
		for c := board.ZeroColor; c < board.NumColors; c++ {
			row := byte(b.Players[c] >> (8 * y))
			hash ^= zt.rowHash[y][row][c]
		}
	}
	return ZobristHash(hash)
}
