// Package board contains the Othello bitboard representation, move
// generation, move application and coordinate helpers.
package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a 64-bit word where bit i represents square i of the 8x8 board.
// Bit 0 = a1, bit 63 = h8.
type Bitboard uint64

const EmptyBitboard Bitboard = 0

// shift masks prevent wraparound between rows when shifting east/west.
const (
	shiftWMask Bitboard = 0xFEFEFEFEFEFEFEFE
	shiftEMask Bitboard = 0x7F7F7F7F7F7F7F7F
)

func shiftN(b Bitboard) Bitboard  { return b << 8 }
func shiftS(b Bitboard) Bitboard  { return b >> 8 }
func shiftW(b Bitboard) Bitboard  { return (b << 1) & shiftWMask }
func shiftE(b Bitboard) Bitboard  { return (b >> 1) & shiftEMask }
func shiftNW(b Bitboard) Bitboard { return shiftW(shiftN(b)) }
func shiftNE(b Bitboard) Bitboard { return shiftE(shiftN(b)) }
func shiftSW(b Bitboard) Bitboard { return shiftW(shiftS(b)) }
func shiftSE(b Bitboard) Bitboard { return shiftE(shiftS(b)) }

// directions lists the eight shift primitives paired with their inverse, used
// both by move generation (direction only) and frontier computation
// (direction + inverse).
var directions = [8]struct {
	shift, inverse func(Bitboard) Bitboard
}{
	{shiftN, shiftS},
	{shiftS, shiftN},
	{shiftW, shiftE},
	{shiftE, shiftW},
	{shiftNW, shiftSE},
	{shiftNE, shiftSW},
	{shiftSW, shiftNE},
	{shiftSE, shiftNW},
}

// IsSet returns true iff square sq is set in b.
func (b Bitboard) IsSet(sq Square) bool {
	return b&BitMask(sq) != 0
}

// PopCount returns the number of set bits in b.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// BitMask returns a bitboard with only the given square populated.
func BitMask(sq Square) Bitboard {
	return Bitboard(1) << sq
}

// FirstMove returns the index of the lowest set bit in *b and clears it. The
// caller is expected to iterate by repeated calls until *b is empty. Panics
// if *b is empty, matching the precondition of
// original_source/src/bitboard.cpp's bitboard_get_and_clear_first_move.
func FirstMove(b *Bitboard) Square {
	if *b == 0 {
		panic("board: FirstMove of empty bitboard")
	}
	m := Square(bits.TrailingZeros64(uint64(*b)))
	*b &^= BitMask(m)
	return m
}

func (b Bitboard) String() string {
	var sb strings.Builder
	for y := 7; y >= 0; y-- {
		for x := 0; x < 8; x++ {
			if b.IsSet(XYToMove(x, y)) {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('-')
			}
		}
		if y != 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// GenMoves returns the bitboard of legal destination squares for color on
// board. For each of the eight directions, it walks through contiguous runs
// of the opponent's stones adjacent to color's stones and marks the empty
// square just beyond each run as a legal move. Guarantees: the result is a
// subset of the empty squares, and contains exactly the legal Othello moves
// for color.
func GenMoves(b Board, color Color) Bitboard {
	us := b.Players[color]
	them := b.Players[color.Opponent()]
	empty := ^(us | them)

	var moves Bitboard
	for _, d := range directions {
		t := d.shift(us) & them
		for i := 0; i < 5; i++ {
			t |= d.shift(t) & them
		}
		moves |= d.shift(t) & empty
	}
	return moves
}

// GenFrontiers returns the bitboard of color's stones that are adjacent (in
// any of the eight directions) to an empty square.
func GenFrontiers(b Board, color Color) Bitboard {
	us := b.Players[color]
	empty := ^(b.Players[White] | b.Players[Black])

	var frontier Bitboard
	for _, d := range directions {
		frontier |= d.inverse(d.shift(us) & empty)
	}
	return frontier
}

// MakeMove applies move m for color to b and returns the resulting board,
// flipping every contiguous opponent run that m closes off. If m is NoMove,
// b is returned unchanged -- this represents a player with no legal moves
// passing the turn.
func MakeMove(b Board, m Square, color Color) Board {
	if m == NoMove {
		return b
	}

	move := BitMask(m)
	us := b.Players[color]
	them := b.Players[color.Opponent()]

	us |= move
	for _, d := range directions {
		captures := d.shift(move) & them
		for i := 0; i < 5; i++ {
			captures |= d.shift(captures) & them
		}
		if d.shift(captures)&us != 0 {
			us |= captures
			them &^= captures
		}
	}

	b.Players[color] = us
	b.Players[color.Opponent()] = them
	return b
}
