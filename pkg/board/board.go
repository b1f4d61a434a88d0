package board

import "fmt"

// NoColor is the sentinel passed to SetCell to mark a square empty.
const NoColor Color = 255

// Board is the full Othello position: one bitboard per player. Bit i of
// Players[p] is set iff square i is occupied by player p. The invariant
// Players[White]&Players[Black] == 0 must always hold. A small value type,
// copied by value across recursion the same way the original C++ board_t is
// copied by value in minimax.
type Board struct {
	Players [2]Bitboard
}

// Initial returns the standard Othello starting position: d4/e5 for White,
// d5/e4 for Black (0-indexed squares d4=27, e4=28, d5=35, e5=36).
func Initial() Board {
	var b Board
	b.Players[White] = BitMask(XYToMove(3, 3)) | BitMask(XYToMove(4, 4))
	b.Players[Black] = BitMask(XYToMove(3, 4)) | BitMask(XYToMove(4, 3))
	return b
}

// SetCell sets square m to color c, or clears it if c == NoColor.
func (b Board) SetCell(m Square, c Color) Board {
	switch c {
	case NoColor:
		b.Players[White] &^= BitMask(m)
		b.Players[Black] &^= BitMask(m)
	case White:
		b.Players[White] |= BitMask(m)
		b.Players[Black] &^= BitMask(m)
	case Black:
		b.Players[Black] |= BitMask(m)
		b.Players[White] &^= BitMask(m)
	}
	return b
}

// StoneCount returns the total number of occupied squares.
func (b Board) StoneCount() int {
	return b.Players[White].PopCount() + b.Players[Black].PopCount()
}

// IsDisjoint reports whether the two player bitboards share no squares, the
// core board invariant.
func (b Board) IsDisjoint() bool {
	return b.Players[White]&b.Players[Black] == 0
}

func (b Board) String() string {
	return fmt.Sprintf("board{white=%d, black=%d}", b.Players[White].PopCount(), b.Players[Black].PopCount())
}
