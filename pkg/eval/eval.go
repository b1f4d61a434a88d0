package eval

import "github.com/corvid-games/zugzwang/pkg/board"

// Corner/X-square/C-square masks used by the corner term. avoid1 is the four
// X-squares (diagonally adjacent to a corner); avoid2 is the eight C-squares
// (edge-adjacent to a corner), both traditionally disadvantageous to occupy
// before the corner itself is secured.
const (
	corners board.Bitboard = 0x8100000000000081
	avoid1  board.Bitboard = 0x0042000000004200
	avoid2  board.Bitboard = 0x4281000000008142
)

// material returns popcount(white) - popcount(black).
func material(b board.Board) int {
	return b.Players[board.White].PopCount() - b.Players[board.Black].PopCount()
}

// IsTerminal returns the terminal score (material * Inf) iff neither player
// has a legal move, and 0 otherwise. moves0/moves1 are the precomputed move
// sets for player 0/1 so callers that already generated them (the search
// hot path) don't duplicate the work.
func IsTerminal(b board.Board, moves0, moves1 board.Bitboard) Score {
	if moves0 == 0 && moves1 == 0 {
		return Score(material(b)) * Inf
	}
	return 0
}

func mobility(moves0, moves1 board.Bitboard) int {
	return moves0.PopCount() - moves1.PopCount()
}

func cornerScore(b board.Board) int {
	c0 := b.Players[board.White]
	c1 := b.Players[board.Black]
	return 10*(c0&corners).PopCount() - 10*(c1&corners).PopCount() -
		2*(c0&avoid1).PopCount() + 2*(c1&avoid1).PopCount() -
		1*(c0&avoid2).PopCount() + 1*(c1&avoid2).PopCount()
}

func frontierScore(b board.Board) int {
	return -board.GenFrontiers(b, board.White).PopCount() + board.GenFrontiers(b, board.Black).PopCount()
}

// Evaluate returns the composite static score of a non-terminal position,
// from player 0's perspective: 4*mobility + 4*corners, plus a frontier term
// during the midgame (total stone count < 40). Callers must check
// IsTerminal first; Evaluate does not special-case terminal positions.
// |Evaluate(...)| < MaxScore always holds.
func Evaluate(b board.Board, moves0, moves1 board.Bitboard) Score {
	value := 4*mobility(moves0, moves1) + 4*cornerScore(b)
	if b.StoneCount() < 40 {
		value += frontierScore(b)
	}
	return Score(value)
}
