package search

import (
	"context"
	"errors"
	"time"

	"github.com/corvid-games/zugzwang/pkg/board"
	"github.com/corvid-games/zugzwang/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// ErrHalted is returned (wrapped nowhere, compared with errors.Is) by a
// negamax call that gave up mid-subtree because its time budget expired or
// its context was canceled. It propagates straight up through the
// recursion: the iterative-deepening driver (GetMove) is the only caller
// that should ever observe it, and it always discards the in-progress
// iteration rather than trusting a partial result.
var ErrHalted = errors.New("search: halted")

// TimeCheckBoards is how many nodes the search visits between checks of
// the deadline/context. Checking every node would make the clock call
// dominate runtime; original_source/src/minimax.cpp polls every two
// million boards for the same reason.
const TimeCheckBoards = 2_000_000

// run carries the mutable state threaded through one GetMove call's
// recursion: the shared tables, the node counter, and the deadline. It is
// not safe for concurrent use, matching Table and ZobristTable.
type run struct {
	ctx      context.Context
	zt       *ZobristTable
	tt       *Table
	deadline time.Time
	nodes    uint64
}

func (r *run) timeUp() bool {
	if contextx.IsCancelled(r.ctx) {
		return true
	}
	return time.Now().After(r.deadline)
}

// negamax scores board from the perspective of player, searching depth
// plies deeper, within window (alpha, beta). moveToMake, if not
// board.NoMove, is applied to board first -- using the color of whoever
// is NOT player, since by construction the move was chosen by the
// opponent one ply up and player already names whoever moves next.
// (original_source's recursion applies moveToMake with the opposite
// color of its player argument; this implementation follows that.)
func (r *run) negamax(b board.Board, moveToMake board.Square, depth int, alpha, beta eval.Score, player board.Color) (eval.Score, board.Square, error) {
	r.nodes++
	if r.nodes%TimeCheckBoards == 0 && r.timeUp() {
		return 0, board.NoMove, ErrHalted
	}

	origAlpha := alpha

	if moveToMake != board.NoMove {
		b = board.MakeMove(b, moveToMake, player.Opponent())
	}

	sign := eval.Score(1)
	if player == board.Black {
		sign = -1
	}

	moves0 := board.GenMoves(b, board.White)
	moves1 := board.GenMoves(b, board.Black)

	if moves0 == 0 && moves1 == 0 {
		return sign * eval.IsTerminal(b, moves0, moves1), board.NoMove, nil
	}
	if depth == 0 {
		return sign * eval.Evaluate(b, moves0, moves1), board.NoMove, nil
	}

	var hintMove board.Square = board.NoMove
	hash := r.zt.Hash(b)
	if entry, ok := r.tt.Read(hash, b); ok {
		if int(entry.Depth) >= depth {
			switch entry.Bound() {
			case Exact:
				return entry.Value, entry.BestMove, nil
			case Lower:
				alpha = eval.Max(alpha, entry.Value)
			case Upper:
				beta = eval.Min(beta, entry.Value)
			}
			if alpha >= beta {
				return entry.Value, entry.BestMove, nil
			}
		} else {
			hintMove = entry.BestMove
		}
	}

	myMoves := moves0
	if player == board.Black {
		myMoves = moves1
	}

	value := eval.MinScore
	bestMove := board.NoMove

	if myMoves == 0 {
		child, _, err := r.negamax(b, board.NoMove, depth-1, -beta, -alpha, player.Opponent())
		if err != nil {
			return 0, board.NoMove, err
		}
		value = -child
	} else {
		hintUsed := board.NoMove
		hint := hintMove
		remaining := myMoves
		for remaining != 0 || hint != board.NoMove {
			var m board.Square
			if hint != board.NoMove {
				m = hint
				hintUsed = hint
				hint = board.NoMove
			} else {
				m = board.FirstMove(&remaining)
				if m == hintUsed {
					continue
				}
			}

			child, _, err := r.negamax(b, m, depth-1, -beta, -alpha, player.Opponent())
			if err != nil {
				return 0, board.NoMove, err
			}
			child = -child

			if child > value {
				value = child
				bestMove = m
			}
			alpha = eval.Max(alpha, value)
			if alpha >= beta {
				break
			}
		}
	}

	bound := Exact
	switch {
	case value <= origAlpha:
		bound = Upper
	case value >= beta:
		bound = Lower
	}
	r.tt.Write(hash, newEntry(b, value, uint8(depth), bestMove, bound))

	return value, bestMove, nil
}
