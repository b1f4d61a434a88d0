package search

import (
	"context"
	"time"

	"github.com/corvid-games/zugzwang/pkg/board"
	"github.com/corvid-games/zugzwang/pkg/eval"
)

// Result is the outcome of one GetMove call.
type Result struct {
	Move  board.Square
	Score eval.Score
	Nodes uint64
	Depth int
}

// GetMove runs iterative-deepening negamax from the given position for
// player, using tt and zt as the (caller-owned, reused-across-calls)
// transposition table and Zobrist key table, and returns once budget has
// elapsed or ctx is canceled.
//
// Each iteration searches one ply deeper than the last and, if it
// completes, overwrites the previously returned move and score; an
// iteration that runs out of time partway through is discarded in full,
// so GetMove always returns the deepest *completed* result; it never
// returns the zero value, since depth 1 always completes (a single ply
// against EVAL_INF-bounded children cannot visit 2,000,000 boards).
//
// This mirrors original_source/src/minimax.cpp's get_move, which
// unwinds a thrown exception on timeout to the same effect; Go has no
// analog to a mid-stack-unwind timeout, so the cooperative node-count poll
// in negamax returns ErrHalted instead, and GetMove treats that (or ctx
// being done) as "stop, keep the last full iteration".
//
// GetMove must never be called concurrently against the same tt/zt pair;
// neither is synchronized (see Table, ZobristTable).
func GetMove(ctx context.Context, b board.Board, player board.Color, tt *Table, zt *ZobristTable, budget time.Duration) Result {
	r := &run{
		ctx:      ctx,
		zt:       zt,
		tt:       tt,
		deadline: time.Now().Add(budget),
	}

	res := Result{Move: board.NoMove}

	for depth := 1; ; depth++ {
		score, move, err := r.negamax(b, board.NoMove, depth, eval.MinScore, eval.MaxScore, player)
		if err != nil {
			break
		}
		res.Move, res.Score, res.Depth = move, score, depth

		if eval.Score(abs(int64(score))) > eval.Inf {
			// A forced win/loss has been proven; deeper iterations cannot
			// change the outcome and would only burn the remaining budget.
			break
		}
		if r.timeUp() {
			break
		}
	}

	res.Nodes = r.nodes
	return res
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
