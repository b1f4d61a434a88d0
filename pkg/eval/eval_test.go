package eval_test

import (
	"testing"

	"github.com/corvid-games/zugzwang/pkg/board"
	"github.com/corvid-games/zugzwang/pkg/eval"
	"github.com/stretchr/testify/assert"
)

func TestIsTerminal(t *testing.T) {
	t.Run("non-terminal returns zero", func(t *testing.T) {
		b := board.Initial()
		moves0 := board.GenMoves(b, board.White)
		moves1 := board.GenMoves(b, board.Black)
		assert.Equal(t, eval.Score(0), eval.IsTerminal(b, moves0, moves1))
	})

	t.Run("full board with 40-24 split scores 16*Inf", func(t *testing.T) {
		var b board.Board
		for sq := board.Square(0); sq < 40; sq++ {
			b = b.SetCell(sq, board.White)
		}
		for sq := board.Square(40); sq < 64; sq++ {
			b = b.SetCell(sq, board.Black)
		}
		assert.Equal(t, 40, b.Players[board.White].PopCount())
		assert.Equal(t, 24, b.Players[board.Black].PopCount())

		score := eval.IsTerminal(b, board.EmptyBitboard, board.EmptyBitboard)
		assert.Equal(t, 16*eval.Inf, score)
	})
}

func TestEvaluateWithinBounds(t *testing.T) {
	b := board.Initial()
	moves0 := board.GenMoves(b, board.White)
	moves1 := board.GenMoves(b, board.Black)

	score := eval.Evaluate(b, moves0, moves1)
	assert.Less(t, score, eval.MaxScore)
	assert.Greater(t, score, eval.MinScore)
}

func TestCropClampsToBounds(t *testing.T) {
	assert.Equal(t, eval.MaxScore, eval.Crop(eval.MaxScore+100))
	assert.Equal(t, eval.MinScore, eval.Crop(eval.MinScore-100))
	assert.Equal(t, eval.Score(5), eval.Crop(5))
}
