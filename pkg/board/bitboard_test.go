package board_test

import (
	"testing"

	"github.com/corvid-games/zugzwang/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestBitboard(t *testing.T) {
	t.Run("popcount", func(t *testing.T) {
		tests := []struct {
			bb       board.Bitboard
			expected int
		}{
			{board.EmptyBitboard, 0},
			{board.BitMask(27), 1},
			{board.BitMask(27) | board.BitMask(36), 2},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.bb.PopCount())
		}
	})

	t.Run("string", func(t *testing.T) {
		bb := board.BitMask(board.XYToMove(0, 0))
		assert.Equal(t, "--------/--------/--------/--------/--------/--------/--------/X-------", bb.String())
	})

	t.Run("first move clears lowest bit", func(t *testing.T) {
		bb := board.BitMask(5) | board.BitMask(10)
		m := board.FirstMove(&bb)
		assert.EqualValues(t, 5, m)
		assert.Equal(t, board.BitMask(10), bb)
	})
}

func TestCoordinates(t *testing.T) {
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			m := board.XYToMove(x, y)
			gotX, gotY := board.MoveToXY(m)
			assert.Equal(t, x, gotX)
			assert.Equal(t, y, gotY)
		}
	}
	for m := board.ZeroSquare; m < board.NumSquares; m++ {
		x, y := board.MoveToXY(m)
		assert.Equal(t, m, board.XYToMove(x, y))
	}
}

func TestMoveToString(t *testing.T) {
	assert.Equal(t, "a1", board.MoveToString(board.XYToMove(0, 0)))
	assert.Equal(t, "h8", board.MoveToString(board.XYToMove(7, 7)))
	assert.Equal(t, "--", board.MoveToString(board.NoMove))
}

func TestGenMovesOpeningPosition(t *testing.T) {
	b := board.Initial()

	moves := board.GenMoves(b, board.Black)
	assert.Equal(t, moves&(b.Players[board.White]|b.Players[board.Black]), board.EmptyBitboard)

	var got []string
	tmp := moves
	for tmp != 0 {
		got = append(got, board.MoveToString(board.FirstMove(&tmp)))
	}
	assert.ElementsMatch(t, []string{"c4", "d3", "e6", "f5"}, got)
}

func TestMakeMoveFlipsAndIncrementsCount(t *testing.T) {
	b := board.Initial()
	before := b.StoneCount()

	moves := board.GenMoves(b, board.Black)
	m := board.FirstMove(&moves)

	after := board.MakeMove(b, m, board.Black)

	assert.True(t, after.IsDisjoint())
	assert.Equal(t, before+1, after.StoneCount())
	assert.NotEqual(t, b.Players[board.White], after.Players[board.White])
}

func TestMakeMovePass(t *testing.T) {
	b := board.Initial()
	after := board.MakeMove(b, board.NoMove, board.Black)
	assert.Equal(t, b, after)
}

func TestSetCell(t *testing.T) {
	var b board.Board
	b = b.SetCell(10, board.White)
	assert.True(t, b.Players[board.White].IsSet(10))

	b = b.SetCell(10, board.Black)
	assert.False(t, b.Players[board.White].IsSet(10))
	assert.True(t, b.Players[board.Black].IsSet(10))

	b = b.SetCell(10, board.NoColor)
	assert.False(t, b.Players[board.White].IsSet(10))
	assert.False(t, b.Players[board.Black].IsSet(10))
}

func TestGenFrontiersSubsetOfOwnStones(t *testing.T) {
	b := board.Initial()
	frontier := board.GenFrontiers(b, board.White)
	assert.Equal(t, frontier, frontier&b.Players[board.White])
	assert.Equal(t, b.Players[board.White], frontier) // all 2 starting stones are frontier stones
}
