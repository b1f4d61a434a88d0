package client_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/corvid-games/zugzwang/pkg/board"
	"github.com/corvid-games/zugzwang/pkg/client"
	"github.com/corvid-games/zugzwang/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientMoveNeeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"needed": true}`)
	}))
	defer srv.Close()

	c := client.New(srv.URL, "game1")
	needed, err := c.MoveNeeded(context.Background())
	require.NoError(t, err)
	assert.True(t, needed)
}

func TestClientBoardDecodesServerCellEncoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// x=0,y=0 -> -1 (black); x=1,y=0 -> 1 (white); x=2,y=0 -> 0 (empty)
		grid := `{"boards": [[[-1, 1, 0, 0, 0, 0, 0, 0],[0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0]]]}`
		fmt.Fprint(w, grid)
	}))
	defer srv.Close()

	c := client.New(srv.URL, "game1")
	b, err := c.Board(context.Background())
	require.NoError(t, err)

	assert.True(t, b.Players[board.Black].IsSet(board.XYToMove(0, 0)))
	assert.True(t, b.Players[board.White].IsSet(board.XYToMove(1, 0)))
	assert.False(t, b.Players[board.White].IsSet(board.XYToMove(2, 0)))
	assert.False(t, b.Players[board.Black].IsSet(board.XYToMove(2, 0)))
}

func TestClientDoMoveURLOrderIsYThenX(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	c := client.New(srv.URL, "game1")
	m := board.XYToMove(2, 5) // x=2, y=5
	err := c.DoMove(context.Background(), m)
	require.NoError(t, err)

	assert.Equal(t, "/move/game1/5/2", gotPath)
}

func TestRunPicksAndPostsMoveWhenNeeded(t *testing.T) {
	var moveCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/move_needed/g", func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&moveCalls) == 0 {
			fmt.Fprint(w, `{"needed": true}`)
		} else {
			fmt.Fprint(w, `{"needed": false}`)
		}
	})
	mux.HandleFunc("/boards/g", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"boards": [[[0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0],[0,0,0,1,-1,0,0,0],[0,0,0,-1,1,0,0,0],[0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0],[0,0,0,0,0,0,0,0]]]}`)
	})
	mux.HandleFunc("/move/g/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&moveCalls, 1)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := client.New(srv.URL, "g")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	pick := func(ctx context.Context, b board.Board, player board.Color) (board.Square, eval.Score) {
		moves := board.GenMoves(b, player)
		return board.FirstMove(&moves), 0
	}

	_ = client.Run(ctx, c, board.White, pick)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&moveCalls), int32(1))
}
