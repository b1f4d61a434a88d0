// Package spectate broadcasts each decision the engine makes to any number
// of connected websocket spectators, so a live game against the server can
// be watched. Wires github.com/gorilla/websocket -- otherwise only an
// indirect dependency, pulled in transitively by the livechess EBoard feed
// client -- into a directly-imported component of its own; the
// feed/event-channel shape is adapted from that same livechess client.
package spectate

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/corvid-games/zugzwang/pkg/board"
	"github.com/corvid-games/zugzwang/pkg/eval"
	"github.com/gorilla/websocket"
	"github.com/seekerror/logw"
)

// Frame is one broadcast update: the move just played, its search score,
// and the resulting board.
type Frame struct {
	Move  string      `json:"move"`
	Score eval.Score  `json:"score"`
	Board [8][8]int8  `json:"board"`
	Turn  board.Color `json:"turn"`
}

// NewFrame encodes b (after m was played) as a Frame. The board is encoded
// 0/1/2 per cell (empty/white/black) -- unlike the game-server's own
// {-1,0,1} wire convention, since this is our own spectator protocol, not
// api.cpp's.
func NewFrame(m board.Square, score eval.Score, b board.Board, turn board.Color) Frame {
	var f Frame
	f.Move = board.MoveToString(m)
	f.Score = score
	f.Turn = turn
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			sq := board.XYToMove(x, y)
			switch {
			case b.Players[board.White].IsSet(sq):
				f.Board[x][y] = 1
			case b.Players[board.Black].IsSet(sq):
				f.Board[x][y] = 2
			default:
				f.Board[x][y] = 0
			}
		}
	}
	return f
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans Frame broadcasts out to every connected spectator. The zero
// value is not usable; construct with NewHub.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

// ServeHTTP upgrades the request to a websocket and registers it as a
// spectator until the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logw.Warningf(r.Context(), "spectate: upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	// Spectators are read-only: we only need to notice when they go away,
	// so discard whatever (if anything) they send until the read errors.
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast sends f to every connected spectator, dropping any connection
// that fails to accept it.
func (h *Hub) Broadcast(ctx context.Context, f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		logw.Warningf(ctx, "spectate: marshal frame failed: %v", err)
		return
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(c)
		}
	}
}

// Count returns the number of currently connected spectators.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
