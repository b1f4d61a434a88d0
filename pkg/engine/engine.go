// Package engine ties together board, eval, and search into the decision
// driver that a client (console, HTTP poller, CLI) actually calls: one
// long-lived transposition table and Zobrist key table, reused move after
// move, with a heuristic to detect "this is actually a new game" and wipe
// them.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/corvid-games/zugzwang/pkg/board"
	"github.com/corvid-games/zugzwang/pkg/eval"
	"github.com/corvid-games/zugzwang/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine creation options.
type Options struct {
	// Hash is the transposition table size. The table is presently always
	// the fixed search.TableSize; this field is kept for a consistent
	// options shape and for future tuning, and is presently advisory only.
	Hash uint
	// SearchTime is the per-move time budget.
	SearchTime time.Duration
}

func (o Options) String() string {
	return fmt.Sprintf("{hash=%v, searchTime=%v}", o.Hash, o.SearchTime)
}

// Engine encapsulates Othello game-playing logic: the long-lived search
// tables and the new-game heuristic around them. Concurrent GetMove calls
// are serialized by the mutex here: the underlying search.Table and
// search.ZobristTable are themselves unsynchronized, so searches run one
// at a time, never in parallel.
type Engine struct {
	name, author string
	opts         Options

	tt *search.Table
	zt *search.ZobristTable

	stats Stats

	// lastStones remembers the stone count of the previous GetMove call's
	// board plus one (for the move it returned), used to detect a new game: Othello always starts at 4 stones and
	// gains exactly one per ply, so an unexpected drop or a large jump
	// means the caller handed us a different game, not a continuation.
	lastStones int
	haveLast   bool

	mu sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithZobrist configures the engine to use the given random seed instead of
// the default seed of zero.
func WithZobrist(seed int64) Option {
	return func(e *Engine) {
		e.zt = search.NewZobristTable(seed)
	}
}

// New constructs an Engine with a fresh transposition table.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:   name,
		author: author,
		opts:   Options{SearchTime: 5 * time.Second},
		tt:     search.NewTable(),
	}
	for _, fn := range opts {
		fn(e)
	}
	if e.zt == nil {
		e.zt = search.NewZobristTable(0)
	}

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetSearchTime(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.SearchTime = d
}

// Stats returns the counters from the most recently completed GetMove call.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.stats
}

// newGameStoneDelta bounds how much the stone count may legitimately drift
// between two consecutive GetMove calls in the same game: one stone added
// per ply, so a handful of plies played by the opponent between our own
// moves is expected, but any larger jump means this is a different game.
const newGameStoneDelta = 5

// Reset forgets the transposition table and the remembered stone count,
// starting the engine over as if for a brand new game.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v", e.Name())
	e.tt.Clear()
	e.haveLast = false
}

// GetMove picks a move for player on b, within the engine's configured
// search time budget. It ages and, if the position looks like the start
// of a new game, clears the transposition table before searching; the
// caller must pass the board it actually wants evaluated (the engine keeps
// no position of its own between calls).
func (e *Engine) GetMove(ctx context.Context, b board.Board, player board.Color) (board.Square, eval.Score) {
	e.mu.Lock()
	defer e.mu.Unlock()

	stones := b.StoneCount()
	if e.haveLast && abs(stones-e.lastStones) > newGameStoneDelta {
		logw.Infof(ctx, "Detected new game (stones %v -> %v), clearing table", e.lastStones, stones)
		e.tt.Clear()
	}
	e.tt.Age()

	res := search.GetMove(ctx, b, player, e.tt, e.zt, e.opts.SearchTime)

	e.stats = Stats{Visited: res.Nodes, Depth: res.Depth}
	e.lastStones = b.StoneCount() + 1 // +1: the move we're about to return will be played
	e.haveLast = true

	logw.Infof(ctx, "Move %v: score=%v, %v", board.MoveToString(res.Move), res.Score, e.stats)
	return res.Move, res.Score
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
