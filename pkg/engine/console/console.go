// Package console implements a line-oriented debugging protocol for a
// zugzwang Engine: a channel of input lines in, a channel of output lines
// out, running on its own goroutine so a caller (a terminal, a test
// harness) never blocks on engine think time.
package console

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/corvid-games/zugzwang/pkg/board"
	"github.com/corvid-games/zugzwang/pkg/engine"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

const ProtocolName = "console"

// Driver owns the authoritative game state (board and side to move) for a
// console session; Engine keeps no position of its own between calls (see
// engine.Engine.GetMove's doc comment), so the driver is what remembers the
// position between "move" and "go" commands.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out chan<- string

	b    board.Board
	turn board.Color
}

// NewDriver starts a Driver reading commands from in and writing responses
// to the returned channel, until in is closed or the driver is closed.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
		b:           board.Initial(),
		turn:        board.Black, // Othello convention: Black moves first.
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard()

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Fields(line)
			if len(parts) == 0 {
				break
			}
			cmd, args := strings.ToLower(parts[0]), parts[1:]

			switch cmd {
			case "reset", "r":
				d.b = board.Initial()
				d.turn = board.Black
				d.e.Reset(ctx)
				d.printBoard()

			case "print", "p":
				d.printBoard()

			case "pass":
				d.b = board.MakeMove(d.b, board.NoMove, d.turn)
				d.turn = d.turn.Opponent()
				d.printBoard()

			case "go", "move":
				d.genMove(ctx)

			case "time":
				if len(args) > 0 {
					if secs, err := strconv.Atoi(args[0]); err == nil {
						d.e.SetSearchTime(time.Duration(secs) * time.Second)
					}
				}

			case "quit", "exit", "q":
				return

			case "":
				// ignore empty command

			default:
				// Assume a move square if not a recognized command.
				d.playMove(cmd)
			}

		case <-d.Closed():
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) playMove(s string) {
	m, err := board.ParseSquare(s)
	if err != nil {
		d.out <- fmt.Sprintf("invalid move: %q", s)
		return
	}

	legal := board.GenMoves(d.b, d.turn)
	if m != board.NoMove && !legal.IsSet(m) {
		d.out <- fmt.Sprintf("illegal move: %v", board.MoveToString(m))
		return
	}

	d.b = board.MakeMove(d.b, m, d.turn)
	d.turn = d.turn.Opponent()
	d.printBoard()
}

func (d *Driver) genMove(ctx context.Context) {
	legal := board.GenMoves(d.b, d.turn)
	if legal == board.EmptyBitboard {
		d.out <- fmt.Sprintf("%v has no legal move, passing", d.turn)
		d.b = board.MakeMove(d.b, board.NoMove, d.turn)
		d.turn = d.turn.Opponent()
		d.printBoard()
		return
	}

	m, score := d.e.GetMove(ctx, d.b, d.turn)
	d.out <- fmt.Sprintf("bestmove %v (score %v)", board.MoveToString(m), score)

	d.b = board.MakeMove(d.b, m, d.turn)
	d.turn = d.turn.Opponent()
	d.printBoard()
}

func (d *Driver) printBoard() {
	var buf bytes.Buffer
	board.Pretty(&buf, d.b)

	d.out <- ""
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		d.out <- line
	}
	d.out <- fmt.Sprintf("to move: %v, stones: %v, legal: %v", d.turn, d.b.StoneCount(), board.GenMoves(d.b, d.turn).PopCount())
	d.out <- ""
}
