// zugzwang is an Othello engine. With no -url flag it speaks a line-based
// console protocol on stdin/stdout for local debugging. With -url it
// instead plays against a game server using an HTTP polling protocol:
// URL, KEY, NAME and a per-move search time in seconds.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/corvid-games/zugzwang/pkg/board"
	"github.com/corvid-games/zugzwang/pkg/client"
	"github.com/corvid-games/zugzwang/pkg/client/spectate"
	"github.com/corvid-games/zugzwang/pkg/engine"
	"github.com/corvid-games/zugzwang/pkg/engine/console"
	"github.com/corvid-games/zugzwang/pkg/eval"
	"github.com/seekerror/logw"
)

var (
	url           = flag.String("url", "", "Game server URL. If set, play against it instead of reading the console protocol from stdin")
	key           = flag.String("key", "", "Game key, required with -url")
	name          = flag.String("name", "zugzwang", "Display name announced to the game server")
	searchTime    = flag.Int("time", 5, "Per-move search time budget, in seconds")
	hash          = flag.Uint("hash", 0, "Reserved for future transposition table size tuning (currently fixed-size, see pkg/engine)")
	spectatorAddr = flag.String("spectate", "", "If set, serve a websocket spectator feed on this address (e.g. :8080)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: zugzwang [options]

ZUGZWANG is an Othello engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "zugzwang", "corvid-games",
		engine.WithOptions(engine.Options{Hash: *hash, SearchTime: time.Duration(*searchTime) * time.Second}))

	var hub *spectate.Hub
	if *spectatorAddr != "" {
		hub = spectate.NewHub()
		go func() {
			logw.Infof(ctx, "Spectator feed listening on %v", *spectatorAddr)
			if err := http.ListenAndServe(*spectatorAddr, hub); err != nil {
				logw.Warningf(ctx, "Spectator feed stopped: %v", err)
			}
		}()
	}

	if *url != "" {
		if *key == "" {
			flag.Usage()
			logw.Exitf(ctx, "-key is required with -url")
		}
		runClient(ctx, e, hub)
		return
	}

	in := engine.ReadStdinLines(ctx)
	driver, out := console.NewDriver(ctx, e, in)
	go engine.WriteStdoutLines(ctx, out)

	<-driver.Closed()
}

func runClient(ctx context.Context, e *engine.Engine, hub *spectate.Hub) {
	c := client.New(*url, *key)
	if err := c.SetName(ctx, *name); err != nil {
		logw.Warningf(ctx, "set_name failed: %v", err)
	}

	pick := func(ctx context.Context, b board.Board, player board.Color) (board.Square, eval.Score) {
		m, score := e.GetMove(ctx, b, player)
		if hub != nil {
			hub.Broadcast(ctx, spectate.NewFrame(m, score, board.MakeMove(b, m, player), player.Opponent()))
		}
		return m, score
	}

	// The game server always addresses the engine as White (player 0),
	// matching original_source/src/driver.cpp's hardcoded player=0.
	if err := client.Run(ctx, c, board.White, pick); err != nil {
		logw.Infof(ctx, "Client stopped: %v", err)
	}
}
