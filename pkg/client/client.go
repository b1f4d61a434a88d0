// Package client implements the HTTP game-server protocol an Othello
// engine polls: "is a move needed", "fetch the board", "post a move",
// "announce my name". Grounded on original_source/src/api.cpp/driver.cpp;
// no example repo in the corpus vendors a dependency for simple polling
// GET/POST, so this package uses net/http directly (see DESIGN.md's
// standard-library justification).
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/corvid-games/zugzwang/pkg/board"
	"github.com/corvid-games/zugzwang/pkg/eval"
	"github.com/seekerror/logw"
)

// Client talks to one game-server session (URL + game key).
type Client struct {
	BaseURL string
	Key     string

	HTTP *http.Client
}

// New returns a Client with a sane default HTTP timeout.
func New(baseURL, key string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Key:     key,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type moveNeededResponse struct {
	Needed bool `json:"needed"`
}

// MoveNeeded reports whether the server is waiting on us for a move.
func (c *Client) MoveNeeded(ctx context.Context) (bool, error) {
	var resp moveNeededResponse
	if err := c.getJSON(ctx, "/move_needed/"+c.Key, &resp); err != nil {
		return false, err
	}
	return resp.Needed, nil
}

type boardsResponse struct {
	Boards [][][]int `json:"boards"`
}

// cellToColor maps the server's {-1, 0, 1} cell encoding onto board.Color:
// -1 is Black, 0 is empty, 1 (or anything else) is White. Grounded on
// original_source/src/api.cpp's board_set_cell call, which applies the
// same asymmetric mapping (it runs in the other direction, decoding a
// color_t into the cell it would write).
func cellToColor(cell int) board.Color {
	switch cell {
	case -1:
		return board.Black
	case 0:
		return board.NoColor
	default:
		return board.White
	}
}

// Board fetches the current position from the server.
func (c *Client) Board(ctx context.Context) (board.Board, error) {
	var resp boardsResponse
	if err := c.getJSON(ctx, "/boards/"+c.Key, &resp); err != nil {
		return board.Board{}, err
	}
	if len(resp.Boards) == 0 {
		return board.Board{}, fmt.Errorf("client: server returned no boards")
	}

	grid := resp.Boards[0]
	var b board.Board
	for y := 0; y < 8 && y < len(grid); y++ {
		for x := 0; x < 8 && x < len(grid[y]); x++ {
			b = b.SetCell(board.XYToMove(x, y), cellToColor(grid[y][x]))
		}
	}
	return b, nil
}

// DoMove posts the chosen move. The URL path order is (key, y, x), not
// (key, x, y) -- matching original_source/src/api.cpp#api_do_move exactly.
func (c *Client) DoMove(ctx context.Context, m board.Square) error {
	x, y := board.MoveToXY(m)
	return c.post(ctx, fmt.Sprintf("/move/%s/%d/%d", c.Key, y, x))
}

// SetName announces the engine's display name to the server.
func (c *Client) SetName(ctx context.Context, name string) error {
	return c.post(ctx, "/set_name/"+c.Key+"/"+url.PathEscape(name))
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(dst)
}

func (c *Client) post(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// PollInterval is how long Run sleeps between "is a move needed" polls
// when the answer is no, matching original_source/src/driver.cpp's 500ms
// sleep.
const PollInterval = 500 * time.Millisecond

// MoveFunc picks a move for player on b; normally engine.Engine.GetMove.
type MoveFunc func(ctx context.Context, b board.Board, player board.Color) (board.Square, eval.Score)

// Run polls the server until ctx is canceled, fetching the board and
// invoking pick whenever a move is needed, then posting the result back.
// Play is always from player's perspective (normally board.White, the
// server's convention for "us"; see DESIGN.md's color-convention note).
func Run(ctx context.Context, c *Client, player board.Color, pick MoveFunc) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		needed, err := c.MoveNeeded(ctx)
		if err != nil {
			logw.Warningf(ctx, "move_needed poll failed: %v", err)
			if !sleep(ctx, PollInterval) {
				return ctx.Err()
			}
			continue
		}
		if !needed {
			if !sleep(ctx, PollInterval) {
				return ctx.Err()
			}
			continue
		}

		b, err := c.Board(ctx)
		if err != nil {
			logw.Warningf(ctx, "board fetch failed: %v", err)
			continue
		}

		m, score := pick(ctx, b, player)
		logw.Infof(ctx, "Selected move %v, score %v", board.MoveToString(m), score)

		if err := c.DoMove(ctx, m); err != nil {
			logw.Warningf(ctx, "posting move failed: %v", err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
