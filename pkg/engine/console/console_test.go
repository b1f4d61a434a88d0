package console_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/corvid-games/zugzwang/pkg/engine"
	"github.com/corvid-games/zugzwang/pkg/engine/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, out <-chan string, timeout time.Duration) []string {
	t.Helper()

	var lines []string
	deadline := time.After(timeout)
	for {
		select {
		case line, ok := <-out:
			if !ok {
				return lines
			}
			lines = append(lines, line)
		case <-deadline:
			return lines
		}
	}
}

func TestConsolePrintsBoardOnStartup(t *testing.T) {
	e := engine.New(context.Background(), "zugzwang-test", "test")
	in := make(chan string)
	_, out := console.NewDriver(context.Background(), e, in)

	close(in)
	lines := drain(t, out, time.Second)

	require.NotEmpty(t, lines)
	assert.True(t, strings.Contains(strings.Join(lines, "\n"), "engine zugzwang-test"))
}

func TestConsolePlaysLegalMove(t *testing.T) {
	e := engine.New(context.Background(), "zugzwang-test", "test")
	in := make(chan string, 10)
	_, out := console.NewDriver(context.Background(), e, in)

	in <- "c4" // one of Black's legal opening moves
	in <- "quit"
	close(in)

	lines := drain(t, out, time.Second)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "to move: white")
}

func TestConsoleRejectsIllegalMove(t *testing.T) {
	e := engine.New(context.Background(), "zugzwang-test", "test")
	in := make(chan string, 10)
	_, out := console.NewDriver(context.Background(), e, in)

	in <- "a1" // not a legal opening move for Black
	in <- "quit"
	close(in)

	lines := drain(t, out, time.Second)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "illegal move")
}
