package engine

import "fmt"

// Stats accumulates counters for the most recently completed GetMove call.
// It is reset at the start of every call, so it always describes exactly
// one search, never a running total. Grounded on
// original_source/src/stats.cpp's counters; kept as a plain (non-atomic)
// struct since Engine serializes GetMove calls under its mutex (see engine.go).
type Stats struct {
	// Visited is the number of negamax nodes expanded.
	Visited uint64
	// Depth is the deepest iterative-deepening iteration that completed.
	Depth int
}

func (s Stats) String() string {
	return fmt.Sprintf("{visited=%v, depth=%v}", s.Visited, s.Depth)
}
