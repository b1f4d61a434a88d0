// Package eval contains Othello position evaluation: the static heuristic
// and the bounded integer Score type it and the search operate on.
package eval

import "fmt"

// Score is a signed position or search value. Positive favors player 0
// ("white"). Non-terminal composite evaluations are bounded well inside
// Inf; terminal scores are a multiple of Inf (see IsTerminal).
type Score int32

const (
	// Inf is EVAL_INF: the per-stone terminal-score unit. A terminal score
	// is material * Inf, so |terminal| <= 64*Inf, comfortably inside MaxScore.
	Inf Score = 1_000_000

	// MaxScore/MinScore bound every score ever produced, including the
	// negamax sentinels used to seed the root alpha-beta window. Matches
	// original_source's MINIMAX_INF -- wide enough that negating it
	// cannot overflow 32-bit signed arithmetic.
	MaxScore Score = 1_000_000_000
	MinScore Score = -MaxScore
)

func (s Score) String() string {
	return fmt.Sprintf("%d", s)
}

// Crop clamps a Score into [MinScore; MaxScore].
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

// Max returns the larger of the two scores.
func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

// Min returns the smaller of the two scores.
func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}
