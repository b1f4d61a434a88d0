package board

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	whiteDisc = color.New(color.FgHiWhite, color.Bold).Sprint("#")
	blackDisc = color.New(color.FgHiRed, color.Bold).Sprint("#")
	fileLabel = color.New(color.FgYellow).SprintFunc()
	empty     = "."
)

// Pretty writes an ANSI-colored rendering of b to w: file/rank labels, a
// colored disc per occupied square, and a stone-count distribution line.
// Grounded on original_source/src/bitboard.cpp's board_pretty_print.
func Pretty(w io.Writer, b Board) {
	fmt.Fprintln(w, fileLabel("   a b c d e f g h"))
	for y := 7; y >= 0; y-- {
		fmt.Fprint(w, fileLabel(fmt.Sprintf(" %d", y+1)))
		for x := 0; x < 8; x++ {
			sq := XYToMove(x, y)
			switch {
			case b.Players[White].IsSet(sq):
				fmt.Fprintf(w, " %s", whiteDisc)
			case b.Players[Black].IsSet(sq):
				fmt.Fprintf(w, " %s", blackDisc)
			default:
				fmt.Fprintf(w, " %s", empty)
			}
		}
		fmt.Fprintln(w, fileLabel(fmt.Sprintf(" %d", y+1)))
	}
	fmt.Fprintln(w, fileLabel("   a b c d e f g h"))
	fmt.Fprintf(w, "Distribution: %d-%d\n", b.Players[White].PopCount(), b.Players[Black].PopCount())
}
