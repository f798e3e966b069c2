package gridworld

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/lexmdp/lexvi"
)

// Action glyphs in action-index order.
var glyphs = [numActions]string{"^", "v", ">", "<"}

// Render writes an ASCII picture of a grid policy: one block per
// channel, a dotted border, arrows for the chosen actions, and the
// special cells marked — `+` goal corner, `-` penalty corner (multi-
// channel grids only), `c` the channel-0 cookie cell, `x` blocked.
//
// The channel count is derived from len(pi) / Size²; a policy that is
// not a whole number of channels returns ErrBadPolicySize.
func Render(w io.Writer, pi lexvi.Policy, o Options) error {
	n := o.Size
	if n < 2 || len(pi) == 0 || len(pi)%(n*n) != 0 {
		return fmt.Errorf("%w: %d entries for size %d", ErrBadPolicySize, len(pi), n)
	}
	channels := len(pi) / (n * n)
	walls := blockSet(o.Blocked, n)
	border := strings.Repeat(". ", n+2)

	for c := 0; c < channels; c++ {
		if channels > 1 {
			if _, err := fmt.Fprintf(w, "c = %d\n", c); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(border, " ")); err != nil {
			return err
		}

		for y := 0; y < n; y++ {
			row := make([]string, 0, n+2)
			row = append(row, ".")
			for x := 0; x < n; x++ {
				row = append(row, cellGlyph(pi, o, walls, channels, c, x, y))
			}
			row = append(row, ".")
			if _, err := fmt.Fprintln(w, strings.Join(row, " ")); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w, strings.TrimRight(border, " ")); err != nil {
			return err
		}
	}

	return nil
}

// cellGlyph picks the mark for one cell.
func cellGlyph(pi lexvi.Policy, o Options, walls map[int]bool, channels, c, x, y int) string {
	n := o.Size
	switch {
	case walls[cellKey(n, x, y)]:
		return "x"
	case x == n-1 && y == n-1:
		return "+"
	case channels > 1 && x == n-1 && y == 0:
		return "-"
	case channels > 1 && c == 0 && x == 0 && y == n-1:
		return "c"
	default:
		return glyphs[pi.At(State(n, c, x, y))]
	}
}
