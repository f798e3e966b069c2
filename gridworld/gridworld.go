package gridworld

import (
	"fmt"

	"github.com/katalvlaran/lexmdp/lmdp"
)

// Direction deltas indexed by action. X grows east, Y grows south.
var (
	dirDX = [numActions]int{0, 0, 1, -1}
	dirDY = [numActions]int{-1, 1, 0, 0}

	// Slip sides relative to the heading.
	leftOf  = [numActions]int{West, East, North, South}
	rightOf = [numActions]int{East, West, South, North}
)

// Single builds the one-reward n×n slip grid: the bottom-right corner
// absorbs with reward 0, entering it pays +1, and every other step
// pays StepCost. Blocked cells become unreachable self-loops.
//
// The model uses the default preference partition (one block, identity
// ordering), so it is also a plain MDP for the baselines in vi.
func Single(o Options) (*lmdp.Model, error) {
	if err := validate(o, [][2]int{{o.Size - 1, o.Size - 1}}); err != nil {
		return nil, err
	}

	n := o.Size
	goalX, goalY := n-1, n-1
	walls := blockSet(o.Blocked, n)

	b := lmdp.NewBuilder(n*n, numActions, 1)
	b.SetDiscount(o.Discount)
	if o.Slack != nil {
		b.SetSlack(o.Slack...)
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			s := State(n, 0, x, y)

			// Absorbing goal and unreachable walls self-loop at zero.
			if (x == goalX && y == goalY) || walls[cellKey(n, x, y)] {
				for a := 0; a < numActions; a++ {
					if err := b.AddTransition(s, a, s, 1, 0); err != nil {
						return nil, err
					}
				}

				continue
			}

			for a := 0; a < numActions; a++ {
				for _, out := range outcomes(a, o.Slip) {
					nx, ny := move(x, y, out.dir, n, walls)
					r := o.StepCost
					if nx == goalX && ny == goalY {
						r = 1
					}
					if err := b.AddTransition(s, a, State(n, 0, nx, ny), out.p, r); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return b.Build()
}

// Cookie builds the two-channel three-reward grid. Channel 0 still has
// the cookie at the bottom-left cell; any move out of that cell lands
// in channel 1, where the cookie is gone. Reward factors:
//
//	0 — penalty: −1 for entering the absorbing top-right corner.
//	1 — goal:    +1 for entering the absorbing bottom-right corner,
//	    StepCost per step.
//	2 — cookie:  +1 for entering the channel-0 bottom-left cell,
//	    StepCost per step.
//
// The preference partition follows o.Pref: one uniform block, or the
// west/east split at x < Size/2 with per-half orderings.
func Cookie(o Options) (*lmdp.Model, error) {
	n := o.Size
	specials := [][2]int{{n - 1, 0}, {n - 1, n - 1}, {0, n - 1}}
	if err := validate(o, specials); err != nil {
		return nil, err
	}

	penX, penY := n-1, 0
	goalX, goalY := n-1, n-1
	cookieX, cookieY := 0, n-1
	walls := blockSet(o.Blocked, n)

	b := lmdp.NewBuilder(2*n*n, numActions, 3)
	b.SetDiscount(o.Discount)
	if o.Slack != nil {
		b.SetSlack(o.Slack...)
	}

	for c := 0; c < 2; c++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				s := State(n, c, x, y)

				absorbing := (x == penX && y == penY) || (x == goalX && y == goalY)
				if absorbing || walls[cellKey(n, x, y)] {
					for a := 0; a < numActions; a++ {
						if err := b.AddTransition(s, a, s, 1, 0, 0, 0); err != nil {
							return nil, err
						}
					}

					continue
				}

				// Leaving the channel-0 cookie cell eats the cookie:
				// every successor lands in channel 1.
				destC := c
				if c == 0 && x == cookieX && y == cookieY {
					destC = 1
				}

				for a := 0; a < numActions; a++ {
					for _, out := range outcomes(a, o.Slip) {
						nx, ny := move(x, y, out.dir, n, walls)

						r1, r2, r3 := 0.0, o.StepCost, o.StepCost
						if nx == penX && ny == penY {
							r1 = -1
						}
						if nx == goalX && ny == goalY {
							r2 = 1
						}
						if destC == 0 && nx == cookieX && ny == cookieY {
							r3 = 1
						}

						err := b.AddTransition(s, a, State(n, destC, nx, ny), out.p, r1, r2, r3)
						if err != nil {
							return nil, err
						}
					}
				}
			}
		}
	}

	addPreference(b, o, 2*n*n)

	return b.Build()
}

// addPreference installs the partition blocks chosen by o.Pref.
func addPreference(b *lmdp.Builder, o Options, numStates int) {
	n := o.Size
	switch o.Pref {
	case SplitHalves:
		var west, east []int
		for s := 0; s < numStates; s++ {
			if _, x, _ := Coordinate(n, s); x < n/2 {
				west = append(west, s)
			} else {
				east = append(east, s)
			}
		}
		b.AddPartition(west, orderOr(o.WestOrder, []int{0, 2, 1}))
		b.AddPartition(east, orderOr(o.EastOrder, []int{0, 1, 2}))
	default:
		if o.Order != nil {
			all := make([]int, numStates)
			for s := range all {
				all[s] = s
			}
			b.AddPartition(all, o.Order)
		}
		// Otherwise the builder's default single block applies.
	}
}

// orderOr returns ord, or def when ord is nil.
func orderOr(ord, def []int) []int {
	if ord != nil {
		return ord
	}

	return def
}

// outcome is one slip branch of an action: the realized direction and
// its probability.
type outcome struct {
	dir int
	p   float64
}

// outcomes returns the slip branches of action a: forward with
// 1−2·slip, each side with slip. Zero-probability branches are
// dropped.
func outcomes(a int, slip float64) []outcome {
	if slip == 0 {
		return []outcome{{a, 1}}
	}

	return []outcome{
		{a, 1 - 2*slip},
		{leftOf[a], slip},
		{rightOf[a], slip},
	}
}

// move resolves one step from (x, y) in direction dir: walls and
// blocked cells keep the agent in place.
func move(x, y, dir, n int, walls map[int]bool) (int, int) {
	nx, ny := x+dirDX[dir], y+dirDY[dir]
	if nx < 0 || nx >= n || ny < 0 || ny >= n || walls[cellKey(n, nx, ny)] {
		return x, y
	}

	return nx, ny
}

// cellKey packs a cell into one map key.
func cellKey(n, x, y int) int { return y*n + x }

// blockSet indexes the blocked cells for O(1) wall tests.
func blockSet(blocked []Cell, n int) map[int]bool {
	walls := make(map[int]bool, len(blocked))
	for _, c := range blocked {
		walls[cellKey(n, c.X, c.Y)] = true
	}

	return walls
}

// validate checks the shared option invariants. specials lists cells
// that must not be blocked.
func validate(o Options, specials [][2]int) error {
	if o.Size < 2 {
		return fmt.Errorf("%w: got %d", ErrBadSize, o.Size)
	}
	if o.Slip < 0 || o.Slip >= 0.5 {
		return fmt.Errorf("%w: got %v", ErrBadSlip, o.Slip)
	}
	for _, c := range o.Blocked {
		if c.X < 0 || c.X >= o.Size || c.Y < 0 || c.Y >= o.Size {
			return fmt.Errorf("%w: (%d,%d)", ErrBadBlocked, c.X, c.Y)
		}
		for _, sp := range specials {
			if c.X == sp[0] && c.Y == sp[1] {
				return fmt.Errorf("%w: (%d,%d)", ErrBadBlocked, c.X, c.Y)
			}
		}
	}

	return nil
}
