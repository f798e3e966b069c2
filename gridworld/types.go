// Package gridworld: cell addressing, options, and sentinel errors for
// the grid LMDP constructors.
package gridworld

import (
	"errors"
)

// Grid actions, indexed the way the transition rows store them.
const (
	North = 0
	South = 1
	East  = 2
	West  = 3
)

// numActions is the action count of every grid model.
const numActions = 4

// Sentinel errors for grid construction.
var (
	// ErrBadSize indicates a grid side shorter than two cells.
	ErrBadSize = errors.New("gridworld: size must be at least 2")

	// ErrBadSlip indicates a per-side slip probability outside [0, 0.5).
	ErrBadSlip = errors.New("gridworld: slip must lie in [0, 0.5)")

	// ErrBadBlocked indicates a blocked cell outside the grid or on one
	// of the special corner cells.
	ErrBadBlocked = errors.New("gridworld: blocked cell out of range or on a special cell")

	// ErrBadPolicySize indicates a policy whose length is not a whole
	// number of channels for the grid being rendered.
	ErrBadPolicySize = errors.New("gridworld: policy length does not fit the grid")
)

// Cell addresses one grid cell. X grows east, Y grows south; (0,0) is
// the top-left corner.
type Cell struct {
	X, Y int
}

// Preference selects how the preference partition is laid out.
type Preference int

const (
	// Uniform installs a single block over all states with one ordering.
	Uniform Preference = iota

	// SplitHalves splits the grid at x < Size/2: the west half gets
	// WestOrder, the east half EastOrder.
	SplitHalves
)

// Options configures a grid build.
//
// Size      – side length n of the n×n grid.
// Discount  – discount factor γ.
// StepCost  – per-step reward on the cost-carrying factors (negative).
// Slip      – per-side slip probability; forward succeeds with 1−2·Slip.
// Blocked   – wall cells (Single and Cookie; applied to every channel).
// Pref      – Uniform or SplitHalves partition layout.
// Order     – uniform ordering (default identity).
// WestOrder – split ordering for x < Size/2 (default 0,2,1).
// EastOrder – split ordering for x ≥ Size/2 (default 0,1,2).
// Slack     – slack vector handed to the model (default all zeros).
type Options struct {
	Size     int
	Discount float64
	StepCost float64
	Slip     float64
	Blocked  []Cell

	Pref      Preference
	Order     []int
	WestOrder []int
	EastOrder []int
	Slack     []float64
}

// DefaultOptions returns the grid defaults: a 10×10 grid, γ = 0.9,
// step cost −0.03, slip 0.1, uniform preference.
func DefaultOptions() Options {
	return Options{
		Size:     10,
		Discount: 0.9,
		StepCost: -0.03,
		Slip:     0.1,
		Pref:     Uniform,
	}
}

// State maps (channel, x, y) to the dense state index of a grid model
// with the given side length: channel·size² + y·size + x. Single-grid
// models use channel 0.
func State(size, channel, x, y int) int {
	return channel*size*size + y*size + x
}

// Coordinate inverts State for one channel: index → (channel, x, y).
func Coordinate(size, idx int) (channel, x, y int) {
	channel = idx / (size * size)
	rem := idx % (size * size)

	return channel, rem % size, rem / size
}
