// Package gridworld constructs grid-shaped LMDP models for the
// lexicographic solver, plus an ASCII renderer for their policies.
//
// Two constructors are provided:
//
//   - Single — an n×n slip grid with one reward factor: +1 for
//     reaching the absorbing bottom-right corner, a small per-step
//     cost everywhere else. The classic value-iteration sanity world.
//
//   - Cookie — a two-channel n×n grid with three reward factors:
//     a −1 penalty for entering the absorbing top-right corner, a +1
//     goal at the absorbing bottom-right corner, and a +1 "cookie" at
//     the bottom-left cell that can be collected once. Collecting the
//     cookie moves the agent to the second channel, where the cookie
//     reward is gone but everything else is unchanged. The second and
//     third factors carry the per-step cost.
//
// Movement: four actions (North, South, East, West). The intended
// direction succeeds with probability 1−2·Slip; the agent slips to
// each side with probability Slip. Moves into a wall or a blocked cell
// keep the agent in place, folding the lost mass into "stay". Blocked
// cells themselves are unreachable self-loop states so the state space
// stays rectangular.
//
// Preference partitions: Uniform installs one block over all states
// with a single ordering; SplitHalves splits at x < Size/2 and gives
// the two halves their own orderings, the layout used to demonstrate
// conditional lexicographic preferences.
//
// Complexity: O(Size²·|A|) build time and memory per channel.
package gridworld
