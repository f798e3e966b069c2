package lmdp

// Model is an immutable LMDP: states, actions, the CSR transition and
// reward tensor, the discount factor, slack vector, and preference
// partition. Build one with a Builder; the zero Model is not usable.
//
// All accessor methods are safe for concurrent use: a built Model is
// never mutated. Slices returned by accessors are views into the
// model's frozen arrays and must not be modified by callers.
type Model struct {
	numStates  int
	numActions int
	numRewards int

	discount float64
	slack    []float64

	// actions[s] lists the admissible actions of s in ascending order.
	actions [][]int

	// CSR layout: row r = s*numActions + a spans entries
	// [rowOff[r], rowOff[r+1]). Inadmissible rows are empty.
	rowOff []int
	next   []int32
	prob   []float64

	// reward[i] is parallel to next: reward[i][e] is the i-th reward on
	// the transition stored at entry e.
	reward [][]float64

	// Per-reward bounds over all stored entries.
	rmin, rmax []float64

	parts  [][]int
	orders [][]int
}

// NumStates returns the number of states |S|.
func (m *Model) NumStates() int { return m.numStates }

// NumActions returns the number of actions |A|.
func (m *Model) NumActions() int { return m.numActions }

// NumRewards returns the number of reward factors K.
func (m *Model) NumRewards() int { return m.numRewards }

// Discount returns the discount factor γ ∈ (0,1).
func (m *Model) Discount() float64 { return m.discount }

// Slack returns the slack vector δ, one non-negative tolerance per
// reward factor.
func (m *Model) Slack() []float64 { return m.slack }

// Actions returns the admissible actions of state s in ascending
// index order. The slice is never empty for a valid model.
func (m *Model) Actions(s int) []int { return m.actions[s] }

// Successors returns the sparse successor row of (s, a): the successor
// state indices and the matching transition probabilities. Both slices
// share indexing; they are empty when a is not admissible at s.
// Complexity: O(1).
func (m *Model) Successors(s, a int) (next []int32, prob []float64) {
	r := s*m.numActions + a
	lo, hi := m.rowOff[r], m.rowOff[r+1]

	return m.next[lo:hi], m.prob[lo:hi]
}

// Rewards returns the i-th reward values along the successor row of
// (s, a), aligned with the slices returned by Successors.
// Complexity: O(1).
func (m *Model) Rewards(i, s, a int) []float64 {
	r := s*m.numActions + a
	lo, hi := m.rowOff[r], m.rowOff[r+1]

	return m.reward[i][lo:hi]
}

// RewardBounds returns the minimum and maximum value reward factor i
// takes over all stored transitions. Accelerator back-ends use the
// bounds to size their iteration budget.
func (m *Model) RewardBounds(i int) (min, max float64) {
	return m.rmin[i], m.rmax[i]
}

// Partitions returns the preference partition: parts[j] lists the
// states of block j, orders[j] is block j's preference ordering over
// the reward indices. Blocks are disjoint and cover the state set.
func (m *Model) Partitions() (parts [][]int, orders [][]int) {
	return m.parts, m.orders
}
