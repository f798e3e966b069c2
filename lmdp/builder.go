package lmdp

import (
	"fmt"
	"math"
	"sort"
)

// entry is one accumulated transition before freezing into CSR form.
type entry struct {
	next int32
	prob float64
	r    []float64
}

// Builder accumulates transitions, rewards, and the preference
// partition for one Model. Index assignment is per-Builder: two
// Builders in the same process share nothing.
//
// Typical use:
//
//	b := lmdp.NewBuilder(nStates, nActions, nRewards)
//	b.SetDiscount(0.9)
//	b.SetSlack(0, 0.5, 0)
//	b.AddTransition(s, a, sp, 0.8, r0, r1, r2)
//	...
//	b.AddPartition(west, []int{0, 2, 1})
//	b.AddPartition(east, []int{0, 1, 2})
//	m, err := b.Build()
//
// Build validates the whole model contract and returns a frozen,
// immutable Model. The Builder may not be reused after Build.
type Builder struct {
	numStates  int
	numActions int
	numRewards int

	discount float64
	slack    []float64

	rows   [][]entry
	parts  [][]int
	orders [][]int
}

// NewBuilder creates a Builder for a model with the given numbers of
// states, actions, and reward factors. Non-positive counts are
// reported at Build time.
func NewBuilder(states, actions, rewards int) *Builder {
	var rows [][]entry
	if states > 0 && actions > 0 {
		rows = make([][]entry, states*actions)
	}

	return &Builder{
		numStates:  states,
		numActions: actions,
		numRewards: rewards,
		rows:       rows,
	}
}

// SetDiscount sets the discount factor γ. Build rejects values outside
// (0, 1).
func (b *Builder) SetDiscount(gamma float64) { b.discount = gamma }

// SetSlack sets the slack vector δ, one tolerance per reward factor.
// Build rejects negative entries and length mismatches. If SetSlack is
// never called the slack defaults to all zeros (strict lexicographic).
func (b *Builder) SetSlack(delta ...float64) {
	b.slack = append([]float64(nil), delta...)
}

// AddTransition records T(s,a,next) = prob with the K reward values
// R_i(s,a,next). Zero-probability transitions are dropped. Repeated
// calls for the same (s, a, next) accumulate the probability; the
// latest reward values win.
//
// Returns ErrIndexRange or ErrRewardArity on malformed arguments;
// probability validity is checked row-wise at Build.
func (b *Builder) AddTransition(s, a, next int, prob float64, rewards ...float64) error {
	if s < 0 || s >= b.numStates || next < 0 || next >= b.numStates {
		return fmt.Errorf("%w: state %d→%d outside [0,%d)", ErrIndexRange, s, next, b.numStates)
	}
	if a < 0 || a >= b.numActions {
		return fmt.Errorf("%w: action %d outside [0,%d)", ErrIndexRange, a, b.numActions)
	}
	if len(rewards) != b.numRewards {
		return fmt.Errorf("%w: got %d, want %d", ErrRewardArity, len(rewards), b.numRewards)
	}
	if prob == 0 {
		return nil
	}

	row := s*b.numActions + a
	for i := range b.rows[row] {
		e := &b.rows[row][i]
		if e.next == int32(next) {
			e.prob += prob
			copy(e.r, rewards)

			return nil
		}
	}
	b.rows[row] = append(b.rows[row], entry{
		next: int32(next),
		prob: prob,
		r:    append([]float64(nil), rewards...),
	})

	return nil
}

// AddPartition appends one preference block: states lists the member
// state indices, ordering is that block's preference permutation over
// the reward indices. Both slices are copied. If no partition is added
// before Build, a single block covering all states with the identity
// ordering is installed.
func (b *Builder) AddPartition(states []int, ordering []int) {
	b.parts = append(b.parts, append([]int(nil), states...))
	b.orders = append(b.orders, append([]int(nil), ordering...))
}

// Build validates the accumulated model and freezes it into an
// immutable Model. Validation order:
//
//  1. Counts: at least one state, action, and reward factor.
//  2. Discount γ ∈ (0, 1).
//  3. Slack: length K, every δ_i ≥ 0.
//  4. Rows: every admissible (s, a) row is a distribution; every state
//     has at least one admissible action.
//  5. Partition: blocks non-empty, disjoint, covering; orderings are
//     permutations of 0..K-1.
//
// Complexity: O(E log E + |S|·|A| + K·ℓ) time, O(E·K) memory.
func (b *Builder) Build() (*Model, error) {
	// 1) Counts.
	if b.numStates <= 0 || b.numActions <= 0 {
		return nil, fmt.Errorf("%w: need at least one state and one action", ErrInconsistentModel)
	}
	if b.numRewards <= 0 {
		return nil, ErrNoRewards
	}

	// 2) Discount.
	if !(b.discount > 0 && b.discount < 1) {
		return nil, fmt.Errorf("%w: got %v", ErrBadDiscount, b.discount)
	}

	// 3) Slack.
	slack := b.slack
	if slack == nil {
		slack = make([]float64, b.numRewards)
	}
	if len(slack) != b.numRewards {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSlackLength, len(slack), b.numRewards)
	}
	for i, d := range slack {
		if d < 0 || math.IsNaN(d) {
			return nil, fmt.Errorf("%w: δ[%d] = %v", ErrNegativeSlack, i, d)
		}
	}

	// 4) Rows: sort for deterministic successor iteration, check
	//    stochasticity, and collect the admissible-action lists.
	actions := make([][]int, b.numStates)
	total := 0
	for s := 0; s < b.numStates; s++ {
		for a := 0; a < b.numActions; a++ {
			row := b.rows[s*b.numActions+a]
			if len(row) == 0 {
				continue
			}
			sort.Slice(row, func(i, j int) bool { return row[i].next < row[j].next })

			sum := 0.0
			for _, e := range row {
				if e.prob < 0 || math.IsNaN(e.prob) {
					return nil, fmt.Errorf("%w: T(%d,%d,%d) = %v", ErrNotStochastic, s, a, e.next, e.prob)
				}
				sum += e.prob
			}
			if math.Abs(sum-1) > StochasticTol {
				return nil, fmt.Errorf("%w: row (%d,%d) sums to %v", ErrNotStochastic, s, a, sum)
			}

			actions[s] = append(actions[s], a)
			total += len(row)
		}
		if len(actions[s]) == 0 {
			return nil, fmt.Errorf("%w: state %d", ErrNoActions, s)
		}
	}

	// 5) Partition. Default: one block over all states, identity order.
	parts, orders := b.parts, b.orders
	if len(parts) == 0 {
		all := make([]int, b.numStates)
		ident := make([]int, b.numRewards)
		for s := range all {
			all[s] = s
		}
		for i := range ident {
			ident[i] = i
		}
		parts, orders = [][]int{all}, [][]int{ident}
	}
	if err := checkPartition(parts, orders, b.numStates, b.numRewards); err != nil {
		return nil, err
	}

	// Freeze the CSR tensor.
	m := &Model{
		numStates:  b.numStates,
		numActions: b.numActions,
		numRewards: b.numRewards,
		discount:   b.discount,
		slack:      slack,
		actions:    actions,
		rowOff:     make([]int, b.numStates*b.numActions+1),
		next:       make([]int32, 0, total),
		prob:       make([]float64, 0, total),
		reward:     make([][]float64, b.numRewards),
		rmin:       make([]float64, b.numRewards),
		rmax:       make([]float64, b.numRewards),
		parts:      parts,
		orders:     orders,
	}
	for i := range m.reward {
		m.reward[i] = make([]float64, 0, total)
		m.rmin[i] = math.Inf(1)
		m.rmax[i] = math.Inf(-1)
	}
	for r, row := range b.rows {
		m.rowOff[r] = len(m.next)
		for _, e := range row {
			m.next = append(m.next, e.next)
			m.prob = append(m.prob, e.prob)
			for i := 0; i < b.numRewards; i++ {
				v := e.r[i]
				m.reward[i] = append(m.reward[i], v)
				m.rmin[i] = math.Min(m.rmin[i], v)
				m.rmax[i] = math.Max(m.rmax[i], v)
			}
		}
	}
	m.rowOff[len(b.rows)] = len(m.next)

	return m, nil
}

// checkPartition verifies the partition invariants: every block
// non-empty with in-range member states, blocks disjoint and covering,
// every ordering a permutation of 0..numRewards-1.
func checkPartition(parts, orders [][]int, numStates, numRewards int) error {
	if len(parts) != len(orders) {
		return fmt.Errorf("%w: %d blocks but %d orderings", ErrBadPartition, len(parts), len(orders))
	}

	seen := make([]bool, numStates)
	covered := 0
	for j, block := range parts {
		if len(block) == 0 {
			return fmt.Errorf("%w: block %d is empty", ErrBadPartition, j)
		}
		for _, s := range block {
			if s < 0 || s >= numStates {
				return fmt.Errorf("%w: block %d holds state %d", ErrBadPartition, j, s)
			}
			if seen[s] {
				return fmt.Errorf("%w: state %d appears twice", ErrBadPartition, s)
			}
			seen[s] = true
			covered++
		}

		if len(orders[j]) != numRewards {
			return fmt.Errorf("%w: block %d ordering has length %d, want %d", ErrBadOrdering, j, len(orders[j]), numRewards)
		}
		mark := make([]bool, numRewards)
		for _, i := range orders[j] {
			if i < 0 || i >= numRewards || mark[i] {
				return fmt.Errorf("%w: block %d ordering %v", ErrBadOrdering, j, orders[j])
			}
			mark[i] = true
		}
	}
	if covered != numStates {
		return fmt.Errorf("%w: %d of %d states covered", ErrBadPartition, covered, numStates)
	}

	return nil
}
