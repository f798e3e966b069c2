// File: lmdp/builder_test.go
package lmdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainBuilder returns a valid two-state, two-action, one-reward
// builder: action 0 self-loops, action 1 moves 0→1; state 1 absorbs
// under action 0 only.
func chainBuilder(t *testing.T) *Builder {
	t.Helper()

	b := NewBuilder(2, 2, 1)
	b.SetDiscount(0.9)
	require.NoError(t, b.AddTransition(0, 0, 0, 1, 0))
	require.NoError(t, b.AddTransition(0, 1, 1, 1, 1))
	require.NoError(t, b.AddTransition(1, 0, 1, 1, 0))

	return b
}

// TestBuild_Minimal checks the frozen model: counts, accessors, action
// masks, CSR rows, and the default partition.
func TestBuild_Minimal(t *testing.T) {
	m, err := chainBuilder(t).Build()
	require.NoError(t, err)

	assert.Equal(t, 2, m.NumStates())
	assert.Equal(t, 2, m.NumActions())
	assert.Equal(t, 1, m.NumRewards())
	assert.Equal(t, 0.9, m.Discount())
	assert.Equal(t, []float64{0}, m.Slack(), "unset slack defaults to zeros")

	// Action masks: state 0 offers both actions, state 1 only action 0.
	assert.Equal(t, []int{0, 1}, m.Actions(0))
	assert.Equal(t, []int{0}, m.Actions(1))

	// CSR rows.
	next, prob := m.Successors(0, 1)
	assert.Equal(t, []int32{1}, next)
	assert.Equal(t, []float64{1}, prob)
	assert.Equal(t, []float64{1}, m.Rewards(0, 0, 1))

	// Inadmissible row is empty.
	next, prob = m.Successors(1, 1)
	assert.Empty(t, next)
	assert.Empty(t, prob)

	// Reward bounds over all entries.
	lo, hi := m.RewardBounds(0)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)

	// Default partition: one block, identity ordering.
	parts, orders := m.Partitions()
	require.Len(t, parts, 1)
	assert.Equal(t, []int{0, 1}, parts[0])
	assert.Equal(t, []int{0}, orders[0])
}

// TestBuild_SortedSuccessors ensures successor rows come out sorted by
// state index regardless of insertion order.
func TestBuild_SortedSuccessors(t *testing.T) {
	b := NewBuilder(3, 1, 1)
	b.SetDiscount(0.5)
	require.NoError(t, b.AddTransition(0, 0, 2, 0.3, 0))
	require.NoError(t, b.AddTransition(0, 0, 1, 0.3, 0))
	require.NoError(t, b.AddTransition(0, 0, 0, 0.4, 0))
	require.NoError(t, b.AddTransition(1, 0, 1, 1, 0))
	require.NoError(t, b.AddTransition(2, 0, 2, 1, 0))

	m, err := b.Build()
	require.NoError(t, err)

	next, prob := m.Successors(0, 0)
	assert.Equal(t, []int32{0, 1, 2}, next)
	assert.Equal(t, []float64{0.4, 0.3, 0.3}, prob)
}

// TestAddTransition_Accumulates verifies that repeated entries for the
// same (s, a, s′) sum their probability mass.
func TestAddTransition_Accumulates(t *testing.T) {
	b := NewBuilder(2, 1, 1)
	b.SetDiscount(0.9)
	require.NoError(t, b.AddTransition(0, 0, 1, 0.8, -0.03))
	require.NoError(t, b.AddTransition(0, 0, 1, 0.2, -0.03))
	require.NoError(t, b.AddTransition(1, 0, 1, 1, 0))

	m, err := b.Build()
	require.NoError(t, err)

	_, prob := m.Successors(0, 0)
	require.Len(t, prob, 1)
	assert.InDelta(t, 1.0, prob[0], 1e-15)
}

// TestAddTransition_Rejects covers the malformed-argument paths.
func TestAddTransition_Rejects(t *testing.T) {
	b := NewBuilder(2, 2, 1)

	assert.ErrorIs(t, b.AddTransition(-1, 0, 0, 1, 0), ErrIndexRange)
	assert.ErrorIs(t, b.AddTransition(0, 0, 2, 1, 0), ErrIndexRange)
	assert.ErrorIs(t, b.AddTransition(0, 5, 0, 1, 0), ErrIndexRange)
	assert.ErrorIs(t, b.AddTransition(0, 0, 1, 1), ErrRewardArity)
	assert.ErrorIs(t, b.AddTransition(0, 0, 1, 1, 0, 0), ErrRewardArity)
}

// TestBuild_Validation exercises every Build-time failure. Each case
// must also match the family root ErrInconsistentModel.
func TestBuild_Validation(t *testing.T) {
	cases := []struct {
		name string
		prep func(t *testing.T) *Builder
		want error
	}{
		{
			name: "no states",
			prep: func(*testing.T) *Builder { return NewBuilder(0, 1, 1) },
			want: ErrInconsistentModel,
		},
		{
			name: "no rewards",
			prep: func(*testing.T) *Builder { return NewBuilder(1, 1, 0) },
			want: ErrNoRewards,
		},
		{
			name: "discount unset",
			prep: func(t *testing.T) *Builder {
				b := chainBuilder(t)
				b.SetDiscount(0)

				return b
			},
			want: ErrBadDiscount,
		},
		{
			name: "discount one",
			prep: func(t *testing.T) *Builder {
				b := chainBuilder(t)
				b.SetDiscount(1)

				return b
			},
			want: ErrBadDiscount,
		},
		{
			name: "negative slack",
			prep: func(t *testing.T) *Builder {
				b := chainBuilder(t)
				b.SetSlack(-0.5)

				return b
			},
			want: ErrNegativeSlack,
		},
		{
			name: "slack length",
			prep: func(t *testing.T) *Builder {
				b := chainBuilder(t)
				b.SetSlack(0, 0)

				return b
			},
			want: ErrSlackLength,
		},
		{
			name: "row does not sum to one",
			prep: func(*testing.T) *Builder {
				b := NewBuilder(2, 1, 1)
				b.SetDiscount(0.9)
				_ = b.AddTransition(0, 0, 1, 0.5, 0)
				_ = b.AddTransition(1, 0, 1, 1, 0)

				return b
			},
			want: ErrNotStochastic,
		},
		{
			name: "negative probability",
			prep: func(*testing.T) *Builder {
				b := NewBuilder(2, 1, 1)
				b.SetDiscount(0.9)
				_ = b.AddTransition(0, 0, 0, 1.5, 0)
				_ = b.AddTransition(0, 0, 1, -0.5, 0)
				_ = b.AddTransition(1, 0, 1, 1, 0)

				return b
			},
			want: ErrNotStochastic,
		},
		{
			name: "state without actions",
			prep: func(*testing.T) *Builder {
				b := NewBuilder(2, 1, 1)
				b.SetDiscount(0.9)
				_ = b.AddTransition(0, 0, 0, 1, 0)

				return b
			},
			want: ErrNoActions,
		},
		{
			name: "partition does not cover",
			prep: func(t *testing.T) *Builder {
				b := chainBuilder(t)
				b.AddPartition([]int{0}, []int{0})

				return b
			},
			want: ErrBadPartition,
		},
		{
			name: "partition overlaps",
			prep: func(t *testing.T) *Builder {
				b := chainBuilder(t)
				b.AddPartition([]int{0, 1}, []int{0})
				b.AddPartition([]int{1}, []int{0})

				return b
			},
			want: ErrBadPartition,
		},
		{
			name: "ordering not a permutation",
			prep: func(t *testing.T) *Builder {
				b := chainBuilder(t)
				b.AddPartition([]int{0, 1}, []int{1})

				return b
			},
			want: ErrBadOrdering,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.prep(t).Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, ErrInconsistentModel)
		})
	}
}

// TestBuild_StochasticWithinTolerance accepts rounding residue below
// StochasticTol.
func TestBuild_StochasticWithinTolerance(t *testing.T) {
	b := NewBuilder(2, 1, 1)
	b.SetDiscount(0.9)
	require.NoError(t, b.AddTransition(0, 0, 0, 0.1, 0))
	require.NoError(t, b.AddTransition(0, 0, 1, 0.9+1e-12, 0))
	require.NoError(t, b.AddTransition(1, 0, 1, 1, 0))

	_, err := b.Build()
	assert.NoError(t, err)
}
