// Package lmdp: sentinel errors and shared constants for model
// construction and validation.
package lmdp

import (
	"errors"
	"fmt"
)

// StochasticTol is the absolute tolerance used when checking that each
// transition row sums to one.
const StochasticTol = 1e-9

// ErrInconsistentModel is the root of the model-validation error
// family. Every specific cause below wraps it, so
// errors.Is(err, ErrInconsistentModel) matches any of them.
var ErrInconsistentModel = errors.New("lmdp: inconsistent model")

// Specific validation failures. Each wraps ErrInconsistentModel.
var (
	// ErrNoRewards indicates the model declares zero reward factors.
	ErrNoRewards = fmt.Errorf("%w: need at least one reward factor", ErrInconsistentModel)

	// ErrBadDiscount indicates a discount factor outside (0, 1).
	// A discount of exactly 1 would be a finite-horizon or average-reward
	// formulation, which this model does not support.
	ErrBadDiscount = fmt.Errorf("%w: discount must lie in (0,1)", ErrInconsistentModel)

	// ErrNegativeSlack indicates a slack tolerance below zero.
	ErrNegativeSlack = fmt.Errorf("%w: slack must be non-negative", ErrInconsistentModel)

	// ErrSlackLength indicates the slack vector length differs from the
	// number of reward factors.
	ErrSlackLength = fmt.Errorf("%w: slack vector length must equal reward count", ErrInconsistentModel)

	// ErrNotStochastic indicates a transition row that does not sum to 1
	// within StochasticTol, or that contains a negative probability.
	ErrNotStochastic = fmt.Errorf("%w: transition row is not a distribution", ErrInconsistentModel)

	// ErrBadPartition indicates partition blocks that overlap, are empty,
	// or do not cover the state set.
	ErrBadPartition = fmt.Errorf("%w: preference partition must cover the states exactly once", ErrInconsistentModel)

	// ErrBadOrdering indicates a preference ordering that is not a
	// permutation of the reward indices.
	ErrBadOrdering = fmt.Errorf("%w: ordering must be a permutation of the reward indices", ErrInconsistentModel)

	// ErrIndexRange indicates a state, action, or reward index outside
	// the declared ranges.
	ErrIndexRange = fmt.Errorf("%w: index out of range", ErrInconsistentModel)

	// ErrNoActions indicates a state with no admissible action at all.
	// Every state must offer at least one transition row.
	ErrNoActions = fmt.Errorf("%w: state has no admissible actions", ErrInconsistentModel)

	// ErrRewardArity indicates an AddTransition call whose reward count
	// differs from the declared number of reward factors.
	ErrRewardArity = fmt.Errorf("%w: wrong number of rewards on transition", ErrInconsistentModel)
)

// ErrCorruptDump is returned by Load when the stream does not decode
// into a model that passes validation.
var ErrCorruptDump = errors.New("lmdp: corrupt model dump")
