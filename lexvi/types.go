// Package lexvi: the consumed model contract, sentinel errors, and
// functional configuration for the LVI solver.
package lexvi

import (
	"errors"
)

// Model is the read-only LMDP contract the solver consumes. Any
// implementation works; lmdp.Model is the canonical one. All methods
// must be cheap and side-effect free: the solver calls them on the hot
// path and shares the model across the whole run.
//
// Index conventions: states in [0, NumStates()), actions in
// [0, NumActions()), rewards in [0, NumRewards()). Actions(s) must be
// non-empty and sorted ascending; Successors and Rewards return
// parallel slices over the sparse successor set of (s, a), empty when
// a is not admissible at s.
type Model interface {
	NumStates() int
	NumActions() int
	NumRewards() int

	// Discount returns γ ∈ (0, 1). Anything else is ErrInconsistentModel.
	Discount() float64

	// Slack returns δ, one non-negative tolerance per reward factor.
	Slack() []float64

	// Actions returns the admissible actions of s, ascending.
	Actions(s int) []int

	// Successors returns the sparse successor row of (s, a).
	Successors(s, a int) (next []int32, prob []float64)

	// Rewards returns reward factor i along the row of (s, a), aligned
	// with Successors.
	Rewards(i, s, a int) []float64

	// Partitions returns the preference partition blocks and their
	// reward orderings.
	Partitions() (parts [][]int, orders [][]int)
}

// machineEps is the double-precision machine epsilon. Pruning and
// argmax thresholds allow one order of magnitude of accumulated
// round-off on top of it.
const machineEps = 2.220446049250313e-16

// pruneTol is the strict-argmax tolerance: ties within ten machine
// epsilons are kept.
const pruneTol = 10 * machineEps

// DefaultEpsilon is the outer convergence tolerance ε when WithEpsilon
// is not given.
const DefaultEpsilon = 1e-3

// Sentinel errors returned by Solve and ValueOfPolicy.
var (
	// ErrNilModel indicates a nil model was passed in.
	ErrNilModel = errors.New("lexvi: model is nil")

	// ErrInconsistentModel indicates the model violates its contract:
	// discount outside (0,1), negative or mis-sized slack, a partition
	// that is not a partition, an ordering that is not a permutation, an
	// empty admissible-action set, or a successor index with no value.
	ErrInconsistentModel = errors.New("lexvi: inconsistent model")

	// ErrNumericFault indicates NaN or ±Inf surfaced while evaluating Q
	// or V. The solve aborts; inspect the model's rewards.
	ErrNumericFault = errors.New("lexvi: numeric fault")

	// ErrAccelerator indicates a non-CPU backend failed. The caller may
	// retry on the CPU backend.
	ErrAccelerator = errors.New("lexvi: accelerator backend failed")

	// ErrNotConverged indicates the WithMaxIterations cap was hit before
	// the convergence criterion. The Result returned alongside carries
	// the best policy and values found so far.
	ErrNotConverged = errors.New("lexvi: iteration cap hit before convergence")

	// ErrBadEpsilon indicates WithEpsilon was given a non-positive
	// tolerance.
	ErrBadEpsilon = errors.New("lexvi: epsilon must be positive")

	// ErrBadIterationCap indicates WithMaxIterations was given a
	// negative cap.
	ErrBadIterationCap = errors.New("lexvi: maxIterations must be non-negative")

	// ErrBadPolicy indicates ValueOfPolicy was given a policy whose
	// length or actions do not fit the model.
	ErrBadPolicy = errors.New("lexvi: policy does not fit the model")
)

// Options configures one Solve call.
//
// Epsilon        – outer convergence tolerance ε; sets
// τ = ε·max(0.1, (1−γ)/γ). Must be positive.
// Looping        – selects the inner-loop partition variant: each
// reward pass iterates to its own τ before pruning. Default is the
// single-sweep variant.
// MaxIterations  – outer sweep cap; 0 means unbounded. On hit, Solve
// returns the current best result together with ErrNotConverged.
// Backend        – where partition passes run. Defaults to CPU.
type Options struct {
	Epsilon       float64
	Looping       bool
	MaxIterations int
	Backend       Backend
}

// Option is a functional option for Solve.
type Option func(*Options)

// WithEpsilon sets the outer convergence tolerance ε.
// Must be positive; non-positive values panic with ErrBadEpsilon.
func WithEpsilon(eps float64) Option {
	if !(eps > 0) {
		panic(ErrBadEpsilon.Error())
	}

	return func(o *Options) { o.Epsilon = eps }
}

// WithLooping selects the looping partition variant: each reward pass
// runs Bellman sweeps to its own fixed point before pruning, trading
// more work per outer sweep for fewer outer sweeps.
func WithLooping() Option {
	return func(o *Options) { o.Looping = true }
}

// WithMaxIterations caps the number of outer sweeps. Zero (the
// default) means no cap. Negative caps panic with ErrBadIterationCap.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(ErrBadIterationCap.Error())
	}

	return func(o *Options) { o.MaxIterations = n }
}

// WithBackend routes partition passes to b. Passing nil keeps the CPU
// backend.
func WithBackend(b Backend) Option {
	return func(o *Options) {
		if b != nil {
			o.Backend = b
		}
	}
}

// DefaultOptions returns the solver defaults: ε = DefaultEpsilon,
// single-sweep variant, no iteration cap, CPU backend.
func DefaultOptions() Options {
	return Options{
		Epsilon: DefaultEpsilon,
		Backend: NewCPU(),
	}
}
