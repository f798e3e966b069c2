// Package vi: consumed model contract, sentinel errors, and options
// for the baseline solvers.
package vi

import "errors"

// Model is the slice of the LMDP contract the baselines need. It is a
// strict subset of the lexicographic solver's contract, so any model
// usable there — lmdp.Model in particular — works here unchanged.
type Model interface {
	NumStates() int
	NumActions() int
	NumRewards() int
	Discount() float64
	Actions(s int) []int
	Successors(s, a int) (next []int32, prob []float64)
	Rewards(i, s, a int) []float64
}

// DefaultEpsilon is the convergence tolerance ε when WithEpsilon is
// not given.
const DefaultEpsilon = 1e-3

// Sentinel errors returned by Solve and SolveWeighted.
var (
	// ErrNilModel indicates a nil model was passed in.
	ErrNilModel = errors.New("vi: model is nil")

	// ErrInconsistentModel indicates a model contract violation: bad
	// discount, empty action set, or a successor without a value.
	ErrInconsistentModel = errors.New("vi: inconsistent model")

	// ErrBadReward indicates a reward index outside [0, NumRewards()).
	ErrBadReward = errors.New("vi: reward index out of range")

	// ErrBadWeights indicates a weight vector whose length differs from
	// the reward count, or containing NaN.
	ErrBadWeights = errors.New("vi: weight vector does not fit the model")

	// ErrNumericFault indicates NaN or ±Inf in a Q accumulation.
	ErrNumericFault = errors.New("vi: numeric fault")

	// ErrNotConverged indicates the iteration cap was hit first. The
	// Result returned alongside carries the best policy so far.
	ErrNotConverged = errors.New("vi: iteration cap hit before convergence")

	// ErrBadEpsilon indicates a non-positive ε.
	ErrBadEpsilon = errors.New("vi: epsilon must be positive")
)

// Options configures a baseline solve.
type Options struct {
	Epsilon       float64
	MaxIterations int
}

// Option is a functional option for Solve and SolveWeighted.
type Option func(*Options)

// WithEpsilon sets the convergence tolerance ε. Non-positive values
// panic with ErrBadEpsilon.
func WithEpsilon(eps float64) Option {
	if !(eps > 0) {
		panic(ErrBadEpsilon.Error())
	}

	return func(o *Options) { o.Epsilon = eps }
}

// WithMaxIterations caps the number of sweeps; zero means unbounded.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// DefaultOptions returns the baseline defaults: ε = DefaultEpsilon, no
// iteration cap.
func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon}
}

// Result is a baseline outcome: the greedy policy, the single value
// table, the sweep count, and the convergence flag.
type Result struct {
	Policy     []int
	V          []float64
	Iterations int
	Converged  bool
}
