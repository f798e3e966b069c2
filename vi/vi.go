package vi

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Solve runs value iteration on reward factor `reward` of m, ignoring
// every other factor. Sweeps are Jacobi (each sweep reads the previous
// sweep's table) and repeat until the sup-norm change is at most
// τ = ε·max(0.1, (1−γ)/γ), or the iteration cap is hit, in which case
// the current Result is returned together with ErrNotConverged.
func Solve(m Model, reward int, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if m == nil {
		return nil, ErrNilModel
	}
	if reward < 0 || reward >= m.NumRewards() {
		return nil, fmt.Errorf("%w: %d of %d", ErrBadReward, reward, m.NumRewards())
	}

	score := func(s, a int, v []float64) (float64, error) {
		return qValue(m, reward, s, a, v)
	}

	return sweep(m, cfg, score)
}

// SolveWeighted runs value iteration on the scalarized reward
// Σ_i weights[i]·R_i. The weight vector must have one entry per reward
// factor. This is the weighted-sum comparison solver: unlike the
// lexicographic core it trades factors against each other freely at
// the given exchange rates.
func SolveWeighted(m Model, weights []float64, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if m == nil {
		return nil, ErrNilModel
	}
	if len(weights) != m.NumRewards() {
		return nil, fmt.Errorf("%w: %d weights for %d rewards", ErrBadWeights, len(weights), m.NumRewards())
	}
	for i, w := range weights {
		if math.IsNaN(w) {
			return nil, fmt.Errorf("%w: weight[%d] is NaN", ErrBadWeights, i)
		}
	}

	score := func(s, a int, v []float64) (float64, error) {
		q := 0.0
		for i, w := range weights {
			if w == 0 {
				continue
			}
			qi, err := qValue(m, i, s, a, v)
			if err != nil {
				return 0, err
			}
			q += w * qi
		}

		return q, nil
	}

	return sweep(m, cfg, score)
}

// sweep is the shared Bellman loop: greedy maximization of the given
// score over each state's admissible actions, first occurrence winning
// ties, until the sup-norm change reaches τ.
func sweep(m Model, cfg Options, score func(s, a int, v []float64) (float64, error)) (*Result, error) {
	gamma := m.Discount()
	if !(gamma > 0 && gamma < 1) {
		return nil, fmt.Errorf("%w: discount %v outside (0,1)", ErrInconsistentModel, gamma)
	}

	S := m.NumStates()
	tau := cfg.Epsilon * math.Max(0.1, (1-gamma)/gamma)

	v := make([]float64, S)
	scratch := make([]float64, S)
	pi := make([]int, S)

	for iter := 1; ; iter++ {
		for s := 0; s < S; s++ {
			acts := m.Actions(s)
			if len(acts) == 0 {
				return nil, fmt.Errorf("%w: state %d has no admissible actions", ErrInconsistentModel, s)
			}

			best := math.Inf(-1)
			bestA := acts[0]
			for _, a := range acts {
				q, err := score(s, a, v)
				if err != nil {
					return nil, err
				}
				if q > best {
					best = q
					bestA = a
				}
			}
			scratch[s] = best
			pi[s] = bestA
		}
		diff := floats.Distance(scratch, v, math.Inf(1))
		copy(v, scratch)

		if diff <= tau {
			return &Result{Policy: pi, V: v, Iterations: iter, Converged: true}, nil
		}
		if cfg.MaxIterations > 0 && iter >= cfg.MaxIterations {
			res := &Result{Policy: pi, V: v, Iterations: iter, Converged: false}

			return res, fmt.Errorf("%w: %d sweeps, Δ=%g > τ=%g", ErrNotConverged, iter, diff, tau)
		}
	}
}

// qValue is the sparse Bellman backup for one reward factor, matching
// the lexicographic core's evaluator.
func qValue(m Model, i, s, a int, v []float64) (float64, error) {
	next, prob := m.Successors(s, a)
	rew := m.Rewards(i, s, a)

	q := 0.0
	for k, sp := range next {
		if sp < 0 || int(sp) >= len(v) {
			return 0, fmt.Errorf("%w: successor %d of (s=%d,a=%d) has no value", ErrInconsistentModel, sp, s, a)
		}
		q += prob[k] * (rew[k] + m.Discount()*v[sp])
	}
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, fmt.Errorf("%w: Q(%d,%d) = %v", ErrNumericFault, s, a, q)
	}

	return q, nil
}
