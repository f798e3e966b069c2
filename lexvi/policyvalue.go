package lexvi

import (
	"fmt"
	"math"
)

// ValueOfPolicy evaluates a fixed policy on m: the fixed point of
//
//	V_i^π(s) = Σ_{s′} T(s,π(s),s′)·(R_i(s,π(s),s′) + γ·V_i^π(s′))
//
// for every reward factor i, to tolerance eps using the same τ rule as
// Solve. No optimization happens; callers use this to obtain the true
// on-policy values, as opposed to the solver's intermediate tables.
// Evaluation always starts from zero values — the fixed point does not
// depend on the seed, only the iteration count does.
//
// Errors: ErrNilModel, ErrBadEpsilon (eps ≤ 0), ErrInconsistentModel,
// ErrBadPolicy (wrong length, or an action not admissible at its
// state), ErrNumericFault.
//
// Complexity: O(sweeps · K · E) time, O(K·|S|) memory.
func ValueOfPolicy(m Model, pi Policy, eps float64) ([][]float64, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	if !(eps > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrBadEpsilon, eps)
	}
	if err := validateModel(m); err != nil {
		return nil, err
	}

	S, K := m.NumStates(), m.NumRewards()
	if len(pi) != S {
		return nil, fmt.Errorf("%w: policy covers %d of %d states", ErrBadPolicy, len(pi), S)
	}
	for s := 0; s < S; s++ {
		admissible := false
		for _, a := range m.Actions(s) {
			if a == pi[s] {
				admissible = true

				break
			}
		}
		if !admissible {
			return nil, fmt.Errorf("%w: action %d not admissible at state %d", ErrBadPolicy, pi[s], s)
		}
	}

	gamma := m.Discount()
	tau := eps * math.Max(0.1, (1-gamma)/gamma)

	v := make([][]float64, K)
	scratch := make([]float64, S)
	for i := 0; i < K; i++ {
		v[i] = make([]float64, S)

		// Jacobi sweeps to the on-policy fixed point of reward i.
		for {
			diff := 0.0
			for s := 0; s < S; s++ {
				q, err := qValue(m, i, s, pi[s], gamma, v[i])
				if err != nil {
					return nil, err
				}
				scratch[s] = q
				if d := math.Abs(q - v[i][s]); d > diff {
					diff = d
				}
			}
			copy(v[i], scratch)

			if diff <= tau {
				break
			}
		}
	}

	return v, nil
}
