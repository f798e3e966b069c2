package lexvi

import (
	"fmt"
	"math"
)

// qValue computes Q_i(s, a | v) = Σ_{s′} T(s,a,s′)·(R_i(s,a,s′) + γ·v(s′))
// over the sparse successor row of (s, a). v must hold one value per
// state; a successor index outside v means the model handed out a
// state it never declared, which is ErrInconsistentModel. A NaN or
// ±Inf accumulation is ErrNumericFault.
//
// Pure: no mutation of the model or v. Complexity: O(|succ(s,a)|).
func qValue(m Model, i, s, a int, gamma float64, v []float64) (float64, error) {
	next, prob := m.Successors(s, a)
	rew := m.Rewards(i, s, a)

	q := 0.0
	for k, sp := range next {
		if int(sp) >= len(v) || sp < 0 {
			return 0, fmt.Errorf("%w: successor %d of (s=%d,a=%d) has no value", ErrInconsistentModel, sp, s, a)
		}
		q += prob[k] * (rew[k] + gamma*v[sp])
	}
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, fmt.Errorf("%w: Q_%d(%d,%d) = %v", ErrNumericFault, i, s, a, q)
	}

	return q, nil
}
