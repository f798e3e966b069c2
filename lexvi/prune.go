package lexvi

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// scoreActions fills qs[k] = Q_i(s, acts[k] | v) for every candidate
// action. qs must have len(acts).
func scoreActions(m Model, i, s int, acts []int, gamma float64, v []float64, qs []float64) error {
	for k, a := range acts {
		q, err := qValue(m, i, s, a, gamma, v)
		if err != nil {
			return err
		}
		qs[k] = q
	}

	return nil
}

// pruneWithin keeps the candidate actions whose score is within eta of
// the maximum, appending them to dst (reused, returned re-sliced).
// Input order is preserved, so ties resolve to the first occurrence.
// acts must be non-empty.
func pruneWithin(acts []int, qs []float64, eta float64, dst []int) []int {
	maxQ := floats.Max(qs)

	dst = dst[:0]
	for k, a := range acts {
		if math.Abs(maxQ-qs[k]) < eta {
			dst = append(dst, a)
		}
	}

	return dst
}

// argmaxPrune is the strict prune: keep actions whose Q matches the
// maximum within ten machine epsilons. Used where further pruning must
// be exact (δ_i = 0).
func argmaxPrune(acts []int, qs []float64, dst []int) []int {
	return pruneWithin(acts, qs, pruneTol, dst)
}

// slackPrune is the δ-slack prune between reward layers: the threshold
// is η_i = (1−γ)·δ_i plus the machine-precision allowance. With
// δ_i = 0 it degenerates to argmaxPrune.
func slackPrune(acts []int, qs []float64, gamma, delta float64, dst []int) []int {
	return pruneWithin(acts, qs, (1-gamma)*delta+pruneTol, dst)
}

// pruneLayer shrinks the admissible sets of one partition block after
// reward layer i has converged: astar[k] becomes its δ-slack subset
// under the freshly updated values v. The pruned sets are written over
// nextSets[k] (backing arrays reused). A pruned-empty set cannot occur
// for δ ≥ 0 since the maximising action always survives; it is checked
// anyway and reported as ErrInconsistentModel.
func pruneLayer(m Model, states []int, i int, astar, nextSets [][]int, gamma, delta float64, v, qs []float64) ([][]int, error) {
	for k, s := range states {
		acts := astar[k]
		scores := qs[:len(acts)]
		if err := scoreActions(m, i, s, acts, gamma, v, scores); err != nil {
			return nil, err
		}

		nextSets[k] = slackPrune(acts, scores, gamma, delta, nextSets[k])
		if len(nextSets[k]) == 0 {
			return nil, fmt.Errorf("%w: pruning emptied the action set of state %d", ErrInconsistentModel, s)
		}
	}

	return nextSets, nil
}
