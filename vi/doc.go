// Package vi implements the two single-table baselines used alongside
// the lexicographic solver: plain value iteration on one reward factor
// of an LMDP, and weighted-sum value iteration that scalarizes all
// factors with a weight vector.
//
// Both solvers share the convergence rule of the lexicographic core,
// τ = ε·max(0.1, (1−γ)/γ), sweep states in index order, and break
// argmax ties by the first occurrence in the admissible-action list,
// so their output is deterministic and directly comparable with the
// lexicographic result on degenerate instances (K = 1, or a uniform
// weight on a single factor).
//
// The per-reward optima these solvers compute also bound the slack
// behavior of the lexicographic solver: a δ-slack solve may lose at
// most δ_i of the optimum Solve reports here for factor i.
//
// Complexity: O(sweeps · E) time for E transition entries,
// O(|S|) memory.
package vi
