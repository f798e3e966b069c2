// Package lmdp defines the Lexicographic Markov Decision Process model:
// a finite MDP with K factored reward functions, per-reward slack
// tolerances, and a preference partition that assigns each state a
// strict ordering over the rewards.
//
// The model is an immutable arena of dense integer indices:
//
//   - States are indices in [0, NumStates()).
//   - Actions are indices in [0, NumActions()). Each state carries its
//     own admissible-action list; actions absent from the list have no
//     transition rows and are never scored by a solver.
//   - Transitions and all K rewards live in one CSR tensor: for every
//     admissible (s, a) pair a contiguous run of entries holds the
//     successor index, the probability, and the K reward values.
//
// Construction goes through Builder, which accumulates transitions and
// validates the full model contract at Build time:
//
//   - K ≥ 1 reward factors, discount γ ∈ (0, 1), slack δ_i ≥ 0;
//   - every admissible row is a probability distribution
//     (sums to 1 within StochasticTol, all entries ≥ 0);
//   - the preference partition blocks are disjoint, non-empty, and
//     cover the state set; each ordering is a permutation of 0..K-1.
//
// Violations surface as sentinel errors wrapping ErrInconsistentModel,
// so callers can match the whole family with errors.Is.
//
// Two Models never share index spaces: indexing is per-Builder, and a
// built Model holds no references to the Builder's internals.
//
// Complexity:
//
//   - Build: O(E log E) time where E = number of transition entries
//     (per-row sort), O(E·K) memory for the frozen tensor.
//   - Successors / Rewards: O(1) slice views into the CSR arrays.
package lmdp
