// Package lexvi implements Lexicographic Value Iteration (LVI): the
// fixed-point solver for Lexicographic MDPs, producing a stationary
// deterministic policy together with one value function per reward
// factor.
//
// An LMDP carries K reward functions whose importance is strictly
// ordered per preference-partition block, plus a slack vector δ: a
// bounded tolerance on each higher-priority reward that may be spent
// to improve lower-priority ones. LVI interleaves two loops:
//
//  1. Outer fixed point — sweeps the preference partition in ascending
//     block order. Each sweep snapshots the value tables (V^fixed) and
//     solves every block against that snapshot, so successor values
//     outside the block under work stay frozen for the whole sweep.
//     The sweep repeats until the per-(block, reward) sup-norm change
//     drops to τ = ε·max(0.1, (1−γ)/γ).
//
//  2. Partition solver — for one block with ordering (i_1, …, i_K),
//     runs K nested Bellman passes. Pass t updates V_{i_t} restricted
//     to the actions still admissible (AStar), records the argmax
//     action into the policy, and then shrinks AStar by the δ-slack
//     prune: only actions whose Q is within η = (1−γ)·δ + 10·ε_machine
//     of the maximum survive into pass t+1. Only the innermost pass's
//     argmax survives in the returned policy.
//
// Two Bellman variants are supported (WithLooping): a single sweep per
// pass, leaning on the outer loop to converge, or an inner loop that
// iterates each pass to its own τ before pruning.
//
// Per-state updates within a pass dispatch through the Backend
// interface. CPU ships in this package; an accelerator back-end
// implements the same contract (bounded Bellman iterations over a
// masked state set, returning values plus per-state argmax) and its
// failures surface as ErrAccelerator.
//
// Complexity per outer sweep: O(K·E) time for single-sweep, where E is
// the number of transition entries, times the inner iteration count
// for the looping variant. Memory: O(K·|S|) for the value tables plus
// O(|A|·|P_max|) pruning scratch, all allocated once per Solve.
//
// Errors (sentinel):
//
//   - ErrNilModel           — Solve/ValueOfPolicy received a nil model.
//   - ErrInconsistentModel  — the model violates its contract (bad
//     discount, negative slack, broken partition, empty action set).
//   - ErrNumericFault       — NaN or ±Inf surfaced in a Q or V value.
//   - ErrAccelerator        — a non-CPU backend failed.
//   - ErrNotConverged       — WithMaxIterations cap hit before τ; the
//     returned Result still carries the best policy found.
//
// Determinism: partition order, state order, action order, and
// successor order are all fixed by the model, so two Solve calls on
// the same model and options produce identical policies and
// bit-identical value tables.
package lexvi
