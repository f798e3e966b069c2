// Package lexmdp solves Lexicographic Markov Decision Processes: MDPs
// with several reward functions whose importance is strictly ordered,
// with a bounded slack on higher-priority rewards that may be spent to
// improve lower-priority ones.
//
// 🚀 What is lexmdp?
//
//	A small, deterministic, pure-Go toolkit:
//		• lmdp      — the model: dense index arenas, CSR transition and
//		  reward tensors, action masks, preference partitions
//		• lexvi     — Lexicographic Value Iteration: the nested
//		  fixed-point solver with δ-slack action pruning
//		• vi        — single-objective and weighted-sum baselines
//		• gridworld — grid LMDP constructors + ASCII policy rendering
//		• roadnet   — road-network LMDPs from YAML maps, with driver
//		  tiredness and autonomy handover
//
// ✨ Why choose lexmdp?
//
//   - Deterministic end to end — fixed state, action, partition, and
//     successor orders; two identical solves give bit-identical values
//   - Explicit failure modes — sentinel errors for model
//     inconsistency, numeric faults, backend failures, and iteration
//     caps, all matchable with errors.Is
//   - Allocation-aware — solver buffers are sized once per solve and
//     reused across every sweep
//
// Quick ASCII example — a 5×5 grid policy heading to its goal corner:
//
//	. . . . . . .
//	. v > > v v .
//	. v > v v v .
//	. v > v v v .
//	. > > > v v .
//	. > > > > + .
//	. . . . . . .
//
// Start with gridworld.Single and lexvi.Solve, then move to your own
// lmdp.Builder models.
package lexmdp
