package lexvi

import (
	"fmt"
	"math"
)

// Result is the outcome of one Solve call: the policy, the K×|S| value
// tables, the number of outer sweeps, and whether the convergence
// criterion was met. Policy ownership transfers to the caller; V is
// for post-inspection and must be treated as read-only.
type Result struct {
	Policy     Policy
	V          [][]float64
	Iterations int
	Converged  bool
}

// Solve runs Lexicographic Value Iteration on m and returns the policy
// and per-reward value functions.
//
// Validation happens before any iteration; a malformed model returns
// ErrInconsistentModel without touching the value tables. During the
// run the error exits are ErrNumericFault (NaN/Inf in Q),
// ErrAccelerator (non-CPU backend failure), ErrInconsistentModel (a
// successor index outside the state range, which the up-front
// validation does not inspect), and ErrNotConverged (cap from
// WithMaxIterations hit — uniquely, the Result is still returned
// alongside the error with the best policy found so far).
//
// Complexity: O(sweeps · K · E) time for the single-sweep variant with
// E transition entries; O(K·|S|) memory, allocated once at entry.
func Solve(m Model, opts ...Option) (*Result, error) {
	// 1) Build and validate Options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Backend == nil {
		cfg.Backend = NewCPU()
	}

	// 2) Validate the model before iterating.
	if m == nil {
		return nil, ErrNilModel
	}
	if err := validateModel(m); err != nil {
		return nil, err
	}

	// 3) Allocate the runner (all buffers for the whole solve) and run.
	return newRunner(m, cfg).run()
}

// validateModel re-checks the Model contract at the solve boundary.
// lmdp.Builder already enforces all of this for its models, but the
// interface admits arbitrary implementations.
func validateModel(m Model) error {
	S, A, K := m.NumStates(), m.NumActions(), m.NumRewards()
	if S <= 0 || A <= 0 {
		return fmt.Errorf("%w: need at least one state and one action", ErrInconsistentModel)
	}
	if K <= 0 {
		return fmt.Errorf("%w: need at least one reward factor", ErrInconsistentModel)
	}

	gamma := m.Discount()
	if !(gamma > 0 && gamma < 1) {
		return fmt.Errorf("%w: discount %v outside (0,1)", ErrInconsistentModel, gamma)
	}

	delta := m.Slack()
	if len(delta) != K {
		return fmt.Errorf("%w: slack length %d, want %d", ErrInconsistentModel, len(delta), K)
	}
	for i, d := range delta {
		if d < 0 || math.IsNaN(d) {
			return fmt.Errorf("%w: slack δ[%d] = %v", ErrInconsistentModel, i, d)
		}
	}

	for s := 0; s < S; s++ {
		if len(m.Actions(s)) == 0 {
			return fmt.Errorf("%w: state %d has no admissible actions", ErrInconsistentModel, s)
		}
	}

	parts, orders := m.Partitions()
	if len(parts) == 0 || len(parts) != len(orders) {
		return fmt.Errorf("%w: %d partition blocks, %d orderings", ErrInconsistentModel, len(parts), len(orders))
	}
	seen := make([]bool, S)
	covered := 0
	for j, block := range parts {
		if len(block) == 0 {
			return fmt.Errorf("%w: partition block %d is empty", ErrInconsistentModel, j)
		}
		for _, s := range block {
			if s < 0 || s >= S || seen[s] {
				return fmt.Errorf("%w: partition block %d holds state %d twice or out of range", ErrInconsistentModel, j, s)
			}
			seen[s] = true
			covered++
		}
		if len(orders[j]) != K {
			return fmt.Errorf("%w: ordering %d has length %d, want %d", ErrInconsistentModel, j, len(orders[j]), K)
		}
		mark := make([]bool, K)
		for _, i := range orders[j] {
			if i < 0 || i >= K || mark[i] {
				return fmt.Errorf("%w: ordering %d is not a permutation: %v", ErrInconsistentModel, j, orders[j])
			}
			mark[i] = true
		}
	}
	if covered != S {
		return fmt.Errorf("%w: partition covers %d of %d states", ErrInconsistentModel, covered, S)
	}

	return nil
}

// runner holds every buffer of one Solve execution. All slices are
// allocated in newRunner and reused across outer sweeps; nothing is
// allocated on the sweep path.
type runner struct {
	m   Model
	cfg Options

	numStates  int
	numRewards int
	gamma      float64
	tau        float64
	delta      []float64

	parts  [][]int
	orders [][]int

	v      [][]float64 // K×S working values
	vfixed [][]float64 // K×S snapshot at the start of each outer sweep
	vwork  []float64   // per-layer working table handed to the backend
	pi     []int       // policy under construction

	astarCur  [][]int   // admissible sets of the block under work
	astarNext [][]int   // pruned sets for the following layer
	qs        []float64 // per-state action scores for pruning
}

// newRunner sizes every buffer for the model: value tables, policy,
// and pruning scratch sized to the largest partition block.
func newRunner(m Model, cfg Options) *runner {
	S, A, K := m.NumStates(), m.NumActions(), m.NumRewards()
	parts, orders := m.Partitions()

	maxBlock := 0
	for _, block := range parts {
		if len(block) > maxBlock {
			maxBlock = len(block)
		}
	}

	gamma := m.Discount()
	r := &runner{
		m:          m,
		cfg:        cfg,
		numStates:  S,
		numRewards: K,
		gamma:      gamma,
		tau:        cfg.Epsilon * math.Max(0.1, (1-gamma)/gamma),
		delta:      m.Slack(),
		parts:      parts,
		orders:     orders,
		v:          make([][]float64, K),
		vfixed:     make([][]float64, K),
		vwork:      make([]float64, S),
		pi:         make([]int, S),
		astarCur:   make([][]int, maxBlock),
		astarNext:  make([][]int, maxBlock),
		qs:         make([]float64, A),
	}
	for i := 0; i < K; i++ {
		r.v[i] = make([]float64, S)
		r.vfixed[i] = make([]float64, S)
	}

	// Two backing arenas so the current and the pruned admissible sets
	// never alias.
	curBack := make([]int, maxBlock*A)
	nextBack := make([]int, maxBlock*A)
	for k := 0; k < maxBlock; k++ {
		r.astarCur[k] = curBack[k*A : k*A : (k+1)*A]
		r.astarNext[k] = nextBack[k*A : k*A : (k+1)*A]
	}

	return r
}

// run is the outer fixed point: snapshot, sweep all partition blocks,
// measure the per-(block, reward) sup-norm change, stop at τ.
func (r *runner) run() (*Result, error) {
	for iter := 1; ; iter++ {
		// a) Snapshot V^fixed ← V.
		for i := range r.v {
			copy(r.vfixed[i], r.v[i])
		}

		// b) Solve every partition block against the snapshot, in
		//    ascending block order (deterministic by contract).
		for j := range r.parts {
			if err := r.solveBlock(j); err != nil {
				return nil, err
			}
		}

		// c) Per-(j, i) sup-norm difference, reduced over all pairs.
		//    No partial early stop: the reduction always covers every
		//    block and reward.
		maxDiff := 0.0
		for _, block := range r.parts {
			for i := 0; i < r.numRewards; i++ {
				for _, s := range block {
					if d := math.Abs(r.v[i][s] - r.vfixed[i][s]); d > maxDiff {
						maxDiff = d
					}
				}
			}
		}

		// d) Terminate at τ, or on the iteration cap.
		if maxDiff <= r.tau {
			return &Result{Policy: r.pi, V: r.v, Iterations: iter, Converged: true}, nil
		}
		if r.cfg.MaxIterations > 0 && iter >= r.cfg.MaxIterations {
			res := &Result{Policy: r.pi, V: r.v, Iterations: iter, Converged: false}

			return res, fmt.Errorf("%w: %d sweeps, Δ=%g > τ=%g", ErrNotConverged, iter, maxDiff, r.tau)
		}
	}
}

// solveBlock runs the K-layer partition solve of block j: seed the
// admissible sets with the full per-state action lists, then for each
// reward in the block's preference order run a Bellman pass, publish
// the values, and shrink the sets by the δ-slack prune. The policy
// entry of every block state is overwritten on each layer; the
// innermost layer's argmax is the one that survives.
func (r *runner) solveBlock(j int) error {
	block, order := r.parts[j], r.orders[j]

	// 1) AStar seeding: every admissible action is a candidate for the
	//    highest-priority reward.
	cur, next := r.astarCur[:len(block)], r.astarNext[:len(block)]
	for k, s := range block {
		cur[k] = append(cur[k][:0], r.m.Actions(s)...)
	}

	for t, i := range order {
		// 2a) Working values: successors outside the block stay at the
		//     sweep snapshot; block states iterate from it.
		copy(r.vwork, r.vfixed[i])

		if _, err := r.cfg.Backend.PartitionLayer(r.m, block, i, cur, r.vwork, r.tau, r.cfg.Looping, r.pi); err != nil {
			if _, onCPU := r.cfg.Backend.(*CPU); !onCPU {
				return fmt.Errorf("%w: %s: %v", ErrAccelerator, r.cfg.Backend.Name(), err)
			}

			return err
		}

		// 2b) Publish the layer's values for the block states.
		for _, s := range block {
			r.v[i][s] = r.vwork[s]
		}

		// 2c) δ-slack prune into the next layer's candidate sets.
		if t < len(order)-1 {
			pruned, err := pruneLayer(r.m, block, i, cur, next, r.gamma, r.delta[i], r.vwork, r.qs)
			if err != nil {
				return err
			}
			cur, next = pruned, cur
		}
	}

	return nil
}
