package lexvi

import (
	"fmt"
	"math"
)

// Backend runs the Bellman passes of one reward layer over one
// partition block. The host solver drives the K-layer nesting and all
// pruning; a backend only iterates values and reports argmax actions.
//
// The contract, shared by CPU and device implementations:
//
//   - states lists the block's members; admissible[k] lists the
//     candidate actions of states[k] (never empty).
//   - v is the full working value table for the active reward: entries
//     outside the block are frozen successor values and must not be
//     written; entries inside the block are updated in place.
//   - Each sweep computes, for every k,
//     max_{a ∈ admissible[k]} Q(states[k], a | v-before-this-sweep)
//     (a Jacobi sweep: all reads see the pre-sweep values), writes the
//     maximum into v[states[k]], and the argmax action — first
//     occurrence on ties — into pi[states[k]].
//   - With looping=false exactly one sweep runs; with looping=true
//     sweeps repeat until the block's sup-norm change is ≤ tau.
//   - The sup-norm change of the final sweep is returned.
//
// Implementations are not safe for concurrent use; the solver calls
// them sequentially.
type Backend interface {
	// Name identifies the backend in errors and diagnostics.
	Name() string

	// PartitionLayer performs the pass described above.
	PartitionLayer(m Model, states []int, reward int, admissible [][]int, v []float64, tau float64, looping bool, pi []int) (float64, error)
}

// CPU is the in-process backend: plain Go Bellman sweeps. The zero
// value is ready to use; NewCPU returns one. A CPU value reuses its
// sweep scratch across calls and must not be shared between
// concurrently running solves.
type CPU struct {
	vals []float64 // per-sweep Jacobi scratch, one slot per block state
}

// NewCPU returns a CPU backend.
func NewCPU() *CPU { return &CPU{} }

// Name implements Backend.
func (c *CPU) Name() string { return "cpu" }

// PartitionLayer implements Backend with Jacobi Bellman sweeps.
// Complexity: O(sweeps · Σ_k Σ_{a ∈ admissible[k]} |succ|).
func (c *CPU) PartitionLayer(m Model, states []int, reward int, admissible [][]int, v []float64, tau float64, looping bool, pi []int) (float64, error) {
	if cap(c.vals) < len(states) {
		c.vals = make([]float64, len(states))
	}
	vals := c.vals[:len(states)]

	gamma := m.Discount()
	diff := 0.0
	for {
		diff = 0

		// One Jacobi sweep: score every block state against the
		// pre-sweep values, remembering the argmax action.
		for k, s := range states {
			acts := admissible[k]
			if len(acts) == 0 {
				return 0, fmt.Errorf("%w: state %d has no candidate actions", ErrInconsistentModel, s)
			}

			best := math.Inf(-1)
			bestA := acts[0]
			for _, a := range acts {
				q, err := qValue(m, reward, s, a, gamma, v)
				if err != nil {
					return 0, err
				}
				if q > best {
					best = q
					bestA = a
				}
			}
			vals[k] = best
			pi[s] = bestA

			if d := math.Abs(best - v[s]); d > diff {
				diff = d
			}
		}

		// Publish the sweep.
		for k, s := range states {
			v[s] = vals[k]
		}

		if !looping || diff <= tau {
			return diff, nil
		}
	}
}
