package lmdp

import (
	"encoding/gob"
	"fmt"
	"io"
	"math"
)

// rawModel mirrors Model with exported fields for gob. The dump is the
// raw frozen arrays; no derived data is stored beyond what Build
// produced.
type rawModel struct {
	NumStates  int
	NumActions int
	NumRewards int
	Discount   float64
	Slack      []float64
	Actions    [][]int
	RowOff     []int
	Next       []int32
	Prob       []float64
	Reward     [][]float64
	RMin, RMax []float64
	Parts      [][]int
	Orders     [][]int
}

// Dump writes the model's raw arrays to w. The format is a private
// convenience for round-tripping models between processes; it carries
// no versioning and is not a stable interchange contract.
func (m *Model) Dump(w io.Writer) error {
	raw := rawModel{
		NumStates:  m.numStates,
		NumActions: m.numActions,
		NumRewards: m.numRewards,
		Discount:   m.discount,
		Slack:      m.slack,
		Actions:    m.actions,
		RowOff:     m.rowOff,
		Next:       m.next,
		Prob:       m.prob,
		Reward:     m.reward,
		RMin:       m.rmin,
		RMax:       m.rmax,
		Parts:      m.parts,
		Orders:     m.orders,
	}
	if err := gob.NewEncoder(w).Encode(&raw); err != nil {
		return fmt.Errorf("lmdp: dump: %w", err)
	}

	return nil
}

// Load reads a model previously written by Dump. The decoded arrays
// are re-validated structurally; a stream that decodes but violates
// the model contract returns ErrCorruptDump.
func Load(r io.Reader) (*Model, error) {
	var raw rawModel
	if err := gob.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDump, err)
	}

	m := &Model{
		numStates:  raw.NumStates,
		numActions: raw.NumActions,
		numRewards: raw.NumRewards,
		discount:   raw.Discount,
		slack:      raw.Slack,
		actions:    raw.Actions,
		rowOff:     raw.RowOff,
		next:       raw.Next,
		prob:       raw.Prob,
		reward:     raw.Reward,
		rmin:       raw.RMin,
		rmax:       raw.RMax,
		parts:      raw.Parts,
		orders:     raw.Orders,
	}
	if err := m.sane(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDump, err)
	}

	return m, nil
}

// sane re-checks the structural invariants of a decoded model: array
// lengths agree, indices are in range, rows are stochastic, and the
// partition is valid. It is cheaper than a full rebuild and shares the
// partition check with Build.
func (m *Model) sane() error {
	if m.numStates <= 0 || m.numActions <= 0 || m.numRewards <= 0 {
		return fmt.Errorf("%w: bad counts", ErrInconsistentModel)
	}
	if !(m.discount > 0 && m.discount < 1) {
		return ErrBadDiscount
	}
	if len(m.slack) != m.numRewards || len(m.reward) != m.numRewards {
		return ErrSlackLength
	}
	if len(m.rowOff) != m.numStates*m.numActions+1 || len(m.actions) != m.numStates {
		return fmt.Errorf("%w: bad row offsets", ErrInconsistentModel)
	}
	e := len(m.next)
	if len(m.prob) != e || m.rowOff[0] != 0 || m.rowOff[len(m.rowOff)-1] != e {
		return fmt.Errorf("%w: bad entry arrays", ErrInconsistentModel)
	}
	for i := range m.reward {
		if len(m.reward[i]) != e {
			return fmt.Errorf("%w: bad reward arrays", ErrInconsistentModel)
		}
	}
	for r := 1; r < len(m.rowOff); r++ {
		if m.rowOff[r] < m.rowOff[r-1] {
			return fmt.Errorf("%w: non-monotone row offsets", ErrInconsistentModel)
		}
	}
	for r := 0; r+1 < len(m.rowOff); r++ {
		lo, hi := m.rowOff[r], m.rowOff[r+1]
		sum := 0.0
		for _, p := range m.prob[lo:hi] {
			if p < 0 || math.IsNaN(p) {
				return fmt.Errorf("%w: row %d holds probability %v", ErrNotStochastic, r, p)
			}
			sum += p
		}
		if lo < hi && math.Abs(sum-1) > StochasticTol {
			return fmt.Errorf("%w: row %d sums to %v", ErrNotStochastic, r, sum)
		}
	}
	for _, n := range m.next {
		if n < 0 || int(n) >= m.numStates {
			return fmt.Errorf("%w: successor %d", ErrIndexRange, n)
		}
	}

	return checkPartition(m.parts, m.orders, m.numStates, m.numRewards)
}
