package roadnet

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lexmdp/lmdp"
)

// segment is one directed traversal of a map edge, frozen at build
// time with everything the rewards need.
type segment struct {
	from, to string
	cost     float64 // distance / speed
	goal     bool
	autonomy bool
	scenic   bool
}

// Network couples the built model with the segment bookkeeping needed
// to interpret its states and actions.
type Network struct {
	Model *lmdp.Model

	segs []segment
	out  map[string][]int // node id → outgoing segment indices, ascending
}

// Build constructs the LMDP of a validated map. State indexing:
// segment index × tiredness level; see Network.State to resolve one.
func Build(m *Map, o Options) (*Network, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	if o.Drift < 0 || o.Drift > 1 || o.AutonomyFactor < 1 || o.LandmarkRadius <= 0 {
		return nil, fmt.Errorf("%w: drift=%v factor=%v radius=%v", ErrBadOptions, o.Drift, o.AutonomyFactor, o.LandmarkRadius)
	}

	nodes := make(map[string]Node, len(m.Nodes))
	for _, n := range m.Nodes {
		nodes[n.ID] = n
	}

	// 1) Directed segments, both directions per edge, in input order.
	nw := &Network{out: make(map[string][]int)}
	for _, e := range m.Edges {
		s := segment{
			from:     e.From,
			to:       e.To,
			cost:     e.Distance / e.Speed,
			goal:     e.Name == m.Goal,
			autonomy: e.Autonomy,
			scenic:   nearLandmark(m.Landmarks, nodes[e.From], nodes[e.To], o.LandmarkRadius),
		}
		nw.segs = append(nw.segs, s)

		s.from, s.to = e.To, e.From
		nw.segs = append(nw.segs, s)
	}
	for i, s := range nw.segs {
		nw.out[s.from] = append(nw.out[s.from], i)
	}

	// 2) Action space: (next segment, mode) pairs up to the maximum
	//    intersection degree.
	maxDeg := 0
	for _, outs := range nw.out {
		if len(outs) > maxDeg {
			maxDeg = len(outs)
		}
	}

	b := lmdp.NewBuilder(len(nw.segs)*numTiredness, 2*maxDeg, 2)
	b.SetDiscount(o.Discount)

	// 3) Transitions and rewards.
	for g, seg := range nw.segs {
		for lvl := 0; lvl < numTiredness; lvl++ {
			s := stateIndex(g, lvl)

			// Goal-street segments absorb at zero reward.
			if seg.goal {
				if err := b.AddTransition(s, 0, s, 1, 0, 0); err != nil {
					return nil, err
				}

				continue
			}

			for k, tIdx := range nw.out[seg.to] {
				t := nw.segs[tIdx]

				// Manual: tiredness drifts upward.
				a := 2*k + Manual
				rt, rc := rewards(t, Manual, lvl, o)
				if lvl == Fresh && o.Drift > 0 {
					if err := b.AddTransition(s, a, stateIndex(tIdx, Fresh), 1-o.Drift, rt, rc); err != nil {
						return nil, err
					}
					if err := b.AddTransition(s, a, stateIndex(tIdx, Tired), o.Drift, rt, rc); err != nil {
						return nil, err
					}
				} else {
					if err := b.AddTransition(s, a, stateIndex(tIdx, lvl), 1, rt, rc); err != nil {
						return nil, err
					}
				}

				// Autonomy: only on capable segments; holds the level.
				if t.autonomy {
					a = 2*k + Autonomy
					rt, rc = rewards(t, Autonomy, lvl, o)
					if err := b.AddTransition(s, a, stateIndex(tIdx, lvl), 1, rt, rc); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	// 4) Preference partition by tiredness: Fresh orders (time,
	//    comfort), Tired orders (comfort, time).
	var fresh, tired []int
	for g := range nw.segs {
		fresh = append(fresh, stateIndex(g, Fresh))
		tired = append(tired, stateIndex(g, Tired))
	}
	b.AddPartition(fresh, []int{0, 1})
	b.AddPartition(tired, []int{1, 0})

	model, err := b.Build()
	if err != nil {
		return nil, err
	}
	nw.Model = model

	return nw, nil
}

// rewards computes the (time, comfort) rewards for entering segment t
// in the given mode from tiredness level lvl. Comfort is a discomfort
// signal: manual driving while tired costs 1, autonomy and fresh
// driving are neutral, scenic segments add their bonus.
func rewards(t segment, mode, lvl int, o Options) (rt, rc float64) {
	rt = -t.cost
	if mode == Autonomy {
		rt *= o.AutonomyFactor
	}
	if t.goal {
		rt++
	}
	if mode == Manual && lvl == Tired {
		rc = -1
	}
	if t.scenic {
		rc += o.ScenicBonus
	}

	return rt, rc
}

// NumStates returns the model's state count.
func (nw *Network) NumStates() int { return len(nw.segs) * numTiredness }

// State resolves the state index of traversing from→to at the given
// tiredness level. The second return is false when no such segment
// exists.
func (nw *Network) State(from, to string, level int) (int, bool) {
	for i, s := range nw.segs {
		if s.from == from && s.to == to {
			return stateIndex(i, level), true
		}
	}

	return 0, false
}

// ActionTo resolves the action index that, taken at state s, enters
// the segment towards next in the given mode. The second return is
// false when the move or mode is not admissible at s.
func (nw *Network) ActionTo(s int, next string, mode int) (int, bool) {
	seg := nw.segs[s/numTiredness]
	for k, tIdx := range nw.out[seg.to] {
		t := nw.segs[tIdx]
		if t.to != next {
			continue
		}
		if mode == Autonomy && !t.autonomy {
			return 0, false
		}

		return 2*k + mode, true
	}

	return 0, false
}

// Segment describes state s as (from, to, level) for diagnostics.
func (nw *Network) Segment(s int) (from, to string, level int) {
	seg := nw.segs[s/numTiredness]

	return seg.from, seg.to, s % numTiredness
}

// stateIndex packs (segment, tiredness level) into one state index.
func stateIndex(seg, level int) int { return seg*numTiredness + level }

// nearLandmark reports whether any landmark lies within radius of the
// line through nodes a and b. The distance is to the whole line, so a
// landmark beyond either endpoint also counts when it sits on the
// line's extension.
func nearLandmark(marks []Landmark, a, b Node, radius float64) bool {
	for _, lm := range marks {
		if pointToLine(lm.X, lm.Y, a.X, a.Y, b.X, b.Y) < radius {
			return true
		}
	}

	return false
}

// pointToLine is the perpendicular distance from (x0, y0) to the line
// through (x1, y1) and (x2, y2).
func pointToLine(x0, y0, x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	den := math.Sqrt(dx*dx + dy*dy)
	if den == 0 {
		return math.Hypot(x0-x1, y0-y1)
	}

	return math.Abs(dy*x0-dx*y0-x1*y2+x2*y1) / den
}
