// File: roadnet/roadnet_test.go
package roadnet_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lexmdp/lexvi"
	"github.com/katalvlaran/lexmdp/roadnet"
)

// testMap is a short commute: a — b — c — goal, with autonomy capable
// from b onwards.
const testMap = `
goal: Gray Street
nodes:
  - {id: a, x: 0, y: 0}
  - {id: b, x: 1, y: 0}
  - {id: c, x: 2, y: 0}
  - {id: g, x: 3, y: 0}
edges:
  - {from: a, to: b, distance: 1, speed: 30, name: Main Street}
  - {from: b, to: c, distance: 1, speed: 30, name: Elm Street, autonomy: true}
  - {from: c, to: g, distance: 0.5, speed: 30, name: Gray Street, autonomy: true}
`

func buildTestNetwork(t *testing.T) *roadnet.Network {
	t.Helper()

	m, err := roadnet.ParseMap([]byte(testMap))
	require.NoError(t, err)

	nw, err := roadnet.Build(m, roadnet.DefaultOptions())
	require.NoError(t, err)

	return nw
}

// TestParseMap_Rejects covers the map validation table.
func TestParseMap_Rejects(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "not yaml",
			yaml: "{",
			want: roadnet.ErrBadMap,
		},
		{
			name: "empty",
			yaml: "goal: X",
			want: roadnet.ErrNoNodes,
		},
		{
			name: "duplicate node",
			yaml: `
goal: X
nodes: [{id: a}, {id: a}]
edges: [{from: a, to: a, distance: 1, speed: 1, name: X}]
`,
			want: roadnet.ErrDuplicateNode,
		},
		{
			name: "unknown endpoint",
			yaml: `
goal: X
nodes: [{id: a}, {id: b}]
edges: [{from: a, to: z, distance: 1, speed: 1, name: X}]
`,
			want: roadnet.ErrUnknownNode,
		},
		{
			name: "bad edge",
			yaml: `
goal: X
nodes: [{id: a}, {id: b}]
edges: [{from: a, to: b, distance: 0, speed: 1, name: X}]
`,
			want: roadnet.ErrBadEdge,
		},
		{
			name: "no goal street",
			yaml: `
goal: Gray Street
nodes: [{id: a}, {id: b}]
edges: [{from: a, to: b, distance: 1, speed: 1, name: Main}]
`,
			want: roadnet.ErrNoGoal,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := roadnet.ParseMap([]byte(tc.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestLoadMap reads the same document through the io.Reader entry.
func TestLoadMap(t *testing.T) {
	m, err := roadnet.LoadMap(strings.NewReader(testMap))
	require.NoError(t, err)
	assert.Equal(t, "Gray Street", m.Goal)
	assert.Len(t, m.Edges, 3)
}

// TestBuild_Shape checks state indexing, absorption on the goal
// street, and the tiredness partition.
func TestBuild_Shape(t *testing.T) {
	nw := buildTestNetwork(t)
	m := nw.Model

	// 3 edges × 2 directions × 2 tiredness levels.
	assert.Equal(t, 12, nw.NumStates())
	assert.Equal(t, 12, m.NumStates())
	assert.Equal(t, 2, m.NumRewards())

	// The goal-street segment absorbs at zero reward.
	s, ok := nw.State("c", "g", roadnet.Fresh)
	require.True(t, ok)
	next, prob := m.Successors(s, 0)
	assert.Equal(t, []int32{int32(s)}, next)
	assert.Equal(t, []float64{1}, prob)

	// Manual driving from Fresh splits on the drift probability.
	s, ok = nw.State("a", "b", roadnet.Fresh)
	require.True(t, ok)
	a, ok := nw.ActionTo(s, "c", roadnet.Manual)
	require.True(t, ok)
	_, prob = m.Successors(s, a)
	require.Len(t, prob, 2)
	assert.InDelta(t, 0.9, prob[0], 1e-12)
	assert.InDelta(t, 0.1, prob[1], 1e-12)

	// Autonomy is inadmissible towards non-capable segments.
	_, ok = nw.ActionTo(s, "a", roadnet.Autonomy)
	assert.False(t, ok)

	// Two blocks: Fresh ordered (time, comfort), Tired the reverse.
	parts, orders := m.Partitions()
	require.Len(t, parts, 2)
	assert.Equal(t, []int{0, 1}, orders[0])
	assert.Equal(t, []int{1, 0}, orders[1])
	assert.Len(t, parts[0], 6)
	assert.Len(t, parts[1], 6)
}

// TestBuild_RejectsBadOptions validates the option ranges.
func TestBuild_RejectsBadOptions(t *testing.T) {
	m, err := roadnet.ParseMap([]byte(testMap))
	require.NoError(t, err)

	o := roadnet.DefaultOptions()
	o.AutonomyFactor = 0.5
	_, err = roadnet.Build(m, o)
	assert.ErrorIs(t, err, roadnet.ErrBadOptions)

	o = roadnet.DefaultOptions()
	o.Drift = 1.5
	_, err = roadnet.Build(m, o)
	assert.ErrorIs(t, err, roadnet.ErrBadOptions)
}

// TestBuild_ScenicBonus: a landmark close to an edge marks both of its
// directed segments scenic.
func TestBuild_ScenicBonus(t *testing.T) {
	doc := testMap + `
landmarks:
  - {x: 0.5, y: 0.005}
`
	m, err := roadnet.ParseMap([]byte(doc))
	require.NoError(t, err)
	nw, err := roadnet.Build(m, roadnet.DefaultOptions())
	require.NoError(t, err)

	// Entering a→b from b→a carries the scenic comfort bonus.
	s, ok := nw.State("b", "a", roadnet.Fresh)
	require.True(t, ok)
	a, ok := nw.ActionTo(s, "b", roadnet.Manual)
	require.True(t, ok)
	rc := nw.Model.Rewards(1, s, a)
	require.NotEmpty(t, rc)
	assert.Equal(t, 0.5, rc[0])
}

// TestSolve_TirednessOrdering is the handover scenario: on the same
// road, the tired driver engages autonomy even though it is slower,
// while the fresh driver keeps driving manually.
func TestSolve_TirednessOrdering(t *testing.T) {
	nw := buildTestNetwork(t)

	res, err := lexvi.Solve(nw.Model, lexvi.WithEpsilon(1e-6))
	require.NoError(t, err)
	require.True(t, res.Converged)

	fresh, ok := nw.State("a", "b", roadnet.Fresh)
	require.True(t, ok)
	tired, ok := nw.State("a", "b", roadnet.Tired)
	require.True(t, ok)

	wantManual, ok := nw.ActionTo(fresh, "c", roadnet.Manual)
	require.True(t, ok)
	wantAuto, ok := nw.ActionTo(tired, "c", roadnet.Autonomy)
	require.True(t, ok)

	assert.Equal(t, wantManual, res.Policy.At(fresh), "fresh driver stays manual on the faster variant")
	assert.Equal(t, wantAuto, res.Policy.At(tired), "tired driver hands over to autonomy")

	// Both eventually reach the absorbing goal street, whose values are
	// exactly zero.
	goalT, ok := nw.State("c", "g", roadnet.Tired)
	require.True(t, ok)
	assert.Equal(t, 0.0, res.V[0][goalT])
	assert.Equal(t, 0.0, res.V[1][goalT])
}
