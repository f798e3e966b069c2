package roadnet

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseMap decodes and validates a YAML road map.
func ParseMap(data []byte) (*Map, error) {
	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMap, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// LoadMap reads a YAML road map from r.
func LoadMap(r io.Reader) (*Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMap, err)
	}

	return ParseMap(data)
}

// validate checks the map invariants: non-empty node and edge lists,
// unique node ids, known endpoints, positive distances and speeds, and
// at least one edge named after the goal street. Whether that edge can
// be reached from the rest of the map is not checked.
func (m *Map) validate() error {
	if len(m.Nodes) == 0 || len(m.Edges) == 0 {
		return ErrNoNodes
	}

	ids := make(map[string]bool, len(m.Nodes))
	for _, n := range m.Nodes {
		if ids[n.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		ids[n.ID] = true
	}

	onGoal := false
	for _, e := range m.Edges {
		if !ids[e.From] || !ids[e.To] {
			return fmt.Errorf("%w: %q→%q", ErrUnknownNode, e.From, e.To)
		}
		if e.From == e.To || e.Distance <= 0 || e.Speed <= 0 {
			return fmt.Errorf("%w: %q→%q", ErrBadEdge, e.From, e.To)
		}
		if m.Goal != "" && e.Name == m.Goal {
			onGoal = true
		}
	}
	if m.Goal == "" || !onGoal {
		return fmt.Errorf("%w: %q", ErrNoGoal, m.Goal)
	}

	return nil
}
