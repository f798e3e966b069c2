package lexvi

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Policy is a stationary deterministic policy: one action index per
// state, indexed by state. Produced by Solve; the only invariant is
// that every state has an entry.
type Policy []int

// At returns the action chosen at state s.
func (p Policy) At(s int) int { return p[s] }

// Len returns the number of states the policy covers.
func (p Policy) Len() int { return len(p) }

// Equal reports whether p and q choose the same action at every state.
func (p Policy) Equal(q Policy) bool {
	if len(p) != len(q) {
		return false
	}
	for s := range p {
		if p[s] != q[s] {
			return false
		}
	}

	return true
}

// policyDoc is the YAML shape consumed by the policy visualizer: the
// per-state action indices in state order.
type policyDoc struct {
	Actions []int `yaml:"actions"`
}

// WriteYAML writes the policy as a YAML document with a single
// `actions` list in state order.
func (p Policy) WriteYAML(w io.Writer) error {
	if err := yaml.NewEncoder(w).Encode(policyDoc{Actions: p}); err != nil {
		return fmt.Errorf("lexvi: policy export: %w", err)
	}

	return nil
}

// ReadPolicyYAML reads a policy previously written by WriteYAML.
func ReadPolicyYAML(r io.Reader) (Policy, error) {
	var doc policyDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("lexvi: policy import: %w", err)
	}

	return doc.Actions, nil
}
