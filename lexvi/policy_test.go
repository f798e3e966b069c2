// File: lexvi/policy_test.go
package lexvi_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lexmdp/lexvi"
)

// TestPolicy_Accessors covers At, Len, and Equal.
func TestPolicy_Accessors(t *testing.T) {
	p := lexvi.Policy{2, 0, 1}

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 2, p.At(0))
	assert.Equal(t, 1, p.At(2))

	assert.True(t, p.Equal(lexvi.Policy{2, 0, 1}))
	assert.False(t, p.Equal(lexvi.Policy{2, 0, 0}))
	assert.False(t, p.Equal(lexvi.Policy{2, 0}))
}

// TestPolicy_YAMLRoundTrip writes and re-reads a policy document.
func TestPolicy_YAMLRoundTrip(t *testing.T) {
	p := lexvi.Policy{1, 3, 0, 2}

	var buf bytes.Buffer
	require.NoError(t, p.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "actions:")

	got, err := lexvi.ReadPolicyYAML(&buf)
	require.NoError(t, err)
	assert.True(t, p.Equal(got))
}

// TestReadPolicyYAML_Malformed rejects invalid documents.
func TestReadPolicyYAML_Malformed(t *testing.T) {
	_, err := lexvi.ReadPolicyYAML(strings.NewReader("actions: {not: a list}"))
	assert.Error(t, err)
}
