package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsVersion7(t *testing.T) {
	v := New()
	assert.Equal(t, 7, int(v.Version()))
}

func TestNewString_RoundTrips(t *testing.T) {
	s := NewString()
	parsed, err := Parse(s)
	require.NoError(t, err)
	assert.Equal(t, s, parsed.String())
}

func TestNew_Unique(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		s := NewString()
		assert.False(t, seen[s])
		seen[s] = true
	}
}
