package flake

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextID(t *testing.T) {
	id, err := NextID()
	require.NoError(t, err)
	require.NotEmpty(t, id)

	id1, err := NextID()
	require.NoError(t, err)
	require.NotEqual(t, id, id1)
}

func TestParseFlakeID(t *testing.T) {
	id, err := NextID()
	require.NoError(t, err)

	createdAt, err := ParseFlakeID(id)
	require.NoError(t, err)

	id1, err := NextID()
	require.NoError(t, err)
	createdAt1, err := ParseFlakeID(id1)
	require.NoError(t, err)

	require.True(t, createdAt1.After(createdAt))
}
