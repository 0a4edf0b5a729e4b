package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("Secret!1")
	require.NoError(t, err)

	assert.NotEqual(t, "Secret!1", hash)
	assert.True(t, hasher.Verify("Secret!1", hash))
	assert.False(t, hasher.Verify("wrong", hash))
}

func TestBcryptHasher_DistinctSalts(t *testing.T) {
	hasher := NewBcryptHasher()

	first, err := hasher.Hash("Secret!1")
	require.NoError(t, err)
	second, err := hasher.Hash("Secret!1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("Secret!1", first))
	assert.True(t, hasher.Verify("Secret!1", second))
}
