package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyHashRoundTrip(t *testing.T) {
	key, err := GenerateSecureRandomString(16)
	require.NoError(t, err)
	assert.Len(t, key, 32)

	hash, err := HashAPIKey(key)
	require.NoError(t, err)

	assert.True(t, CheckAPIKeyHash(key, hash))
	assert.False(t, CheckAPIKeyHash(key+"x", hash))
	assert.False(t, CheckAPIKeyHash(key, "not-a-hash"))
}

func TestGenerateSecureRandomString_RejectsNonPositiveLength(t *testing.T) {
	_, err := GenerateSecureRandomString(0)
	assert.Error(t, err)
}
