package auth_test

import (
	"testing"

	"github.com/joyterm/joyterm/bridge/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 8; i++ {
		key, err := auth.GenerateKey()
		require.NoError(t, err)
		assert.Len(t, key, auth.AutoGenKeyLength)
		for _, r := range key {
			isDigit := r >= '0' && r <= '9'
			isUpper := r >= 'A' && r <= 'Z'
			isLower := r >= 'a' && r <= 'z'
			assert.True(t, isDigit || isUpper || isLower, "unexpected char %q", r)
		}
		assert.False(t, seen[key], "key repeated")
		seen[key] = true
	}
}

func TestDeriveKey(t *testing.T) {
	a, err := auth.DeriveKey("hunter2")
	require.NoError(t, err)
	b, err := auth.DeriveKey("hunter2")
	require.NoError(t, err)
	c, err := auth.DeriveKey("hunter3")
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	_, err = auth.DeriveKey("")
	assert.Error(t, err)
}

func TestDeriveSessionKey(t *testing.T) {
	key, err := auth.DeriveKey("hunter2")
	require.NoError(t, err)

	n1 := make([]byte, auth.NonceSize)
	n2 := make([]byte, auth.NonceSize)
	n2[0] = 1

	a := auth.DeriveSessionKey(key, n1, n2)
	assert.Len(t, a, 32)
	assert.Equal(t, a, auth.DeriveSessionKey(key, n1, n2))
	// Swapping the nonces changes the key.
	assert.NotEqual(t, a, auth.DeriveSessionKey(key, n2, n1))
}
