package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	key := []byte("signing-key")

	token, err := GenerateToken(key, 42, "student", "test-agent")
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "test-agent", claims.UserAgent)
}

func TestParseTokenWrongKey(t *testing.T) {
	token, err := GenerateToken([]byte("key-one"), 42, "student", "test-agent")
	require.NoError(t, err)

	_, err = ParseToken([]byte("key-two"), token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken([]byte("signing-key"), "not.a.token")
	assert.Error(t, err)
}
