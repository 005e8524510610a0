package auth

import (
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hash)

	ok, err := CheckPassword("rahasia123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword("salah", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPassword_Argon2id(t *testing.T) {
	hash, err := argon2id.CreateHash("rahasia123", argon2id.DefaultParams)
	require.NoError(t, err)

	ok, err := CheckPassword("rahasia123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword("salah", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	ok, err := CheckPassword("x", "not-a-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}
