package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := &BcryptHasher{Cost: 4}

	hash, err := hasher.Hash("Secret1!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Secret1!", hash)

	assert.True(t, hasher.Verify("Secret1!", hash))
	assert.False(t, hasher.Verify("wrong", hash))
	assert.False(t, hasher.Verify("", hash))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := &BcryptHasher{Cost: 4}

	first, err := hasher.Hash("Secret1!")
	require.NoError(t, err)
	second, err := hasher.Hash("Secret1!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("Secret1!", first))
	assert.True(t, hasher.Verify("Secret1!", second))
}

func TestBcryptHasher_ZeroCostFallsBackToDefault(t *testing.T) {
	hasher := &BcryptHasher{}

	hash, err := hasher.Hash("Secret1!")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("Secret1!", hash))
}

func TestVerify_GarbageHash(t *testing.T) {
	hasher := NewBcryptHasher()
	assert.False(t, hasher.Verify("Secret1!", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Verify("Secret1!", ""))
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate("12345678"))
	assert.True(t, Validate("a much longer passphrase"))
	assert.False(t, Validate("1234567"))
	assert.False(t, Validate(""))
}
