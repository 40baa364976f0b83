package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "battery staple"))
}

func TestCheckPassword_EmptyHash(t *testing.T) {
	assert.False(t, CheckPassword("", "anything"))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	h1, err := HashPassword("pw123456", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("pw123456", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
