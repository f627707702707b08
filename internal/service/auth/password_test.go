package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher_CostBounds(t *testing.T) {
	t.Parallel()

	for _, cost := range []int{0, 4, 10, 11, bcrypt.MaxCost + 1} {
		_, err := NewBcryptHasher(cost)
		assert.ErrorIs(t, err, ErrBcryptCost, "cost %d", cost)
	}

	h, err := NewBcryptHasher(MinBcryptCost)
	require.NoError(t, err)
	assert.Equal(t, MinBcryptCost, h.Cost())
}

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h, err := NewBcryptHasher(MinBcryptCost)
	require.NoError(t, err)

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$12$"), "unexpected hash prefix: %s", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 12, cost)

	assert.True(t, h.Verify(hash, "correct horse battery staple"))
	assert.False(t, h.Verify(hash, "Correct horse battery staple"))
	assert.False(t, h.Verify(hash, ""))
}

func TestBcryptHasher_VerifyMalformedHash(t *testing.T) {
	t.Parallel()

	h := &BcryptHasher{cost: MinBcryptCost}
	assert.NotPanics(t, func() {
		assert.False(t, h.Verify("", "password"))
		assert.False(t, h.Verify("not-a-hash", "password"))
		assert.False(t, h.Verify("$2a$12$short", "password"))
	})
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	t.Parallel()

	h := &BcryptHasher{cost: MinBcryptCost}
	_, err := h.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
