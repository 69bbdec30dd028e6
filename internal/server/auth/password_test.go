package auth

import (
	"strings"
	"testing"

	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	ok, err := h.Verify("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("battery staple", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_SaltsEachHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_ByteLimit(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", MaxPasswordBytes))
	require.NoError(t, err)

	_, err = h.Hash(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, common.ErrorValidation)

	// 24 three-byte runes: 72 bytes.
	_, err = h.Hash(strings.Repeat("€", 24))
	require.NoError(t, err)
	_, err = h.Hash(strings.Repeat("€", 25))
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestPasswordHasher_VerifyOversizedIsFalse(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	base := strings.Repeat("b", MaxPasswordBytes)

	hash, err := h.Hash(base)
	require.NoError(t, err)

	ok, err := h.Verify(base+"tail", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	ok, err := h.Verify("whatever", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.ErrorIs(t, err, common.ErrorConfiguration)
}

func TestPasswordHasher_DefaultCostAndBurn(t *testing.T) {
	h := NewPasswordHasher(0)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	fast := NewPasswordHasher(bcrypt.MinCost)
	fast.Burn("anything")
	fast.Burn(strings.Repeat("x", 100))
	assert.NotEmpty(t, fast.dummy)
}
