package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager([]byte("super-secret"), "HS256", 360*time.Minute)
	require.NoError(t, err)
	return m
}

func TestIssueAndValidate_Success(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	tok, err := m.Issue(42, models.RolePremium, issuedAt)
	require.NoError(t, err)

	id, role, err := m.Validate(tok, issuedAt.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, models.RolePremium, role)
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	tok, err := m.Issue(1, models.RoleUser, issuedAt)
	require.NoError(t, err)

	_, _, err = m.Validate(tok, issuedAt.Add(360*time.Minute))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.ErrorIs(t, err, common.ErrTokenExpired)

	_, _, err = m.Validate(tok, issuedAt.Add(359*time.Minute))
	assert.NoError(t, err)
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newManager(t).Issue(2, models.RoleUser, issuedAt)
	require.NoError(t, err)

	other, err := NewTokenManager([]byte("wrong-secret"), "HS256", time.Hour)
	require.NoError(t, err)

	_, _, err = other.Validate(tok, issuedAt)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestValidate_TamperedPayload(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	tok, err := m.Issue(3, models.RoleUser, issuedAt)
	require.NoError(t, err)

	admin, err := m.Issue(3, models.RoleAdmin, issuedAt)
	require.NoError(t, err)

	// Swap the payload of an admin token into a user token's signature.
	userParts := strings.Split(tok, ".")
	adminParts := strings.Split(admin, ".")
	forged := strings.Join([]string{userParts[0], adminParts[1], userParts[2]}, ".")

	_, _, err = m.Validate(forged, issuedAt)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestValidate_RejectsOtherAlgorithm(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "5",
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
		Role: models.RoleAdmin,
	})
	signed, err := tok.SignedString([]byte("super-secret"))
	require.NoError(t, err)

	_, _, err = m.Validate(signed, issuedAt)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "5", ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour))},
		Role:             models.RoleAdmin,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = m.Validate(unsigned, issuedAt)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestValidate_MissingExpiryOrBadSubject(t *testing.T) {
	t.Parallel()
	m := newManager(t)
	secret := []byte("super-secret")

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
		Role:             models.RoleUser,
	}).SignedString(secret)
	require.NoError(t, err)
	_, _, err = m.Validate(noExp, issuedAt)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	badSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour))},
		Role:             models.RoleUser,
	}).SignedString(secret)
	require.NoError(t, err)
	_, _, err = m.Validate(badSub, issuedAt)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestValidate_MalformedString(t *testing.T) {
	t.Parallel()

	_, _, err := newManager(t).Validate("not.a.jwt", issuedAt)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestNewTokenManager_Configuration(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager([]byte("k"), "RS256", time.Hour)
	assert.ErrorIs(t, err, common.ErrorConfiguration)

	_, err = NewTokenManager(nil, "HS256", time.Hour)
	assert.ErrorIs(t, err, common.ErrorConfiguration)

	_, err = NewTokenManager([]byte("k"), "HS256", 0)
	assert.ErrorIs(t, err, common.ErrorConfiguration)

	m, err := NewTokenManager([]byte("k"), "HS384", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, m.TTL())
}
