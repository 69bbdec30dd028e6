package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims plus the role held at issuance. The
// subject is the decimal user id.
type Claims struct {
	jwt.RegisteredClaims
	Role models.Role `json:"role"`
}

// TokenManager issues and validates HMAC-signed access tokens. Tokens are
// stateless; expiry is their only invalidation.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

var hmacMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// NewTokenManager accepts HS256, HS384 or HS512. An unknown algorithm, an
// empty secret or a non-positive ttl is a configuration error.
func NewTokenManager(secret []byte, algorithm string, ttl time.Duration) (*TokenManager, error) {
	method, ok := hmacMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported signing algorithm %q", common.ErrorConfiguration, algorithm)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty signing secret", common.ErrorConfiguration)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: token ttl must be positive", common.ErrorConfiguration)
	}
	return &TokenManager{secret: secret, method: method, ttl: ttl}, nil
}

// TTL is the lifetime given to every issued token.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for subjectID carrying role, valid from now for TTL.
func (m *TokenManager) Issue(subjectID int64, role models.Role, now time.Time) (string, error) {
	token := jwt.NewWithClaims(m.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Role: role,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorConfiguration, err)
	}
	return signed, nil
}

// Validate checks the signature, then expiry against now, then decodes the
// subject and role.
func (m *TokenManager) Validate(tokenString string, now time.Time) (int64, models.Role, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, 0, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrTokenExpired)
		}
		return 0, 0, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrInvalidToken)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || !claims.Role.Valid() {
		return 0, 0, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrInvalidToken)
	}

	return id, claims.Role, nil
}
