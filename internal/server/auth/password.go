// Package auth holds the credential primitives of the server: bcrypt
// password hashing and signed access tokens.
package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is bcrypt's input ceiling. Longer input is rejected
// rather than silently truncated.
const MaxPasswordBytes = 72

// PasswordHasher hashes and verifies account passwords with bcrypt.
type PasswordHasher struct {
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewPasswordHasher returns a hasher with the given bcrypt cost. A cost of 0
// selects bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of password. Input over MaxPasswordBytes is a
// validation error.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", fmt.Errorf("%w: password exceeds %d bytes", common.ErrorValidation, MaxPasswordBytes)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorConfiguration, err)
	}
	return string(b), nil
}

// Verify reports whether password matches hash. A wrong or oversized
// password is false with a nil error; only a malformed stored hash is an
// error.
func (h *PasswordHasher) Verify(password, hash string) (bool, error) {
	if len(password) > MaxPasswordBytes {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: stored password hash: %w", common.ErrorConfiguration, err)
	}
}

// Burn spends roughly the same time as a Verify call. Login uses it when the
// email is unknown so response timing does not reveal which accounts exist.
func (h *PasswordHasher) Burn(password string) {
	h.dummyOnce.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("horios-timing-guard"), h.cost)
	})
	if len(password) > MaxPasswordBytes {
		password = password[:MaxPasswordBytes]
	}
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
