package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/dbx"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/auth"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/repositories/repomanager"
)

// Gate resolves the caller behind a bearer token.
type Gate struct {
	tokens *auth.TokenManager
	repos  repomanager.RepositoryManager
	now    func() time.Time
}

// NewGate builds a gate that resolves tokens against the current users.
func NewGate(tokens *auth.TokenManager, repos repomanager.RepositoryManager) *Gate {
	return &Gate{tokens: tokens, repos: repos, now: time.Now}
}

// CurrentIdentity validates token and loads the user it names through tx.
// The returned record carries the persisted role; the role claim inside the
// token is ignored so that role changes apply before the token expires.
func (g *Gate) CurrentIdentity(ctx context.Context, tx dbx.DBTX, token string) (*models.User, error) {
	id, _, err := g.tokens.Validate(token, g.now())
	if err != nil {
		return nil, err
	}

	user, err := g.repos.Users(tx).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", common.ErrorUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

// Check passes the user through or rejects it with common.ErrorForbidden.
type Check func(user *models.User) (*models.User, error)

// Require builds a Check that admits only the listed roles. Calling it with
// no roles is a programming error and panics.
func Require(allowed ...models.Role) Check {
	if len(allowed) == 0 {
		panic("services.Require: empty role set")
	}
	set := slices.Clone(allowed)
	return func(user *models.User) (*models.User, error) {
		if user == nil || !slices.Contains(set, user.Role) {
			return nil, common.ErrorForbidden
		}
		return user, nil
	}
}

var requireAdmin = Require(models.RoleAdmin)

// GuardSelfRoleChange stops an admin from giving up their own admin role.
// Setting one's own role to ADMIN again is allowed.
func GuardSelfRoleChange(actor *models.User, targetID int64, newRole models.Role) error {
	if actor.ID == targetID && newRole != models.RoleAdmin {
		return fmt.Errorf("%w: admins cannot change their own role", common.ErrorValidation)
	}
	return nil
}
