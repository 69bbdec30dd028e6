// Package services contains the server-side operations: account handling,
// the catalogue, and the access rules both depend on.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/dbx"
	"github.com/Santi-a-ux/Horios-OTT/internal/logging"
	"github.com/Santi-a-ux/Horios-OTT/internal/metrics"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/auth"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/repositories/repomanager"
	"github.com/Santi-a-ux/Horios-OTT/internal/validation"
)

// Credentials is the input of Register and Login. The email is an opaque,
// case-sensitive identifier; only presence and length are checked.
type Credentials struct {
	Email    string `validate:"required,max=254"`
	Password string `validate:"required"`
}

// Session is a freshly issued access token and the user it belongs to.
type Session struct {
	Token string
	User  *models.User
}

// UserService handles registration, login and role administration.
type UserService struct {
	runner    dbx.Runner
	repos     repomanager.RepositoryManager
	gate      *Gate
	passwords *auth.PasswordHasher
	tokens    *auth.TokenManager
	log       logging.Logger
	now       func() time.Time
}

// NewUserService wires the account operations.
func NewUserService(runner dbx.Runner, repos repomanager.RepositoryManager, gate *Gate,
	passwords *auth.PasswordHasher, tokens *auth.TokenManager, log logging.Logger) *UserService {
	return &UserService{
		runner:    runner,
		repos:     repos,
		gate:      gate,
		passwords: passwords,
		tokens:    tokens,
		log:       log.With("module", "users"),
		now:       time.Now,
	}
}

// Register creates a USER account and signs it in.
func (s *UserService) Register(ctx context.Context, in Credentials) (*Session, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	// hashing first rejects oversized passwords before anything is written
	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = s.runner.Run(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repos.Users(tx).Create(ctx, &models.User{
			Email:        in.Email,
			PasswordHash: hash,
			Role:         models.RoleUser,
		})
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("%w: email already registered", common.ErrorValidation)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return s.session(user)
}

// Login verifies credentials. Every rejection looks the same to the caller.
func (s *UserService) Login(ctx context.Context, in Credentials) (*Session, error) {
	var user *models.User
	err := s.runner.Run(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repos.Users(tx).FindByEmail(ctx, in.Email)
		return err
	})
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	if user == nil {
		s.passwords.Burn(in.Password)
		return nil, s.rejectLogin(ctx, "unknown_email")
	}

	ok, err := s.passwords.Verify(in.Password, user.PasswordHash)
	if err != nil {
		s.log.Error(ctx, "stored password hash is unusable", "user_id", user.ID, "error", err)
		return nil, err
	}
	if !ok {
		return nil, s.rejectLogin(ctx, "bad_password")
	}

	return s.session(user)
}

func (s *UserService) rejectLogin(ctx context.Context, reason string) error {
	metrics.AuthFailures.WithLabelValues(reason).Inc()
	s.log.Debug(ctx, "login rejected", "reason", reason)
	return fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrInvalidCredentials)
}

func (s *UserService) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Role, s.now())
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: user}, nil
}

// WhoAmI returns the caller's current record.
func (s *UserService) WhoAmI(ctx context.Context, token string) (*models.User, error) {
	var user *models.User
	err := s.runner.Run(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.gate.CurrentIdentity(ctx, tx, token)
		return err
	})
	return user, err
}

// ListUsers returns every account, newest first. ADMIN only.
func (s *UserService) ListUsers(ctx context.Context, token string) ([]*models.User, error) {
	var list []*models.User
	err := s.runner.Run(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.gate.CurrentIdentity(ctx, tx, token)
		if err != nil {
			return err
		}
		if _, err := requireAdmin(user); err != nil {
			return err
		}
		list, err = s.repos.Users(tx).List(ctx)
		return err
	})
	return list, err
}

// UpdateRole sets the role of another account to roleName (USER, PREMIUM or
// ADMIN, exact case). ADMIN only; an admin may not demote themselves. The
// caller is authenticated before the role name is looked at.
func (s *UserService) UpdateRole(ctx context.Context, token string, targetID int64, roleName string) (*models.User, error) {
	var updated *models.User
	err := s.runner.Run(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		actor, err := s.gate.CurrentIdentity(ctx, tx, token)
		if err != nil {
			return err
		}
		if _, err := requireAdmin(actor); err != nil {
			return err
		}
		role, err := models.ParseRole(roleName)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrorValidation, err)
		}

		repo := s.repos.Users(tx)
		if _, err := repo.FindByID(ctx, targetID); err != nil {
			return err
		}
		if err := GuardSelfRoleChange(actor, targetID, role); err != nil {
			return err
		}

		updated, err = repo.UpdateRole(ctx, targetID, role)
		if err != nil {
			return err
		}
		s.log.Info(ctx, "role updated", "actor_id", actor.ID, "user_id", targetID, "role", role.String())
		return nil
	})
	return updated, err
}

// EnsureAdmin makes sure an ADMIN account with the given credentials exists.
// An existing account keeps its id; its role and password are overwritten.
func (s *UserService) EnsureAdmin(ctx context.Context, in Credentials) (*models.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	var admin *models.User
	err = s.runner.Run(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)

		existing, err := repo.FindByEmail(ctx, in.Email)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			admin, err = repo.Create(ctx, &models.User{Email: in.Email, PasswordHash: hash, Role: models.RoleAdmin})
			return err
		case err != nil:
			return err
		}

		if err := repo.UpdatePasswordHash(ctx, existing.ID, hash); err != nil {
			return err
		}
		admin, err = repo.UpdateRole(ctx, existing.ID, models.RoleAdmin)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "bootstrap admin ensured", "user_id", admin.ID)
	return admin, nil
}
