// Package users persists user accounts.
package users

import (
	"context"

	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
)

// Repository stores accounts. Lookups that match nothing return
// common.ErrorNotFound; a duplicate email on Create returns
// common.ErrorAlreadyExists. List is newest first.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}
