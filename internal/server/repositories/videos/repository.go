// Package videos persists catalogue entries.
package videos

import (
	"context"

	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
)

// Repository stores catalogue entries. Missing ids return
// common.ErrorNotFound. List is newest first.
type Repository interface {
	Create(ctx context.Context, video *models.Video) (*models.Video, error)
	FindByID(ctx context.Context, id int64) (*models.Video, error)
	List(ctx context.Context) ([]*models.Video, error)
	UpdateStatus(ctx context.Context, id int64, status models.VideoStatus) error
}
