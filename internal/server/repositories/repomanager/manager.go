package repomanager

import (
	"context"
	"database/sql"

	"github.com/Santi-a-ux/Horios-OTT/internal/dbx"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/repositories/users"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/repositories/videos"
)

// RepositoryManager vends repositories bound to a unit-of-work handle.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Videos(db dbx.DBTX) videos.Repository
}
