// Package repomanager wires repository constructors to a storage backend:
// PostgreSQL with goose migrations, or an in-memory store.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/dbx"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/migrations"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/repositories/users"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/repositories/videos"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager hands out pgx-backed repositories. It holds no
// state; the handle passed to Users/Videos decides the transaction scope.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Videos(db dbx.DBTX) videos.Repository {
	return videos.NewPostgresRepository(db)
}

// gooseUp is replaced in tests.
var gooseUp = func(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// RunMigrations brings the users and videos schema up to date.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("%w: postgres manager has no database handle", common.ErrorConfiguration)
	}
	if err := gooseUp(ctx, db); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
