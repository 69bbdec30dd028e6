package videos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/dbx"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
)

// PostgresRepository implements Repository on the videos table.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository binds the repository to db, which may be a
// transaction.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, title, description, is_premium, is_hidden, asset_id, playback_id, status, created_by, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanVideo(row scanner) (*models.Video, error) {
	v := &models.Video{}
	var description, assetID, playbackID sql.NullString
	err := row.Scan(&v.ID, &v.Title, &description, &v.IsPremium, &v.IsHidden,
		&assetID, &playbackID, &v.Status, &v.CreatedBy, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	v.Description = fromNull(description)
	v.AssetID = fromNull(assetID)
	v.PlaybackID = fromNull(playbackID)
	return v, nil
}

func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func toNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *PostgresRepository) Create(ctx context.Context, v *models.Video) (*models.Video, error) {
	query :=
		`INSERT INTO videos (title, description, is_premium, is_hidden, asset_id, playback_id, status, created_by)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		v.Title, toNull(v.Description), v.IsPremium, v.IsHidden,
		toNull(v.AssetID), toNull(v.PlaybackID), v.Status.String(), v.CreatedBy,
	).Scan(&v.ID, &v.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return v, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Video, error) {
	query := `SELECT ` + selectColumns + ` FROM videos WHERE id = $1`

	v, err := scanVideo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

// List returns every video, newest first. Entitlement filtering happens in
// the service layer.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Video, error) {
	query := `SELECT ` + selectColumns + ` FROM videos ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// UpdateStatus is a single-row write; concurrent refreshes are
// last-write-wins.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status models.VideoStatus) error {
	query := `UPDATE videos SET status = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, status.String(), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
