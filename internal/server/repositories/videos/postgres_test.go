package videos

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var videoColumns = []string{"id", "title", "description", "is_premium", "is_hidden", "asset_id", "playback_id", "status", "created_by", "created_at"}

const (
	qInsert = `(?s)^INSERT\s+INTO\s+videos\s*\(title,\s*description,\s*is_premium,\s*is_hidden,\s*asset_id,\s*playback_id,\s*status,\s*created_by\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7,\s*\$8\)\s*RETURNING\s+id,\s*created_at\s*$`
	qByID   = `(?s)^SELECT\s+id,\s*title,.*created_at\s+FROM\s+videos\s+WHERE\s+id\s*=\s*\$1$`
	qList   = `(?s)^SELECT\s+id,\s*title,.*created_at\s+FROM\s+videos\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC$`
	qStatus = `(?s)^UPDATE\s+videos\s+SET\s+status\s*=\s*\$1\s+WHERE\s+id\s*=\s*\$2$`
)

func ptr(s string) *string { return &s }

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qInsert).
		WithArgs("Intro", nil, true, false, "asset-1", "pb-1", "processing", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), created))

	v := &models.Video{
		Title:      "Intro",
		IsPremium:  true,
		AssetID:    ptr("asset-1"),
		PlaybackID: ptr("pb-1"),
		Status:     models.StatusProcessing,
		CreatedBy:  1,
	}
	got, err := repo.Create(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
	assert.Equal(t, created, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qInsert).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Video{Title: "x", Status: models.StatusProcessing})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qByID).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(videoColumns).
			AddRow(int64(10), "Intro", "about", true, true, "asset-1", nil, "ready", int64(1), created))

	got, err := repo.FindByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Intro", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "about", *got.Description)
	assert.True(t, got.IsHidden)
	assert.Equal(t, "asset-1", *got.AssetID)
	assert.Nil(t, got.PlaybackID)
	assert.Equal(t, models.StatusReady, got.Status)

	mock.ExpectQuery(qByID).WithArgs(int64(11)).WillReturnError(sql.ErrNoRows)
	_, err = repo.FindByID(context.Background(), 11)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFindByID_BadStatus(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qByID).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(videoColumns).
			AddRow(int64(10), "Intro", nil, false, false, nil, nil, "uploading", int64(1), created))

	_, err := repo.FindByID(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qList).
		WillReturnRows(sqlmock.NewRows(videoColumns).
			AddRow(int64(2), "B", nil, true, false, nil, nil, "processing", int64(1), created.Add(time.Minute)).
			AddRow(int64(1), "A", nil, false, false, nil, nil, "failed", int64(1), created))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, models.StatusFailed, got[1].Status)

	mock.ExpectQuery(qList).WillReturnError(errors.New("db down"))
	_, err = repo.List(context.Background())
	assert.Error(t, err)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(qStatus).WithArgs("ready", int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), 1, models.StatusReady))

	mock.ExpectExec(qStatus).WithArgs("failed", int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), 2, models.StatusFailed), common.ErrorNotFound)

	mock.ExpectExec(qStatus).WithArgs("ready", int64(3)).WillReturnError(errors.New("db down"))
	err := repo.UpdateStatus(context.Background(), 3, models.StatusReady)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}
