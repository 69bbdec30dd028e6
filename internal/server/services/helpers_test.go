package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/dbx"
	"github.com/Santi-a-ux/Horios-OTT/internal/logging"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/auth"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeProvider struct {
	mu        sync.Mutex
	status    models.VideoStatus
	statusErr error
	createErr error
	asset     models.Asset
	created   []string
	queries   int
}

func (f *fakeProvider) CreateAsset(_ context.Context, src string) (models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.Asset{}, f.createErr
	}
	f.created = append(f.created, src)
	return f.asset, nil
}

func (f *fakeProvider) AssetStatus(context.Context, string) (models.VideoStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries++
	return f.status, f.statusErr
}

func (f *fakeProvider) PlaybackURL(id string) string {
	return "https://stream.example.com/" + id + ".m3u8"
}

func (f *fakeProvider) set(status models.VideoStatus, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.statusErr = status, err
}

type fakeStore struct {
	getErr error
	keys   []string
}

func (s *fakeStore) PresignPut(context.Context) (models.SourceUpload, error) {
	return models.SourceUpload{Key: "sources/2026/01/02/abc", URL: "https://s3/put", ExpiresAt: time.Unix(100, 0)}, nil
}

func (s *fakeStore) PresignGet(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	s.keys = append(s.keys, key)
	return "https://s3/get/" + key, nil
}

// failingRunner fails every unit of work after the first n.
type failingRunner struct {
	next  dbx.Runner
	after int
	calls int
}

var errStorage = errors.New("storage down")

func (r *failingRunner) Run(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	r.calls++
	if r.calls > r.after {
		return errStorage
	}
	return r.next.Run(ctx, fn)
}

type env struct {
	repos    *repomanager.InMemoryRepositoryManager
	runner   dbx.Runner
	tokens   *auth.TokenManager
	provider *fakeProvider
	store    *fakeStore
	users    *UserService
	videos   *VideoService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	tokens, err := auth.NewTokenManager([]byte("test-secret"), "HS256", time.Hour)
	require.NoError(t, err)

	e := &env{
		repos:    repomanager.NewInMemoryRepositoryManager(),
		runner:   dbx.Direct{},
		tokens:   tokens,
		provider: &fakeProvider{asset: models.Asset{ID: "asset-1", PlaybackID: "play-1"}, status: models.StatusProcessing},
		store:    &fakeStore{},
	}
	gate := NewGate(tokens, e.repos)
	log := logging.NopLogger{}
	e.users = NewUserService(e.runner, e.repos, gate, auth.NewPasswordHasher(bcrypt.MinCost), tokens, log)
	e.videos = NewVideoService(e.runner, e.repos, gate, e.provider, e.store, log)
	return e
}

// signup registers email and returns its token, then forces role.
func (e *env) signup(t *testing.T, email string, role models.Role) (string, *models.User) {
	t.Helper()
	ctx := context.Background()

	s, err := e.users.Register(ctx, Credentials{Email: email, Password: "correct horse"})
	require.NoError(t, err)

	if role != models.RoleUser {
		_, err := e.repos.Users(nil).UpdateRole(ctx, s.User.ID, role)
		require.NoError(t, err)
		s.User.Role = role
	}
	return s.Token, s.User
}

func (e *env) addVideo(t *testing.T, title string, premium bool, status models.VideoStatus) *models.Video {
	t.Helper()
	asset, playback := "asset-"+title, "play-"+title
	v, err := e.repos.Videos(nil).Create(context.Background(), &models.Video{
		Title:      title,
		IsPremium:  premium,
		AssetID:    &asset,
		PlaybackID: &playback,
		Status:     status,
		CreatedBy:  1,
	})
	require.NoError(t, err)
	return v
}

func requireKind(t *testing.T, err, kind error) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
}

