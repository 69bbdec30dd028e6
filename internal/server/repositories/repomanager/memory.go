package repomanager

import (
	"context"
	"database/sql"
	"slices"
	"sync"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/dbx"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/repositories/users"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/repositories/videos"
)

// InMemoryRepositoryManager keeps everything in process memory. Writes are
// immediately visible and never rolled back; pair it with dbx.Direct.
type InMemoryRepositoryManager struct {
	mu     sync.Mutex
	now    func() time.Time
	users  map[int64]models.User
	videos map[int64]models.Video
	nextU  int64
	nextV  int64
}

// NewInMemoryRepositoryManager returns an empty store.
func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		now:    time.Now,
		users:  make(map[int64]models.User),
		videos: make(map[int64]models.Video),
	}
}

// RunMigrations is a no-op; there is no schema.
func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return memUsers{m} }

func (m *InMemoryRepositoryManager) Videos(dbx.DBTX) videos.Repository { return memVideos{m} }

type memUsers struct{ m *InMemoryRepositoryManager }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, existing := range r.m.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	r.m.nextU++
	u.ID = r.m.nextU
	u.CreatedAt = r.m.now()
	r.m.users[u.ID] = *u
	return u, nil
}

func (r memUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	u, ok := r.m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, u := range r.m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) List(context.Context) ([]*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	out := make([]*models.User, 0, len(r.m.users))
	for _, u := range r.m.users {
		out = append(out, &u)
	}
	slices.SortFunc(out, func(a, b *models.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	return out, nil
}

func (r memUsers) UpdateRole(_ context.Context, id int64, role models.Role) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	u, ok := r.m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.Role = role
	r.m.users[id] = u
	return &u, nil
}

func (r memUsers) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	u, ok := r.m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	r.m.users[id] = u
	return nil
}

type memVideos struct{ m *InMemoryRepositoryManager }

func (r memVideos) Create(_ context.Context, v *models.Video) (*models.Video, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	r.m.nextV++
	v.ID = r.m.nextV
	v.CreatedAt = r.m.now()
	r.m.videos[v.ID] = *v
	return v, nil
}

func (r memVideos) FindByID(_ context.Context, id int64) (*models.Video, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	v, ok := r.m.videos[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &v, nil
}

func (r memVideos) List(context.Context) ([]*models.Video, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	out := make([]*models.Video, 0, len(r.m.videos))
	for _, v := range r.m.videos {
		out = append(out, &v)
	}
	slices.SortFunc(out, func(a, b *models.Video) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	return out, nil
}

func (r memVideos) UpdateStatus(_ context.Context, id int64, status models.VideoStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	v, ok := r.m.videos[id]
	if !ok {
		return common.ErrorNotFound
	}
	v.Status = status
	r.m.videos[id] = v
	return nil
}
