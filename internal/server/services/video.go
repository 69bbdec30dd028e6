package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/dbx"
	"github.com/Santi-a-ux/Horios-OTT/internal/logging"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/provider"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/repositories/repomanager"
	"github.com/Santi-a-ux/Horios-OTT/internal/validation"
)

// SourceStore hands out presigned links for source media kept in object
// storage.
type SourceStore interface {
	PresignPut(ctx context.Context) (models.SourceUpload, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// ErrNoSourceStore is returned by upload operations when object storage is
// not configured.
var ErrNoSourceStore = fmt.Errorf("%w: source uploads are not configured", common.ErrorValidation)

// CreateVideoInput describes a new catalogue entry. Exactly one of SourceURL
// and SourceKey must be set.
type CreateVideoInput struct {
	Title       string  `validate:"required,max=255"`
	Description *string `validate:"omitempty,max=4000"`
	IsPremium   bool
	IsHidden    bool
	SourceURL   string  `validate:"omitempty,http_url"`
	SourceKey   string  `validate:"omitempty,max=512"`
}

// VideoService serves the catalogue and playback.
type VideoService struct {
	runner     dbx.Runner
	repos      repomanager.RepositoryManager
	gate       *Gate
	provider   provider.Provider
	reconciler *Reconciler
	store      SourceStore
	log        logging.Logger
}

// NewVideoService wires the catalogue. store may be nil, which disables
// source uploads.
func NewVideoService(runner dbx.Runner, repos repomanager.RepositoryManager, gate *Gate,
	p provider.Provider, store SourceStore, log logging.Logger) *VideoService {
	return &VideoService{
		runner:     runner,
		repos:      repos,
		gate:       gate,
		provider:   p,
		reconciler: NewReconciler(runner, repos, p, log),
		store:      store,
		log:        log.With("module", "videos"),
	}
}

// identify resolves the caller in its own short unit of work.
func (s *VideoService) identify(ctx context.Context, token string, check Check) (*models.User, error) {
	var user *models.User
	err := s.runner.Run(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.gate.CurrentIdentity(ctx, tx, token)
		if err != nil {
			return err
		}
		if check != nil {
			user, err = check(user)
		}
		return err
	})
	return user, err
}

// CreateVideo registers source media with the provider and stores the new
// entry as processing. ADMIN only. Nothing is stored if the provider fails.
func (s *VideoService) CreateVideo(ctx context.Context, token string, in CreateVideoInput) (*models.Video, error) {
	admin, err := s.identify(ctx, token, requireAdmin)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if (in.SourceURL == "") == (in.SourceKey == "") {
		return nil, fmt.Errorf("%w: exactly one of source url and source key is required", common.ErrorValidation)
	}

	source := in.SourceURL
	if in.SourceKey != "" {
		if s.store == nil {
			return nil, ErrNoSourceStore
		}
		source, err = s.store.PresignGet(ctx, in.SourceKey)
		if err != nil {
			return nil, err
		}
	}

	// provider call runs outside any transaction
	asset, err := s.provider.CreateAsset(ctx, source)
	if err != nil {
		s.log.Warn(ctx, "asset creation failed", "error", err)
		if !errors.Is(err, common.ErrorUpstream) {
			err = fmt.Errorf("%w: %w", common.ErrorUpstream, err)
		}
		return nil, err
	}

	video := &models.Video{
		Title:       in.Title,
		Description: in.Description,
		IsPremium:   in.IsPremium,
		IsHidden:    in.IsHidden,
		AssetID:     &asset.ID,
		PlaybackID:  nonEmpty(asset.PlaybackID),
		Status:      models.StatusProcessing,
		CreatedBy:   admin.ID,
	}

	err = s.runner.Run(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		video, err = s.repos.Videos(tx).Create(ctx, video)
		return err
	})
	if err != nil {
		s.log.Error(ctx, "video insert failed after asset creation", "asset_id", asset.ID, "error", err)
		return nil, err
	}

	s.log.Info(ctx, "video created", "video_id", video.ID, "asset_id", asset.ID, "premium", video.IsPremium)
	return video, nil
}

// ListVideos returns the videos the caller may see, newest first.
func (s *VideoService) ListVideos(ctx context.Context, token string) ([]*models.Video, error) {
	var list []*models.Video
	err := s.runner.Run(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.gate.CurrentIdentity(ctx, tx, token)
		if err != nil {
			return err
		}
		all, err := s.repos.Videos(tx).List(ctx)
		if err != nil {
			return err
		}
		list = FilterVisible(all, user.Role)
		return nil
	})
	return list, err
}

// GetVideo returns one video. A missing id is reported before entitlement.
func (s *VideoService) GetVideo(ctx context.Context, token string, id int64) (*models.Video, error) {
	user, video, err := s.load(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if err := CheckAccess(video, user.Role); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) load(ctx context.Context, token string, id int64) (*models.User, *models.Video, error) {
	var (
		user  *models.User
		video *models.Video
	)
	err := s.runner.Run(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.gate.CurrentIdentity(ctx, tx, token)
		if err != nil {
			return err
		}
		video, err = s.repos.Videos(tx).FindByID(ctx, id)
		return err
	})
	return user, video, err
}

// PlayVideo refreshes the video's status and, once it is ready and the
// caller is entitled to it, returns the playback URL. A video that is not
// ready yields its status and no URL.
func (s *VideoService) PlayVideo(ctx context.Context, token string, id int64) (*models.Playback, error) {
	user, video, err := s.load(ctx, token, id)
	if err != nil {
		return nil, err
	}

	video, err = s.reconciler.EnsureFresh(ctx, video)
	if err != nil {
		return nil, err
	}

	if video.Status != models.StatusReady {
		return &models.Playback{Status: video.Status}, nil
	}

	if err := CheckAccess(video, user.Role); err != nil {
		return nil, err
	}

	if video.PlaybackID == nil || *video.PlaybackID == "" {
		s.log.Warn(ctx, "ready video has no playback id", "video_id", video.ID)
		return &models.Playback{Status: video.Status}, nil
	}

	url := s.provider.PlaybackURL(*video.PlaybackID)
	return &models.Playback{Status: video.Status, URL: &url}, nil
}

// RequestSourceUpload hands an admin a presigned PUT slot for source media.
func (s *VideoService) RequestSourceUpload(ctx context.Context, token string) (*models.SourceUpload, error) {
	if _, err := s.identify(ctx, token, requireAdmin); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrNoSourceStore
	}

	up, err := s.store.PresignPut(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "source upload presigned", "key", up.Key)
	return &up, nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
