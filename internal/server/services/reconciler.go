package services

import (
	"context"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/dbx"
	"github.com/Santi-a-ux/Horios-OTT/internal/logging"
	"github.com/Santi-a-ux/Horios-OTT/internal/metrics"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/provider"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/repositories/repomanager"
)

// Reconciler refreshes a video's stored status from the asset provider on
// demand.
type Reconciler struct {
	runner   dbx.Runner
	repos    repomanager.RepositoryManager
	provider provider.Provider
	log      logging.Logger
}

// NewReconciler builds a reconciler writing through runner.
func NewReconciler(runner dbx.Runner, repos repomanager.RepositoryManager, p provider.Provider, log logging.Logger) *Reconciler {
	return &Reconciler{runner: runner, repos: repos, provider: p, log: log.With("module", "reconciler")}
}

// observation is one answer from the provider: a status or the reason there
// is none.
type observation struct {
	status models.VideoStatus
	err    error
}

func (r *Reconciler) observe(ctx context.Context, assetID string) observation {
	status, err := r.provider.AssetStatus(ctx, assetID)
	return observation{status: status, err: err}
}

// EnsureFresh returns v with the provider's current status, persisting it
// when it changed. A failed provider call leaves v as it was and is not an
// error. Only a failure to persist a new status is returned.
func (r *Reconciler) EnsureFresh(ctx context.Context, v *models.Video) (*models.Video, error) {
	if v.AssetID == nil || *v.AssetID == "" {
		return v, nil
	}

	obs := r.observe(ctx, *v.AssetID)
	if obs.err != nil {
		metrics.StatusRefreshes.WithLabelValues("stale").Inc()
		r.log.Warn(ctx, "status refresh failed, serving last known status",
			"video_id", v.ID, "asset_id", *v.AssetID, "status", v.Status.String(), "error", obs.err)
		return v, nil
	}

	if obs.status == v.Status {
		metrics.StatusRefreshes.WithLabelValues("unchanged").Inc()
		return v, nil
	}

	start := time.Now()
	err := r.runner.Run(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return r.repos.Videos(tx).UpdateStatus(ctx, v.ID, obs.status)
	})
	if err != nil {
		return nil, err
	}

	metrics.StatusRefreshes.WithLabelValues("updated").Inc()
	r.log.Info(ctx, "video status changed",
		"video_id", v.ID, "from", v.Status.String(), "to", obs.status.String(), "took", time.Since(start))

	updated := *v
	updated.Status = obs.status
	return &updated, nil
}
