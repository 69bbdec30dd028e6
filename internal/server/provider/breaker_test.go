package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/logging"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	calls  int
	status models.VideoStatus
	asset  models.Asset
	err    error
}

func (f *fakeProvider) CreateAsset(context.Context, string) (models.Asset, error) {
	f.calls++
	return f.asset, f.err
}

func (f *fakeProvider) AssetStatus(context.Context, string) (models.VideoStatus, error) {
	f.calls++
	return f.status, f.err
}

func (f *fakeProvider) PlaybackURL(id string) string { return "https://play/" + id }

func newBreaker(next Provider, threshold uint32) *BreakerClient {
	cfg := DefaultBreakerConfig()
	cfg.FailureThreshold = threshold
	cfg.Timeout = time.Hour
	return NewBreakerClient(next, cfg, logging.NopLogger{})
}

func TestBreaker_PassesThrough(t *testing.T) {
	fp := &fakeProvider{status: models.StatusReady, asset: models.Asset{ID: "a", PlaybackID: "p"}}
	b := newBreaker(fp, 3)

	st, err := b.AssetStatus(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, st)

	asset, err := b.CreateAsset(context.Background(), "src")
	require.NoError(t, err)
	assert.Equal(t, "p", asset.PlaybackID)

	assert.Equal(t, "https://play/p", b.PlaybackURL("p"))
	assert.Equal(t, 2, fp.calls)
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	boom := errors.New("connection refused")
	fp := &fakeProvider{err: boom}
	b := newBreaker(fp, 2)

	for i := 0; i < 2; i++ {
		_, err := b.AssetStatus(context.Background(), "a")
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.AssetStatus(context.Background(), "a")
	assert.ErrorIs(t, err, common.ErrorUpstream)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, fp.calls, "open breaker must not call the provider")

	_, err = b.CreateAsset(context.Background(), "src")
	assert.ErrorIs(t, err, common.ErrorUpstream)
}

type ctxProvider struct{ fakeProvider }

func (p *ctxProvider) AssetStatus(ctx context.Context, _ string) (models.VideoStatus, error) {
	p.calls++
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return models.StatusReady, nil
}

func TestBreaker_CallerCancellationDoesNotTrip(t *testing.T) {
	fp := &ctxProvider{fakeProvider{asset: models.Asset{ID: "a", PlaybackID: "p"}}}
	b := newBreaker(fp, 2)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		_, err := b.AssetStatus(cancelled, "a")
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())

	asset, err := b.CreateAsset(context.Background(), "src")
	require.NoError(t, err)
	assert.Equal(t, "p", asset.PlaybackID)
}

func TestBreaker_TimeoutsStillTrip(t *testing.T) {
	fp := &fakeProvider{err: fmt.Errorf("%w: GET /assets/a: %w", common.ErrorUpstream, context.DeadlineExceeded)}
	b := newBreaker(fp, 2)

	for i := 0; i < 2; i++ {
		_, _ = b.AssetStatus(context.Background(), "a")
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())
}
