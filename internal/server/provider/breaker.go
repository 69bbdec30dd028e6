package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/logging"
	"github.com/Santi-a-ux/Horios-OTT/internal/metrics"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerConfig tunes the circuit breaker around the asset provider. The
// breaker opens after FailureThreshold consecutive failures and lets one
// trial call through once Timeout has passed.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultBreakerConfig opens after five consecutive failures for 30s.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "mux",
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerClient guards a Provider with a circuit breaker. While the breaker
// is open calls fail fast with common.ErrorUpstream. There are no retries.
type BreakerClient struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[any]
	log  logging.Logger
}

// NewBreakerClient wraps next. State changes are logged and exported as
// horios_provider_breaker_state.
func NewBreakerClient(next Provider, cfg BreakerConfig, log logging.Logger) *BreakerClient {
	b := &BreakerClient{next: next, log: log.With("module", "provider", "breaker", cfg.Name)}

	b.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:         cfg.Name,
		MaxRequests:  cfg.MaxRequests,
		Interval:     cfg.Interval,
		Timeout:      cfg.Timeout,
		IsSuccessful: countsAsSuccess,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.ProviderBreakerState.Set(float64(to))
			b.log.Warn(context.Background(), "circuit breaker state changed", "from", from.String(), "to", to.String())
		},
	})
	return b
}

// countsAsSuccess keeps caller cancellations out of the failure count: an
// abandoned request says nothing about the provider. Timeouts still count.
func countsAsSuccess(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// State reports the current breaker state.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

// CreateAsset is guarded; see BreakerClient.
func (b *BreakerClient) CreateAsset(ctx context.Context, sourceURL string) (models.Asset, error) {
	return execute(b, "create_asset", func() (models.Asset, error) {
		return b.next.CreateAsset(ctx, sourceURL)
	})
}

func (b *BreakerClient) AssetStatus(ctx context.Context, assetID string) (models.VideoStatus, error) {
	return execute(b, "asset_status", func() (models.VideoStatus, error) {
		return b.next.AssetStatus(ctx, assetID)
	})
}

// PlaybackURL never touches the network and bypasses the breaker.
func (b *BreakerClient) PlaybackURL(playbackID string) string {
	return b.next.PlaybackURL(playbackID)
}

func execute[T any](b *BreakerClient, op string, fn func() (T, error)) (T, error) {
	var zero T
	start := time.Now()

	res, err := b.cb.Execute(func() (any, error) {
		v, err := fn()
		return v, err
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, context.Canceled) {
			outcome = "canceled"
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "rejected"
			err = fmt.Errorf("%w: %s: %w", common.ErrorUpstream, op, err)
		}
		metrics.ObserveProvider(op, outcome, time.Since(start))
		return zero, err
	}

	metrics.ObserveProvider(op, "ok", time.Since(start))
	v, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s: unexpected result type %T", common.ErrorInternal, op, res)
	}
	return v, nil
}
