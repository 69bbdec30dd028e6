// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// gRPC surface
	RPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horios_rpc_requests_total",
			Help: "Total number of gRPC calls by method and status code",
		},
		[]string{"method", "code"},
	)

	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "horios_rpc_duration_seconds",
			Help:    "Duration of gRPC calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Asset provider
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horios_provider_requests_total",
			Help: "Total number of asset provider calls by operation and outcome",
		},
		[]string{"operation", "outcome"}, // outcome: "ok", "error", "canceled", "rejected"
	)

	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "horios_provider_duration_seconds",
			Help:    "Duration of asset provider calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	ProviderBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "horios_provider_breaker_state",
			Help: "Asset provider circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// Status reconciliation
	StatusRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horios_status_refresh_total",
			Help: "Lazy status refreshes by result",
		},
		[]string{"result"}, // "unchanged", "updated", "stale"
	)

	// Authentication
	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horios_auth_failures_total",
			Help: "Rejected credentials by reason",
		},
		[]string{"reason"},
	)
)

// ObserveProvider records one provider call.
func ObserveProvider(operation, outcome string, d time.Duration) {
	ProviderRequests.WithLabelValues(operation, outcome).Inc()
	ProviderDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveRPC records one finished gRPC call.
func ObserveRPC(method, code string, d time.Duration) {
	RPCRequests.WithLabelValues(method, code).Inc()
	RPCDuration.WithLabelValues(method).Observe(d.Seconds())
}
