// Package provider talks to the external asset-processing service (Mux)
// that transcodes source media and reports playback readiness.
package provider

import (
	"context"

	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
)

// Provider is the asset provider contract. Every network failure, non-2xx
// answer, malformed payload or timeout comes back as an error wrapping
// common.ErrorUpstream. PlaybackURL never touches the network.
type Provider interface {
	CreateAsset(ctx context.Context, sourceURL string) (models.Asset, error)
	AssetStatus(ctx context.Context, assetID string) (models.VideoStatus, error)
	PlaybackURL(playbackID string) string
}
