package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/goccy/go-json"
)

const (
	DefaultBaseURL       = "https://api.mux.com/video/v1"
	DefaultStreamBaseURL = "https://stream.mux.com"

	// maxBodyBytes caps how much of a provider response is read.
	maxBodyBytes = 1 << 20
)

// MuxConfig holds the API credentials and endpoints. Empty URLs and a
// non-positive Timeout fall back to the defaults.
type MuxConfig struct {
	BaseURL       string
	StreamBaseURL string
	TokenID       string
	TokenSecret   string
	Timeout       time.Duration
}

// MuxClient is a thin client for the Mux Video REST API.
type MuxClient struct {
	cfg  MuxConfig
	http *http.Client
}

// NewMuxClient builds a client. A nil httpClient gets one bounded by
// cfg.Timeout.
func NewMuxClient(cfg MuxConfig, httpClient *http.Client) *MuxClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.StreamBaseURL == "" {
		cfg.StreamBaseURL = DefaultStreamBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.StreamBaseURL = strings.TrimRight(cfg.StreamBaseURL, "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &MuxClient{cfg: cfg, http: httpClient}
}

type createAssetRequest struct {
	Input          []assetInput `json:"input"`
	PlaybackPolicy []string     `json:"playback_policy"`
}

type assetInput struct {
	URL string `json:"url"`
}

type assetEnvelope struct {
	Data struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		PlaybackIDs []struct {
			ID     string `json:"id"`
			Policy string `json:"policy"`
		} `json:"playback_ids"`
	} `json:"data"`
}

// CreateAsset asks Mux to ingest sourceURL with a public playback policy.
func (c *MuxClient) CreateAsset(ctx context.Context, sourceURL string) (models.Asset, error) {
	body, err := json.Marshal(createAssetRequest{
		Input:          []assetInput{{URL: sourceURL}},
		PlaybackPolicy: []string{"public"},
	})
	if err != nil {
		return models.Asset{}, fmt.Errorf("%w: encode request: %w", common.ErrorUpstream, err)
	}

	var env assetEnvelope
	if err := c.do(ctx, http.MethodPost, c.cfg.BaseURL+"/assets", body, &env); err != nil {
		return models.Asset{}, err
	}

	if env.Data.ID == "" || len(env.Data.PlaybackIDs) == 0 || env.Data.PlaybackIDs[0].ID == "" {
		return models.Asset{}, fmt.Errorf("%w: mux response missing asset or playback id", common.ErrorUpstream)
	}

	return models.Asset{ID: env.Data.ID, PlaybackID: env.Data.PlaybackIDs[0].ID}, nil
}

// AssetStatus fetches the asset and maps its Mux status onto ours.
func (c *MuxClient) AssetStatus(ctx context.Context, assetID string) (models.VideoStatus, error) {
	var env assetEnvelope
	endpoint := c.cfg.BaseURL + "/assets/" + url.PathEscape(assetID)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &env); err != nil {
		return 0, err
	}
	return mapStatus(env.Data.Status)
}

// PlaybackURL is the HLS manifest URL for playbackID. It makes no request.
func (c *MuxClient) PlaybackURL(playbackID string) string {
	return c.cfg.StreamBaseURL + "/" + playbackID + ".m3u8"
}

// mapStatus translates Mux's asset states to ours. An absent status means
// the asset is still being prepared.
func mapStatus(s string) (models.VideoStatus, error) {
	switch s {
	case "", "preparing", "processing":
		return models.StatusProcessing, nil
	case "ready":
		return models.StatusReady, nil
	case "errored", "failed":
		return models.StatusFailed, nil
	default:
		return 0, fmt.Errorf("%w: unknown mux asset status %q", common.ErrorUpstream, s)
	}
}

func (c *MuxClient) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", common.ErrorUpstream, err)
	}
	req.SetBasicAuth(c.cfg.TokenID, c.cfg.TokenSecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", common.ErrorUpstream, method, endpoint, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", common.ErrorUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s: unexpected status %d", common.ErrorUpstream, method, endpoint, resp.StatusCode)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", common.ErrorUpstream, err)
	}
	return nil
}
