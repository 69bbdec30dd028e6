package models

import "time"

// Video is a catalogue entry. IsHidden is stored and returned but no access
// rule reads it.
type Video struct {
	ID          int64
	Title       string
	Description *string
	IsPremium   bool
	IsHidden    bool
	AssetID     *string
	PlaybackID  *string
	Status      VideoStatus
	CreatedBy   int64
	CreatedAt   time.Time
}

// Playback is the result of a play request. URL is nil until the video is
// ready.
type Playback struct {
	Status VideoStatus
	URL    *string
}

// Asset is what the provider hands back when an asset is created.
type Asset struct {
	ID         string
	PlaybackID string
}

// SourceUpload is a presigned slot for uploading source media.
type SourceUpload struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}
