package api

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// RegisterRequest creates a USER account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
	User        User   `json:"user"`
}

// User is the public view of an account.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type WhoAmIRequest struct{}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

// UpdateUserRoleRequest names the role exactly: USER, PREMIUM or ADMIN.
type UpdateUserRoleRequest struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// CreateVideoRequest needs exactly one of SourceURL or SourceKey.
type CreateVideoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	IsPremium   bool    `json:"is_premium"`
	IsHidden    bool    `json:"is_hidden"`
	SourceURL   string  `json:"source_url,omitempty"`
	SourceKey   string  `json:"source_key,omitempty"`
}

// Video is a catalogue entry as seen by clients.
type Video struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	IsPremium   bool      `json:"is_premium"`
	IsHidden    bool      `json:"is_hidden"`
	Status      string    `json:"status"`
	PlaybackID  *string   `json:"playback_id,omitempty"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListVideosRequest struct{}

type ListVideosResponse struct {
	Videos []Video `json:"videos"`
}

type GetVideoRequest struct {
	ID int64 `json:"id"`
}

type PlayVideoRequest struct {
	ID int64 `json:"id"`
}

// PlayVideoResponse carries a URL only once the video is ready.
type PlayVideoResponse struct {
	Status      string  `json:"status"`
	PlaybackURL *string `json:"playback_url"`
}

type RequestSourceUploadRequest struct{}

// SourceUploadResponse is a presigned PUT for a new source object. Pass Key
// to CreateVideo once the upload finishes.
type SourceUploadResponse struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}
