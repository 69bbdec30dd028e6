// Package client is the CLI's view of the Horios gRPC API. It keeps the
// access token of the current session and translates status codes into
// package errors.
package client

import (
	"context"

	"github.com/Santi-a-ux/Horios-OTT/internal/api"
)

// Client is what the CLI needs from the server. Methods other than Ping,
// Register and Login return ErrNotLoggedIn without a session.
type Client interface {
	Close() error
	LoggedIn() bool
	Logout()
	Ping(ctx context.Context) error
	Register(ctx context.Context, email, password string) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.User, error)
	WhoAmI(ctx context.Context) (*api.User, error)
	ListUsers(ctx context.Context) ([]api.User, error)
	UpdateUserRole(ctx context.Context, userID int64, role string) (*api.User, error)
	CreateVideo(ctx context.Context, req *api.CreateVideoRequest) (*api.Video, error)
	ListVideos(ctx context.Context) ([]api.Video, error)
	GetVideo(ctx context.Context, id int64) (*api.Video, error)
	PlayVideo(ctx context.Context, id int64) (*api.PlayVideoResponse, error)
	RequestSourceUpload(ctx context.Context) (*api.SourceUploadResponse, error)
}
