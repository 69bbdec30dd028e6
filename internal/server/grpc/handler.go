package grpc

import (
	"context"

	"github.com/Santi-a-ux/Horios-OTT/internal/api"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/services"
)

// handler implements api.HoriosServer on top of the services.
type handler struct {
	s *GRPCServer
}

func (h *handler) Ping(context.Context, *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (h *handler) Register(ctx context.Context, req *api.RegisterRequest) (*api.AuthResponse, error) {
	session, err := h.s.users.Register(ctx, services.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, err
	}
	return h.authResponse(session), nil
}

func (h *handler) Login(ctx context.Context, req *api.LoginRequest) (*api.AuthResponse, error) {
	session, err := h.s.users.Login(ctx, services.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, err
	}
	return h.authResponse(session), nil
}

func (h *handler) authResponse(session *services.Session) *api.AuthResponse {
	return &api.AuthResponse{
		AccessToken: session.Token,
		TokenType:   "bearer",
		ExpiresIn:   h.s.tokenTTL,
		User:        toUser(session.User),
	}
}

func (h *handler) WhoAmI(ctx context.Context, _ *api.WhoAmIRequest) (*api.User, error) {
	user, err := h.s.users.WhoAmI(ctx, tokenFromContext(ctx))
	if err != nil {
		return nil, err
	}
	out := toUser(user)
	return &out, nil
}

func (h *handler) ListUsers(ctx context.Context, _ *api.ListUsersRequest) (*api.ListUsersResponse, error) {
	list, err := h.s.users.ListUsers(ctx, tokenFromContext(ctx))
	if err != nil {
		return nil, err
	}
	resp := &api.ListUsersResponse{Users: make([]api.User, 0, len(list))}
	for _, u := range list {
		resp.Users = append(resp.Users, toUser(u))
	}
	return resp, nil
}

func (h *handler) UpdateUserRole(ctx context.Context, req *api.UpdateUserRoleRequest) (*api.User, error) {
	user, err := h.s.users.UpdateRole(ctx, tokenFromContext(ctx), req.UserID, req.Role)
	if err != nil {
		return nil, err
	}
	out := toUser(user)
	return &out, nil
}

func (h *handler) CreateVideo(ctx context.Context, req *api.CreateVideoRequest) (*api.Video, error) {
	v, err := h.s.videos.CreateVideo(ctx, tokenFromContext(ctx), services.CreateVideoInput{
		Title:       req.Title,
		Description: req.Description,
		IsPremium:   req.IsPremium,
		IsHidden:    req.IsHidden,
		SourceURL:   req.SourceURL,
		SourceKey:   req.SourceKey,
	})
	if err != nil {
		return nil, err
	}
	out := toVideo(v)
	return &out, nil
}

func (h *handler) ListVideos(ctx context.Context, _ *api.ListVideosRequest) (*api.ListVideosResponse, error) {
	list, err := h.s.videos.ListVideos(ctx, tokenFromContext(ctx))
	if err != nil {
		return nil, err
	}
	resp := &api.ListVideosResponse{Videos: make([]api.Video, 0, len(list))}
	for _, v := range list {
		resp.Videos = append(resp.Videos, toVideo(v))
	}
	return resp, nil
}

func (h *handler) GetVideo(ctx context.Context, req *api.GetVideoRequest) (*api.Video, error) {
	v, err := h.s.videos.GetVideo(ctx, tokenFromContext(ctx), req.ID)
	if err != nil {
		return nil, err
	}
	out := toVideo(v)
	return &out, nil
}

func (h *handler) PlayVideo(ctx context.Context, req *api.PlayVideoRequest) (*api.PlayVideoResponse, error) {
	pb, err := h.s.videos.PlayVideo(ctx, tokenFromContext(ctx), req.ID)
	if err != nil {
		return nil, err
	}
	return &api.PlayVideoResponse{Status: pb.Status.String(), PlaybackURL: pb.URL}, nil
}

func (h *handler) RequestSourceUpload(ctx context.Context, _ *api.RequestSourceUploadRequest) (*api.SourceUploadResponse, error) {
	up, err := h.s.videos.RequestSourceUpload(ctx, tokenFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return &api.SourceUploadResponse{Key: up.Key, UploadURL: up.URL, ExpiresAt: up.ExpiresAt}, nil
}

func toUser(u *models.User) api.User {
	return api.User{ID: u.ID, Email: u.Email, Role: u.Role.String(), CreatedAt: u.CreatedAt}
}

func toVideo(v *models.Video) api.Video {
	return api.Video{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		IsPremium:   v.IsPremium,
		IsHidden:    v.IsHidden,
		Status:      v.Status.String(),
		PlaybackID:  v.PlaybackID,
		CreatedBy:   v.CreatedBy,
		CreatedAt:   v.CreatedAt,
	}
}
