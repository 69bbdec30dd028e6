// Package grpc exposes the account and catalogue operations over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/Santi-a-ux/Horios-OTT/internal/api"
	"github.com/Santi-a-ux/Horios-OTT/internal/logging"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is the account side consumed by the handlers.
type UserService interface {
	Register(ctx context.Context, in services.Credentials) (*services.Session, error)
	Login(ctx context.Context, in services.Credentials) (*services.Session, error)
	WhoAmI(ctx context.Context, token string) (*models.User, error)
	ListUsers(ctx context.Context, token string) ([]*models.User, error)
	UpdateRole(ctx context.Context, token string, targetID int64, roleName string) (*models.User, error)
}

// VideoService is the catalogue side consumed by the handlers.
type VideoService interface {
	CreateVideo(ctx context.Context, token string, in services.CreateVideoInput) (*models.Video, error)
	ListVideos(ctx context.Context, token string) ([]*models.Video, error)
	GetVideo(ctx context.Context, token string, id int64) (*models.Video, error)
	PlayVideo(ctx context.Context, token string, id int64) (*models.Playback, error)
	RequestSourceUpload(ctx context.Context, token string) (*models.SourceUpload, error)
}

// GRPCServer serves the Horios service over gRPC.
type GRPCServer struct {
	address  string
	users    UserService
	videos   VideoService
	tokenTTL int64
	logger   logging.Logger
}

// NewGRPCServer builds the server. tokenTTLSeconds is reported to clients as
// expires_in.
func NewGRPCServer(address string, l logging.Logger, us UserService, vs VideoService, tokenTTLSeconds int64) *GRPCServer {
	return &GRPCServer{
		address:  address,
		users:    us,
		videos:   vs,
		tokenTTL: tokenTTLSeconds,
		logger:   l.With("module", "grpc_server"),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestInterceptor, s.accessTokenInterceptor))
	api.RegisterHoriosServer(srv, &handler{s})
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}
