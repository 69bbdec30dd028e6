package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/api"
	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// horiosAPI is the generated-style client surface; tests substitute a fake.
type horiosAPI interface {
	Ping(ctx context.Context, in *api.PingRequest, opts ...grpc.CallOption) (*api.PingResponse, error)
	Register(ctx context.Context, in *api.RegisterRequest, opts ...grpc.CallOption) (*api.AuthResponse, error)
	Login(ctx context.Context, in *api.LoginRequest, opts ...grpc.CallOption) (*api.AuthResponse, error)
	WhoAmI(ctx context.Context, in *api.WhoAmIRequest, opts ...grpc.CallOption) (*api.User, error)
	ListUsers(ctx context.Context, in *api.ListUsersRequest, opts ...grpc.CallOption) (*api.ListUsersResponse, error)
	UpdateUserRole(ctx context.Context, in *api.UpdateUserRoleRequest, opts ...grpc.CallOption) (*api.User, error)
	CreateVideo(ctx context.Context, in *api.CreateVideoRequest, opts ...grpc.CallOption) (*api.Video, error)
	ListVideos(ctx context.Context, in *api.ListVideosRequest, opts ...grpc.CallOption) (*api.ListVideosResponse, error)
	GetVideo(ctx context.Context, in *api.GetVideoRequest, opts ...grpc.CallOption) (*api.Video, error)
	PlayVideo(ctx context.Context, in *api.PlayVideoRequest, opts ...grpc.CallOption) (*api.PlayVideoResponse, error)
	RequestSourceUpload(ctx context.Context, in *api.RequestSourceUploadRequest, opts ...grpc.CallOption) (*api.SourceUploadResponse, error)
}

// GRPCClient implements Client over gRPC and keeps the session token in
// memory only.
type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      horiosAPI

	mu          sync.RWMutex
	accessToken string
}

// NewHoriosClient dials endpointURL lazily. timeout bounds every call; zero
// means no limit beyond the caller's context.
func NewHoriosClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

// InitGRPCClient creates the connection. It does not dial until the first
// call.
func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewHoriosClient(conn)
	return nil
}

// Close releases the connection.
func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = t
}

func (s *GRPCClient) LoggedIn() bool { return s.token() != "" }

func (s *GRPCClient) Logout() { s.setToken("") }

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the session token, if any, to every call.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" && !api.PublicMethods[method] {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) requireSession() error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, email, password string) (*api.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Register(ctx, &api.RegisterRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.setToken(resp.AccessToken)
	return &resp.User, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*api.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.setToken(resp.AccessToken)
	return &resp.User, nil
}

func (s *GRPCClient) WhoAmI(ctx context.Context) (*api.User, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.WhoAmI(ctx, &api.WhoAmIRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ListUsers(ctx context.Context) ([]api.User, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListUsers(ctx, &api.ListUsersRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Users, nil
}

func (s *GRPCClient) UpdateUserRole(ctx context.Context, userID int64, role string) (*api.User, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.UpdateUserRole(ctx, &api.UpdateUserRoleRequest{UserID: userID, Role: role})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CreateVideo(ctx context.Context, req *api.CreateVideoRequest) (*api.Video, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.CreateVideo(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ListVideos(ctx context.Context) ([]api.Video, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListVideos(ctx, &api.ListVideosRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Videos, nil
}

func (s *GRPCClient) GetVideo(ctx context.Context, id int64) (*api.Video, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetVideo(ctx, &api.GetVideoRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) PlayVideo(ctx context.Context, id int64) (*api.PlayVideoResponse, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.PlayVideo(ctx, &api.PlayVideoRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) RequestSourceUpload(ctx context.Context) (*api.SourceUploadResponse, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.RequestSourceUpload(ctx, &api.RequestSourceUploadRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// mapError keeps the server's message but classifies it by code.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.NotFound:
		return ErrNotFound
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
