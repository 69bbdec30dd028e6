package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/api"
	"github.com/Santi-a-ux/Horios-OTT/internal/dbx"
	"github.com/Santi-a-ux/Horios-OTT/internal/logging"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/auth"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/repositories/repomanager"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type stubProvider struct {
	status models.VideoStatus
	err    error
}

func (p *stubProvider) CreateAsset(context.Context, string) (models.Asset, error) {
	if p.err != nil {
		return models.Asset{}, p.err
	}
	return models.Asset{ID: "asset-1", PlaybackID: "pb-1"}, nil
}

func (p *stubProvider) AssetStatus(context.Context, string) (models.VideoStatus, error) {
	return p.status, p.err
}

func (p *stubProvider) PlaybackURL(id string) string { return "https://stream.test/" + id + ".m3u8" }

type harness struct {
	client   *api.HoriosClient
	users    *services.UserService
	repos    *repomanager.InMemoryRepositoryManager
	provider *stubProvider
}

func startServer(t *testing.T) *harness {
	t.Helper()

	tokens, err := auth.NewTokenManager([]byte("grpc-test"), "HS256", time.Hour)
	require.NoError(t, err)

	repos := repomanager.NewInMemoryRepositoryManager()
	runner := dbx.Direct{}
	gate := services.NewGate(tokens, repos)
	log := logging.NopLogger{}
	p := &stubProvider{status: models.StatusReady}

	us := services.NewUserService(runner, repos, gate, auth.NewPasswordHasher(bcrypt.MinCost), tokens, log)
	vs := services.NewVideoService(runner, repos, gate, p, nil, log)

	srv := NewGRPCServer("bufnet", log, us, vs, 3600)
	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})

	return &harness{client: api.NewHoriosClient(conn), users: us, repos: repos, provider: p}
}

func bearer(token string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
}

func TestPing(t *testing.T) {
	h := startServer(t)
	resp, err := h.client.Ping(context.Background(), &api.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
}

func TestRegisterLoginWhoAmI(t *testing.T) {
	h := startServer(t)
	ctx := context.Background()

	reg, err := h.client.Register(ctx, &api.RegisterRequest{Email: "amy@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", reg.TokenType)
	assert.Equal(t, int64(3600), reg.ExpiresIn)
	assert.Equal(t, "USER", reg.User.Role)

	login, err := h.client.Login(ctx, &api.LoginRequest{Email: "amy@example.com", Password: "pw"})
	require.NoError(t, err)

	me, err := h.client.WhoAmI(bearer(login.AccessToken), &api.WhoAmIRequest{})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, me.ID)

	// the legacy header is accepted too
	legacy := metadata.AppendToOutgoingContext(ctx, "access_token", login.AccessToken)
	_, err = h.client.WhoAmI(legacy, &api.WhoAmIRequest{})
	require.NoError(t, err)
}

func TestErrorCodes(t *testing.T) {
	h := startServer(t)
	ctx := context.Background()

	_, err := h.client.WhoAmI(ctx, &api.WhoAmIRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = h.client.WhoAmI(bearer("not-a-jwt"), &api.WhoAmIRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = h.client.Login(ctx, &api.LoginRequest{Email: "ghost@example.com", Password: "x"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "invalid email or password", status.Convert(err).Message())

	_, err = h.client.Register(ctx, &api.RegisterRequest{Email: "", Password: "x"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	reg, err := h.client.Register(ctx, &api.RegisterRequest{Email: "u@example.com", Password: "x"})
	require.NoError(t, err)
	user := bearer(reg.AccessToken)

	_, err = h.client.ListUsers(user, &api.ListUsersRequest{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	assert.Equal(t, "forbidden", status.Convert(err).Message())

	_, err = h.client.GetVideo(user, &api.GetVideoRequest{ID: 77})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestAdminFlow(t *testing.T) {
	h := startServer(t)
	ctx := context.Background()

	_, err := h.users.EnsureAdmin(ctx, services.Credentials{Email: "root@example.com", Password: "root"})
	require.NoError(t, err)
	adminLogin, err := h.client.Login(ctx, &api.LoginRequest{Email: "root@example.com", Password: "root"})
	require.NoError(t, err)
	admin := bearer(adminLogin.AccessToken)

	reg, err := h.client.Register(ctx, &api.RegisterRequest{Email: "u@example.com", Password: "x"})
	require.NoError(t, err)
	user := bearer(reg.AccessToken)

	paid, err := h.client.CreateVideo(admin, &api.CreateVideoRequest{Title: "Paid", IsPremium: true, SourceURL: "https://m.test/a.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "processing", paid.Status)

	list, err := h.client.ListVideos(user, &api.ListVideosRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Videos)

	_, err = h.client.PlayVideo(user, &api.PlayVideoRequest{ID: paid.ID})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = h.client.UpdateUserRole(admin, &api.UpdateUserRoleRequest{UserID: reg.User.ID, Role: "PREMIUM"})
	require.NoError(t, err)

	play, err := h.client.PlayVideo(user, &api.PlayVideoRequest{ID: paid.ID})
	require.NoError(t, err)
	assert.Equal(t, "ready", play.Status)
	require.NotNil(t, play.PlaybackURL)
	assert.Equal(t, "https://stream.test/pb-1.m3u8", *play.PlaybackURL)

	_, err = h.client.UpdateUserRole(admin, &api.UpdateUserRoleRequest{UserID: adminLogin.User.ID, Role: "USER"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.client.UpdateUserRole(admin, &api.UpdateUserRoleRequest{UserID: reg.User.ID, Role: "OWNER"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.client.UpdateUserRole(admin, &api.UpdateUserRoleRequest{UserID: reg.User.ID, Role: "admin"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err), "role names are case-sensitive")

	_, err = h.client.UpdateUserRole(bearer("not-a-jwt"), &api.UpdateUserRoleRequest{UserID: reg.User.ID, Role: "OWNER"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err), "authentication is checked before the role")

	_, err = h.client.UpdateUserRole(user, &api.UpdateUserRoleRequest{UserID: reg.User.ID, Role: "OWNER"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err), "authorization is checked before the role")

	_, err = h.client.RequestSourceUpload(admin, &api.RequestSourceUploadRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCreateVideo_ProviderDown(t *testing.T) {
	h := startServer(t)
	ctx := context.Background()

	_, err := h.users.EnsureAdmin(ctx, services.Credentials{Email: "root@example.com", Password: "root"})
	require.NoError(t, err)
	login, err := h.client.Login(ctx, &api.LoginRequest{Email: "root@example.com", Password: "root"})
	require.NoError(t, err)

	h.provider.err = context.DeadlineExceeded
	_, err = h.client.CreateVideo(bearer(login.AccessToken), &api.CreateVideoRequest{Title: "x", SourceURL: "https://m.test/x.mp4"})
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	srv := NewGRPCServer("127.0.0.1:99999", logging.NopLogger{}, nil, nil, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Error(t, srv.Run(ctx))
}
