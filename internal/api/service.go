package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "horios.v1.Horios"

const (
	PingMethod                = "/" + ServiceName + "/Ping"
	RegisterMethod            = "/" + ServiceName + "/Register"
	LoginMethod               = "/" + ServiceName + "/Login"
	WhoAmIMethod              = "/" + ServiceName + "/WhoAmI"
	ListUsersMethod           = "/" + ServiceName + "/ListUsers"
	UpdateUserRoleMethod      = "/" + ServiceName + "/UpdateUserRole"
	CreateVideoMethod         = "/" + ServiceName + "/CreateVideo"
	ListVideosMethod          = "/" + ServiceName + "/ListVideos"
	GetVideoMethod            = "/" + ServiceName + "/GetVideo"
	PlayVideoMethod           = "/" + ServiceName + "/PlayVideo"
	RequestSourceUploadMethod = "/" + ServiceName + "/RequestSourceUpload"
)

// PublicMethods may be called without an access token.
var PublicMethods = map[string]bool{
	PingMethod:     true,
	RegisterMethod: true,
	LoginMethod:    true,
}

// HoriosServer is implemented by the gRPC handler.
type HoriosServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	WhoAmI(context.Context, *WhoAmIRequest) (*User, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	UpdateUserRole(context.Context, *UpdateUserRoleRequest) (*User, error)
	CreateVideo(context.Context, *CreateVideoRequest) (*Video, error)
	ListVideos(context.Context, *ListVideosRequest) (*ListVideosResponse, error)
	GetVideo(context.Context, *GetVideoRequest) (*Video, error)
	PlayVideo(context.Context, *PlayVideoRequest) (*PlayVideoResponse, error)
	RequestSourceUpload(context.Context, *RequestSourceUploadRequest) (*SourceUploadResponse, error)
}

// unary adapts a typed server method to a grpc.MethodDesc.
func unary[Req, Resp any](fullMethod string, call func(HoriosServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	name := fullMethod[len(ServiceName)+2:]
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(HoriosServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(HoriosServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the Horios service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HoriosServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(PingMethod, HoriosServer.Ping),
		unary(RegisterMethod, HoriosServer.Register),
		unary(LoginMethod, HoriosServer.Login),
		unary(WhoAmIMethod, HoriosServer.WhoAmI),
		unary(ListUsersMethod, HoriosServer.ListUsers),
		unary(UpdateUserRoleMethod, HoriosServer.UpdateUserRole),
		unary(CreateVideoMethod, HoriosServer.CreateVideo),
		unary(ListVideosMethod, HoriosServer.ListVideos),
		unary(GetVideoMethod, HoriosServer.GetVideo),
		unary(PlayVideoMethod, HoriosServer.PlayVideo),
		unary(RequestSourceUploadMethod, HoriosServer.RequestSourceUpload),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "horios/v1/horios.json",
}

// RegisterHoriosServer registers srv on s.
func RegisterHoriosServer(s grpc.ServiceRegistrar, srv HoriosServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// HoriosClient is the client side of the service.
type HoriosClient struct {
	cc grpc.ClientConnInterface
}

// NewHoriosClient returns a client whose calls use the JSON codec.
func NewHoriosClient(cc grpc.ClientConnInterface) *HoriosClient {
	return &HoriosClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *HoriosClient, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HoriosClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c, PingMethod, in, opts)
}

func (c *HoriosClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c, RegisterMethod, in, opts)
}

func (c *HoriosClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c, LoginMethod, in, opts)
}

func (c *HoriosClient) WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c, WhoAmIMethod, in, opts)
}

func (c *HoriosClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c, ListUsersMethod, in, opts)
}

func (c *HoriosClient) UpdateUserRole(ctx context.Context, in *UpdateUserRoleRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c, UpdateUserRoleMethod, in, opts)
}

func (c *HoriosClient) CreateVideo(ctx context.Context, in *CreateVideoRequest, opts ...grpc.CallOption) (*Video, error) {
	return invoke[Video](ctx, c, CreateVideoMethod, in, opts)
}

func (c *HoriosClient) ListVideos(ctx context.Context, in *ListVideosRequest, opts ...grpc.CallOption) (*ListVideosResponse, error) {
	return invoke[ListVideosResponse](ctx, c, ListVideosMethod, in, opts)
}

func (c *HoriosClient) GetVideo(ctx context.Context, in *GetVideoRequest, opts ...grpc.CallOption) (*Video, error) {
	return invoke[Video](ctx, c, GetVideoMethod, in, opts)
}

func (c *HoriosClient) PlayVideo(ctx context.Context, in *PlayVideoRequest, opts ...grpc.CallOption) (*PlayVideoResponse, error) {
	return invoke[PlayVideoResponse](ctx, c, PlayVideoMethod, in, opts)
}

func (c *HoriosClient) RequestSourceUpload(ctx context.Context, in *RequestSourceUploadRequest, opts ...grpc.CallOption) (*SourceUploadResponse, error) {
	return invoke[SourceUploadResponse](ctx, c, RequestSourceUploadMethod, in, opts)
}
