package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/api"
	"github.com/Santi-a-ux/Horios-OTT/internal/common"
	"github.com/Santi-a-ux/Horios-OTT/internal/logging"
	"github.com/Santi-a-ux/Horios-OTT/internal/metrics"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const accessTokenKey ctxKey = "accessToken"

// requestInterceptor tags the call with a request id, converts service errors
// into status errors and records the outcome.
func (s *GRPCServer) requestInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	ctx = logging.ContextWithRequestID(ctx, uuid.NewString())
	log := s.logger.With("method", info.FullMethod)

	resp, err := handler(ctx, req)
	if err != nil {
		code := codeOf(err)
		if code == codes.Internal || code == codes.Unknown {
			log.Error(ctx, "request failed", "error", err)
		} else {
			log.Debug(ctx, "request rejected", "code", code.String(), "error", err)
		}
		err = toStatus(err)
	}

	code := status.Code(err)
	metrics.ObserveRPC(info.FullMethod, code.String(), time.Since(start))
	log.Info(ctx, "request finished", "code", code.String(), "took", time.Since(start))
	return resp, err
}

// accessTokenInterceptor requires a bearer token on every non-public method
// and stores it in the context for the handler. The token is validated by
// the services, which also load the caller's current role.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if api.PublicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	token := tokenFromMetadata(ctx)
	if token == "" {
		metrics.AuthFailures.WithLabelValues("missing_token").Inc()
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	return handler(context.WithValue(ctx, accessTokenKey, token), req)
}

func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
		v := values[0]
		if len(v) > len(common.BearerPrefix) && strings.EqualFold(v[:len(common.BearerPrefix)], common.BearerPrefix) {
			return strings.TrimSpace(v[len(common.BearerPrefix):])
		}
	}
	if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey).(string)
	return token
}

// codeOf maps an error category onto a gRPC code.
func codeOf(err error) codes.Code {
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	switch {
	case errors.Is(err, common.ErrorValidation):
		return codes.InvalidArgument
	case errors.Is(err, common.ErrorUnauthorized):
		return codes.Unauthenticated
	case errors.Is(err, common.ErrorForbidden):
		return codes.PermissionDenied
	case errors.Is(err, common.ErrorNotFound):
		return codes.NotFound
	case errors.Is(err, common.ErrorUpstream):
		return codes.Unavailable
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	default:
		return codes.Internal
	}
}

// toStatus turns err into a status error whose message names only the
// category. Validation messages are the exception: they describe the
// caller's own input.
func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	code := codeOf(err)
	switch code {
	case codes.InvalidArgument:
		return status.Error(code, err.Error())
	case codes.Unauthenticated:
		if errors.Is(err, common.ErrTokenExpired) {
			return status.Error(code, "token expired")
		}
		if errors.Is(err, common.ErrInvalidCredentials) {
			return status.Error(code, common.ErrInvalidCredentials.Error())
		}
		return status.Error(code, "unauthorized")
	case codes.PermissionDenied:
		return status.Error(code, "forbidden")
	case codes.NotFound:
		return status.Error(code, "not found")
	case codes.Unavailable:
		return status.Error(code, "upstream provider unavailable")
	case codes.DeadlineExceeded, codes.Canceled:
		return status.Error(code, code.String())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
