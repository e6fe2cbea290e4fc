package grpc

import (
	"context"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/httpx"
	"github.com/tair/foodgram/pkg/logger"
	"github.com/tair/foodgram/pkg/metrics"
)

// publicMethods skip authentication
var publicMethods = map[string]bool{
	ResolveShortLinkMethod: true,
}

// LoggingInterceptor logs gRPC requests and records their metrics
func LoggingInterceptor(m *metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		duration := time.Since(start)
		code := status.Code(err)
		m.ObserveGRPC(info.FullMethod, code.String(), duration)

		event := logger.Info(ctx)
		if err != nil && code == codes.Internal {
			event = logger.Error(ctx).Err(err)
		}
		event.
			Str("method", info.FullMethod).
			Str("code", code.String()).
			Dur("duration", duration).
			Msg("gRPC request")

		return resp, err
	}
}

// AuthInterceptor validates bearer tokens from the authorization metadata
func AuthInterceptor(tokens httpx.TokenValidator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "metadata not provided")
		}
		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "authorization token not provided")
		}

		token := values[0]
		for _, scheme := range []string{"Bearer ", "Token "} {
			token = strings.TrimPrefix(token, scheme)
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		return handler(auth.WithActor(ctx, auth.ActorFromClaims(claims)), req)
	}
}
