package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/headerauth/internal/common"
	"github.com/dmitrijs2005/headerauth/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// userIDFromContext returns the subject of a valid access token sent with
// the request.
func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

func firstValue(md metadata.MD, key string) string {
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

// requestInterceptor logs every call with its request id and attaches the
// caller's user id when a valid access token came along. Credential calls
// are unauthenticated, so an invalid token is logged and ignored.
func (s *GRPCServer) requestInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	started := time.Now()

	var requestID, accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		requestID = firstValue(md, common.RequestIDHeaderName)
		accessToken = firstValue(md, common.AccessTokenHeaderName)
	}
	log := s.logger.With("method", info.FullMethod, "request_id", requestID)

	if accessToken != "" {
		if userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret); err == nil {
			ctx = context.WithValue(ctx, userIDKey, userID)
		} else {
			log.Debug(ctx, "ignoring access token", "error", err)
		}
	}

	resp, err := handler(ctx, req)
	log.Info(ctx, "handled", "code", status.Code(err).String(), "elapsed", time.Since(started))
	return resp, err
}
