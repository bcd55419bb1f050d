package middleware

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

const RequestIDHeader = "x-request-id"

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the id stored by the interceptors, falling back to
// incoming gRPC metadata.
func RequestID(ctx context.Context) string {
	if val, ok := ctx.Value(requestIDKey).(string); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(RequestIDHeader); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}

func ensureRequestID(ctx context.Context) (context.Context, string) {
	id := RequestID(ctx)
	if id == "" {
		id = uuid.New().String()
	}
	return WithRequestID(ctx, id), id
}
