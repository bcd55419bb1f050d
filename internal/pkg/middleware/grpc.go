package middleware

import (
	"context"
	"time"

	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// ContextInterceptor attaches a request id and logs every unary call.
func ContextInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		ctx, id := ensureRequestID(ctx)
		start := time.Now()

		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("request_id", id),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			fields = append(fields, zap.String("code", status.Code(err).String()), zap.Error(err))
			log.Warn("grpc call failed", fields...)
		} else {
			log.Debug("grpc call", fields...)
		}
		return resp, err
	}
}
