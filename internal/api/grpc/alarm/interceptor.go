package alarm

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// LoggingInterceptor writes one access log line per call to accessLog and
// puts a request-scoped logger into the handler context.
func LoggingInterceptor(accessLog *zap.SugaredLogger) grpc.UnaryServerInterceptor {
	access := accessLog.Desugar()

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		actor := ActorFromContext(ctx)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("actor", actor.String()),
		}

		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			fields = append(fields, zap.String("peer", p.Addr.String()))
		}

		ctx = logger.WithFields(ctx, fields...)

		resp, err := handler(ctx, req)

		code := status.Code(err)
		fields = append(fields, zap.String("code", code.String()), zap.Duration("duration", time.Since(start)))

		switch code {
		case codes.OK:
			access.Info("RPC handled", fields...)
		case codes.Internal, codes.Unknown:
			access.Error("RPC failed", append(fields, zap.Error(err))...)
		default:
			access.Warn("RPC rejected", append(fields, zap.Error(err))...)
		}

		return resp, err
	}
}
