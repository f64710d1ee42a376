package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/letterbox-server/internal/logger"
	"github.com/dtroode/letterbox-server/internal/model"
)

// Logging is a unary interceptor that logs gRPC requests and results.
type Logging struct {
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(contextManager model.ContextManager, logger *logger.Logger) *Logging {
	return &Logging{contextManager: contextManager, logger: logger}
}

// HandleGRPC logs method name, request id, duration and status for each
// unary request. Client errors are logged at warn level and server errors
// at error level.
func (l *Logging) HandleGRPC(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	requestID, _ := l.contextManager.GetRequestIDFromContext(ctx)
	log := l.logger.With("request_id", requestID, "method", info.FullMethod)

	log.Debug("gRPC request started")

	resp, err := handler(ctx, req)

	duration := time.Since(start)

	statusCode := codes.OK
	if err != nil {
		if st, ok := status.FromError(err); ok {
			statusCode = st.Code()
		} else {
			statusCode = codes.Internal
		}
	}

	args := []any{
		"duration_ms", duration.Milliseconds(),
		"status", statusCode.String(),
	}

	switch statusCode {
	case codes.OK:
		log.Info("gRPC request completed", args...)
	case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
		log.Error("gRPC request failed", append(args, "error", err.Error())...)
	default:
		log.Warn("gRPC request rejected", append(args, "error", err.Error())...)
	}

	return resp, err
}
