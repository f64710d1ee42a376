package middleware

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/dtroode/letterbox-server/internal/logger"
	"github.com/dtroode/letterbox-server/internal/model"
)

const (
	requestIDHeader    = "x-request-id"
	maxRequestIDLength = 128
)

// RequestID is a unary interceptor that assigns every call a request id.
// A client supplied x-request-id is kept, otherwise a new UUID is generated.
// The id is echoed back in response headers.
type RequestID struct {
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewRequestID creates a new RequestID middleware instance.
func NewRequestID(contextManager model.ContextManager, logger *logger.Logger) *RequestID {
	return &RequestID{contextManager: contextManager, logger: logger}
}

// HandleGRPC injects the request id into ctx before calling handler.
func (m *RequestID) HandleGRPC(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	requestID, ok := m.contextManager.GetRequestIDFromContext(ctx)
	if !ok || len(requestID) > maxRequestIDLength {
		requestID = uuid.NewString()
	}

	ctx = m.contextManager.SetRequestIDToContext(ctx, requestID)

	if err := grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, requestID)); err != nil {
		m.logger.Debug("gRPC request id header not sent",
			"method", info.FullMethod,
			"error", err.Error())
	}

	return handler(ctx, req)
}
