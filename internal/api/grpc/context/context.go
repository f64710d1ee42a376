package context

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// RequestIDKey is the metadata key carrying the request id in both
// directions.
const RequestIDKey = "x-request-id"

// Manager represents a gRPC context manager for request id operations.
// It keeps the request id in incoming metadata so handlers read it the same
// way whether it was sent by the client or generated by the server.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetRequestIDToContext stores requestID in the incoming metadata of ctx,
// replacing any value the client sent.
func (m *Manager) SetRequestIDToContext(ctx context.Context, requestID string) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(map[string]string{RequestIDKey: requestID})
	} else {
		md = md.Copy()
		md.Set(RequestIDKey, requestID)
	}

	return metadata.NewIncomingContext(ctx, md)
}

// GetRequestIDFromContext returns the request id from incoming metadata.
func (m *Manager) GetRequestIDFromContext(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}

	return firstNonEmpty(md.Get(RequestIDKey))
}

// GetRequestIDFromResponseMetadata returns the request id the server echoed
// in response headers. Clients obtain md with grpc.Header.
func (m *Manager) GetRequestIDFromResponseMetadata(md metadata.MD) (string, bool) {
	return firstNonEmpty(md.Get(RequestIDKey))
}

func firstNonEmpty(values []string) (string, bool) {
	if len(values) == 0 || values[0] == "" {
		return "", false
	}
	return values[0], true
}
