package model

import "context"

// ContextManager stores and extracts the request id carried by a call.
type ContextManager interface {
	SetRequestIDToContext(ctx context.Context, requestID string) context.Context
	GetRequestIDFromContext(ctx context.Context) (string, bool)
}
