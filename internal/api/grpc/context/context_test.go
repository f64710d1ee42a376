package context

import (
	stdctx "context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestManager_SetAndGetRequestID(t *testing.T) {
	m := NewManager()
	ctx := m.SetRequestIDToContext(stdctx.Background(), "req-1")

	got, ok := m.GetRequestIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-1", got)
}

func TestManager_GetRequestID_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetRequestIDFromContext(stdctx.Background())
	assert.False(t, ok)

	ctx := metadata.NewIncomingContext(stdctx.Background(), metadata.Pairs(RequestIDKey, ""))
	_, ok = m.GetRequestIDFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_SetRequestID_WithExistingMetadata(t *testing.T) {
	m := NewManager()
	baseMD := metadata.New(map[string]string{"x-trace-id": "t", RequestIDKey: "client"})
	ctxWithMD := metadata.NewIncomingContext(stdctx.Background(), baseMD)

	ctx := m.SetRequestIDToContext(ctxWithMD, "server")
	got, ok := m.GetRequestIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "server", got)

	md, _ := metadata.FromIncomingContext(ctx)
	assert.Equal(t, []string{"t"}, md.Get("x-trace-id"))
	assert.Equal(t, []string{"client"}, baseMD.Get(RequestIDKey))
}

func TestManager_GetRequestIDFromResponseMetadata(t *testing.T) {
	m := NewManager()
	got, ok := m.GetRequestIDFromResponseMetadata(metadata.Pairs(RequestIDKey, "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", got)

	_, ok = m.GetRequestIDFromResponseMetadata(metadata.MD{})
	assert.False(t, ok)
}
