package middleware

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/dtroode/letterbox-server/internal/mocks"
	"github.com/dtroode/letterbox-server/internal/testutil"
)

type ctxKey struct{}

func TestRequestID_HandleGRPC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		incoming   string
		hasID      bool
		wantReused bool
	}{
		{name: "client id is kept", incoming: "client-req", hasID: true, wantReused: true},
		{name: "missing id is generated", incoming: "", hasID: false},
		{name: "oversized id is replaced", incoming: strings.Repeat("x", 200), hasID: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cm := mocks.NewContextManager(t)
			cm.On("GetRequestIDFromContext", mock.Anything).Return(tt.incoming, tt.hasID)

			var assigned string
			cm.On("SetRequestIDToContext", mock.Anything, mock.AnythingOfType("string")).
				Return(func(ctx context.Context, id string) context.Context {
					assigned = id
					return context.WithValue(ctx, ctxKey{}, id)
				})

			m := NewRequestID(cm, testutil.MakeNoopLogger())
			info := &grpc.UnaryServerInfo{FullMethod: "/letterbox.v1.Messaging/GetUser"}

			var seen string
			_, err := m.HandleGRPC(context.Background(), struct{}{}, info, func(ctx context.Context, req interface{}) (interface{}, error) {
				seen, _ = ctx.Value(ctxKey{}).(string)
				return "ok", nil
			})
			require.NoError(t, err)
			assert.Equal(t, assigned, seen)

			if tt.wantReused {
				assert.Equal(t, tt.incoming, assigned)
				return
			}
			_, parseErr := uuid.Parse(assigned)
			assert.NoError(t, parseErr)
		})
	}
}
