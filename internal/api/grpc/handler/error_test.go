package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/letterbox-server/internal/apperrors"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name     string
		in       error
		wantCode codes.Code
		wantMsg  string
	}{
		{
			name:     "validation error",
			in:       apperrors.NewErrNoRecipients(),
			wantCode: codes.InvalidArgument,
			wantMsg:  "Message must have at least one recipient.",
		},
		{
			name:     "not found error",
			in:       apperrors.NewErrRecipientNotFound(id),
			wantCode: codes.NotFound,
			wantMsg:  fmt.Sprintf("Recipient with ID %s not found.", id),
		},
		{
			name:     "wrapped api error",
			in:       fmt.Errorf("send: %w", apperrors.NewErrSenderNotFound()),
			wantCode: codes.NotFound,
			wantMsg:  "Sender not found.",
		},
		{
			name:     "canceled",
			in:       fmt.Errorf("query: %w", context.Canceled),
			wantCode: codes.Canceled,
			wantMsg:  "request canceled",
		},
		{
			name:     "deadline",
			in:       context.DeadlineExceeded,
			wantCode: codes.DeadlineExceeded,
			wantMsg:  "deadline exceeded",
		},
		{
			name:     "other -> Internal",
			in:       errors.New("pq: relation does not exist"),
			wantCode: codes.Internal,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := handleError(tt.in)
			st, ok := status.FromError(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantMsg, st.Message())
		})
	}
}
