package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/dtroode/letterbox-server/internal/api/grpc/letterboxv1"
	"github.com/dtroode/letterbox-server/internal/apperrors"
	"github.com/dtroode/letterbox-server/internal/logger"
	"github.com/dtroode/letterbox-server/internal/mocks"
	"github.com/dtroode/letterbox-server/internal/model"
	"github.com/dtroode/letterbox-server/internal/testutil"
)

type handlerDeps struct {
	users    *mocks.UserService
	messages *mocks.MessageService
	query    *mocks.QueryService
	cm       *mocks.ContextManager
}

func newTestHandler(t *testing.T) (*Messaging, handlerDeps) {
	t.Helper()
	deps := handlerDeps{
		users:    mocks.NewUserService(t),
		messages: mocks.NewMessageService(t),
		query:    mocks.NewQueryService(t),
		cm:       mocks.NewContextManager(t),
	}
	h := NewMessaging(deps.users, deps.messages, deps.query, deps.cm, testutil.MakeNoopLogger())
	return h, deps
}

func TestMessaging_CreateUser_Success(t *testing.T) {
	t.Parallel()

	h, deps := newTestHandler(t)
	user := model.User{ID: uuid.New(), Email: "a@example.com", Name: "A", CreatedAt: time.Now().UTC()}
	deps.users.On("CreateUser", mock.Anything, model.CreateUserParams{Email: "a@example.com", Name: "A"}).Return(user, nil)

	resp, err := h.CreateUser(context.Background(), &pb.CreateUserRequest{Email: "a@example.com", Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "a@example.com", resp.Email)
}

func TestMessaging_CreateUser_EmailTaken(t *testing.T) {
	t.Parallel()

	h, deps := newTestHandler(t)
	deps.users.On("CreateUser", mock.Anything, mock.AnythingOfType("model.CreateUserParams")).Return(model.User{}, apperrors.NewErrEmailTaken())
	deps.cm.On("GetRequestIDFromContext", mock.Anything).Return("req-1", true)

	resp, err := h.CreateUser(context.Background(), &pb.CreateUserRequest{Email: "a@example.com", Name: "A"})
	assert.Nil(t, resp)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "Email already registered", st.Message())
}

func TestMessaging_InvalidIDs(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	ctx := context.Background()

	calls := map[string]func() error{
		"get user": func() error {
			_, err := h.GetUser(ctx, &pb.GetUserRequest{UserID: "nope"})
			return err
		},
		"send sender": func() error {
			_, err := h.SendMessage(ctx, &pb.SendMessageRequest{SenderID: "nope", Content: "x", RecipientIDs: []string{uuid.NewString()}})
			return err
		},
		"send recipient": func() error {
			_, err := h.SendMessage(ctx, &pb.SendMessageRequest{SenderID: uuid.NewString(), Content: "x", RecipientIDs: []string{uuid.NewString(), "bad"}})
			return err
		},
		"get message": func() error {
			_, err := h.GetMessage(ctx, &pb.GetMessageRequest{MessageID: ""})
			return err
		},
		"mark read": func() error {
			_, err := h.MarkRecipientRead(ctx, &pb.MarkRecipientReadRequest{EntryID: "123"})
			return err
		},
		"sent": func() error {
			_, err := h.SentMessages(ctx, &pb.UserMessagesRequest{UserID: "x"})
			return err
		},
		"inbox": func() error {
			_, err := h.Inbox(ctx, &pb.UserMessagesRequest{UserID: "x"})
			return err
		},
		"unread": func() error {
			_, err := h.UnreadInbox(ctx, &pb.UserMessagesRequest{UserID: "x"})
			return err
		},
		"recipients": func() error {
			_, err := h.RecipientsOf(ctx, &pb.RecipientsOfRequest{MessageID: "x"})
			return err
		},
	}

	for name, call := range calls {
		err := call()
		st, ok := status.FromError(err)
		require.True(t, ok, name)
		assert.Equal(t, codes.InvalidArgument, st.Code(), name)
	}
}

func TestMessaging_SendMessage(t *testing.T) {
	t.Parallel()

	senderID := uuid.New()
	r1, r2 := uuid.New(), uuid.New()
	msgID := uuid.New()

	tests := []struct {
		name      string
		mockSetup func(handlerDeps)
		wantCode  codes.Code
	}{
		{
			name: "success",
			mockSetup: func(d handlerDeps) {
				d.messages.On("Send", mock.Anything, model.SendMessageParams{
					SenderID: senderID, Content: "hi", RecipientIDs: []uuid.UUID{r1, r2},
				}).Return(model.Message{ID: msgID, SenderID: senderID, Content: "hi"}, nil)
			},
			wantCode: codes.OK,
		},
		{
			name: "recipient not found",
			mockSetup: func(d handlerDeps) {
				d.messages.On("Send", mock.Anything, mock.AnythingOfType("model.SendMessageParams")).
					Return(model.Message{}, apperrors.NewErrRecipientNotFound(r2))
				d.cm.On("GetRequestIDFromContext", mock.Anything).Return("", false)
			},
			wantCode: codes.NotFound,
		},
		{
			name: "store failure",
			mockSetup: func(d handlerDeps) {
				d.messages.On("Send", mock.Anything, mock.AnythingOfType("model.SendMessageParams")).
					Return(model.Message{}, errors.New("tx aborted"))
				d.cm.On("GetRequestIDFromContext", mock.Anything).Return("req", true)
			},
			wantCode: codes.Internal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, deps := newTestHandler(t)
			tt.mockSetup(deps)

			resp, err := h.SendMessage(context.Background(), &pb.SendMessageRequest{
				SenderID:     senderID.String(),
				Content:      "hi",
				RecipientIDs: []string{r1.String(), r2.String()},
			})

			if tt.wantCode == codes.OK {
				require.NoError(t, err)
				assert.Equal(t, msgID, resp.ID)
				return
			}
			assert.Nil(t, resp)
			assert.Equal(t, tt.wantCode, status.Code(err))
		})
	}
}

func TestMessaging_InboxVariants(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sender := model.User{ID: uuid.New(), Email: "s@example.com", Name: "S"}
	items := []model.InboxItem{
		{ID: uuid.New(), SenderID: sender.ID, Content: "one", Sender: &sender},
		{ID: uuid.New(), SenderID: uuid.New(), Content: "orphan"},
	}

	h, deps := newTestHandler(t)
	deps.query.On("Inbox", mock.Anything, userID, false).Return(items, nil).Once()
	deps.query.On("Inbox", mock.Anything, userID, true).Return(items[:1], nil).Once()

	all, err := h.Inbox(context.Background(), &pb.UserMessagesRequest{UserID: userID.String()})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	require.NotNil(t, all.Items[0].Sender)
	assert.Equal(t, "s@example.com", all.Items[0].Sender.Email)
	assert.Nil(t, all.Items[1].Sender)

	unread, err := h.UnreadInbox(context.Background(), &pb.UserMessagesRequest{UserID: userID.String()})
	require.NoError(t, err)
	assert.Len(t, unread.Items, 1)
}

func TestMessaging_MarkRecipientRead(t *testing.T) {
	t.Parallel()

	entryID := uuid.New()
	readAt := time.Now().UTC()

	h, deps := newTestHandler(t)
	deps.messages.On("MarkRead", mock.Anything, entryID).
		Return(model.MessageRecipient{ID: entryID, Read: true, ReadAt: &readAt}, nil)

	resp, err := h.MarkRecipientRead(context.Background(), &pb.MarkRecipientReadRequest{EntryID: entryID.String()})
	require.NoError(t, err)
	assert.True(t, resp.Read)
	assert.Equal(t, &readAt, resp.ReadAt)
}

func TestMessaging_RecipientsOf_NotFound(t *testing.T) {
	t.Parallel()

	h, deps := newTestHandler(t)
	deps.query.On("RecipientsOf", mock.Anything, mock.Anything).Return(nil, apperrors.NewErrMessageRecipientsNotFound())
	deps.cm.On("GetRequestIDFromContext", mock.Anything).Return("", false)

	_, err := h.RecipientsOf(context.Background(), &pb.RecipientsOfRequest{MessageID: uuid.NewString()})
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "Message not found.", st.Message())
}

func TestMessaging_ListUsers(t *testing.T) {
	t.Parallel()

	h, deps := newTestHandler(t)
	deps.users.On("ListUsers", mock.Anything, 10, 5).Return([]model.User{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	resp, err := h.ListUsers(context.Background(), &pb.ListUsersRequest{Skip: 10, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, resp.Users, 2)
}

func TestMessaging_FailLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantMsg   string
		wantCode  codes.Code
	}{
		{"not found", apperrors.NewErrUserNotFound(), "INFO", "Messaging handler: get user not found", codes.NotFound},
		{"validation", apperrors.NewErrValidation("bad input"), "WARN", "Messaging handler: get user rejected", codes.InvalidArgument},
		{"store failure", errors.New("connection reset"), "ERROR", "Messaging handler: get user failed", codes.Internal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			cm := mocks.NewContextManager(t)
			cm.On("GetRequestIDFromContext", mock.Anything).Return("req-42", true)
			h := NewMessaging(nil, nil, nil, cm, logger.NewWithWriter(&buf, 0, logger.FormatJSON))

			err := h.fail(context.Background(), "get user", tt.err, "user_id", "u-1")
			assert.Equal(t, tt.wantCode, status.Code(err))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.wantMsg, entry["msg"])
			assert.Equal(t, "req-42", entry["request_id"])
			assert.Equal(t, "u-1", entry["user_id"])
		})
	}
}
