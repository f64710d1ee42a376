package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	pb "github.com/dtroode/letterbox-server/internal/api/grpc/letterboxv1"
	"github.com/dtroode/letterbox-server/internal/apperrors"
	"github.com/dtroode/letterbox-server/internal/logger"
	"github.com/dtroode/letterbox-server/internal/model"
)

// UserService defines user registration and lookup operations.
type UserService interface {
	CreateUser(ctx context.Context, params model.CreateUserParams) (model.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
}

// MessageService defines send and read-state operations.
type MessageService interface {
	Send(ctx context.Context, params model.SendMessageParams) (model.Message, error)
	GetMessage(ctx context.Context, id uuid.UUID) (model.Message, error)
	MarkRead(ctx context.Context, entryID uuid.UUID) (model.MessageRecipient, error)
}

// QueryService defines inbox and history queries.
type QueryService interface {
	SentMessages(ctx context.Context, userID uuid.UUID) ([]model.Message, error)
	Inbox(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]model.InboxItem, error)
	RecipientsOf(ctx context.Context, messageID uuid.UUID) ([]model.RecipientStatus, error)
}

var _ pb.MessagingServer = (*Messaging)(nil)

// Messaging handles gRPC endpoints of the Messaging service.
type Messaging struct {
	userService    UserService
	messageService MessageService
	queryService   QueryService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewMessaging creates a new Messaging handler.
func NewMessaging(
	userService UserService,
	messageService MessageService,
	queryService QueryService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Messaging {
	return &Messaging{
		userService:    userService,
		messageService: messageService,
		queryService:   queryService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// fail logs err and converts it to a gRPC status. Lookups of missing
// entities are routine and logged at info level.
func (h *Messaging) fail(ctx context.Context, op string, err error, args ...any) error {
	requestID, _ := h.contextManager.GetRequestIDFromContext(ctx)
	log := h.logger.With("request_id", requestID)
	args = append(args, "error", err.Error())

	switch {
	case apperrors.IsNotFound(err):
		log.Info("Messaging handler: "+op+" not found", args...)
	case apperrors.IsValidation(err):
		log.Warn("Messaging handler: "+op+" rejected", args...)
	default:
		log.Error("Messaging handler: "+op+" failed", args...)
	}
	return handleError(err)
}

// CreateUser registers a user.
func (h *Messaging) CreateUser(ctx context.Context, req *pb.CreateUserRequest) (*pb.User, error) {
	h.logger.Debug("Messaging handler: processing create user request")

	user, err := h.userService.CreateUser(ctx, model.CreateUserParams{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		return nil, h.fail(ctx, "create user", err)
	}

	resp := convertUser(user)
	return &resp, nil
}

// ListUsers returns a page of users.
func (h *Messaging) ListUsers(ctx context.Context, req *pb.ListUsersRequest) (*pb.ListUsersResponse, error) {
	h.logger.Debug("Messaging handler: processing list users request",
		"skip", req.Skip,
		"limit", req.Limit)

	users, err := h.userService.ListUsers(ctx, req.Skip, req.Limit)
	if err != nil {
		return nil, h.fail(ctx, "list users", err)
	}

	return &pb.ListUsersResponse{
		Users: lo.Map(users, func(u model.User, _ int) pb.User { return convertUser(u) }),
	}, nil
}

// GetUser returns a single user.
func (h *Messaging) GetUser(ctx context.Context, req *pb.GetUserRequest) (*pb.User, error) {
	userID, err := parseID("user_id", req.UserID)
	if err != nil {
		return nil, err
	}

	user, err := h.userService.GetUser(ctx, userID)
	if err != nil {
		return nil, h.fail(ctx, "get user", err, "user_id", userID)
	}

	resp := convertUser(user)
	return &resp, nil
}

// SendMessage sends a message to one or more recipients.
func (h *Messaging) SendMessage(ctx context.Context, req *pb.SendMessageRequest) (*pb.Message, error) {
	h.logger.Debug("Messaging handler: processing send message request",
		"sender_id", req.SenderID,
		"recipient_count", len(req.RecipientIDs))

	senderID, err := parseID("sender_id", req.SenderID)
	if err != nil {
		return nil, err
	}
	recipientIDs, err := parseIDs("recipient_ids", req.RecipientIDs)
	if err != nil {
		return nil, err
	}

	message, err := h.messageService.Send(ctx, model.SendMessageParams{
		SenderID:     senderID,
		Subject:      req.Subject,
		Content:      req.Content,
		RecipientIDs: recipientIDs,
	})
	if err != nil {
		return nil, h.fail(ctx, "send message", err, "sender_id", senderID)
	}

	resp := convertMessage(message)
	return &resp, nil
}

// GetMessage returns a single message.
func (h *Messaging) GetMessage(ctx context.Context, req *pb.GetMessageRequest) (*pb.Message, error) {
	messageID, err := parseID("message_id", req.MessageID)
	if err != nil {
		return nil, err
	}

	message, err := h.messageService.GetMessage(ctx, messageID)
	if err != nil {
		return nil, h.fail(ctx, "get message", err, "message_id", messageID)
	}

	resp := convertMessage(message)
	return &resp, nil
}

// MarkRecipientRead marks a recipient entry as read.
func (h *Messaging) MarkRecipientRead(ctx context.Context, req *pb.MarkRecipientReadRequest) (*pb.RecipientEntry, error) {
	entryID, err := parseID("entry_id", req.EntryID)
	if err != nil {
		return nil, err
	}

	entry, err := h.messageService.MarkRead(ctx, entryID)
	if err != nil {
		return nil, h.fail(ctx, "mark read", err, "entry_id", entryID)
	}

	resp := convertEntry(entry)
	return &resp, nil
}

// SentMessages returns messages sent by a user.
func (h *Messaging) SentMessages(ctx context.Context, req *pb.UserMessagesRequest) (*pb.MessagesResponse, error) {
	userID, err := parseID("user_id", req.UserID)
	if err != nil {
		return nil, err
	}

	messages, err := h.queryService.SentMessages(ctx, userID)
	if err != nil {
		return nil, h.fail(ctx, "sent messages", err, "user_id", userID)
	}

	return &pb.MessagesResponse{Messages: convertMessages(messages)}, nil
}

// Inbox returns every message received by a user.
func (h *Messaging) Inbox(ctx context.Context, req *pb.UserMessagesRequest) (*pb.InboxResponse, error) {
	return h.inbox(ctx, req, false)
}

// UnreadInbox returns the messages a user has not read yet.
func (h *Messaging) UnreadInbox(ctx context.Context, req *pb.UserMessagesRequest) (*pb.InboxResponse, error) {
	return h.inbox(ctx, req, true)
}

func (h *Messaging) inbox(ctx context.Context, req *pb.UserMessagesRequest, unreadOnly bool) (*pb.InboxResponse, error) {
	userID, err := parseID("user_id", req.UserID)
	if err != nil {
		return nil, err
	}

	items, err := h.queryService.Inbox(ctx, userID, unreadOnly)
	if err != nil {
		return nil, h.fail(ctx, "inbox", err, "user_id", userID, "unread_only", unreadOnly)
	}

	return &pb.InboxResponse{
		Items: lo.Map(items, func(item model.InboxItem, _ int) pb.InboxItem { return convertInboxItem(item) }),
	}, nil
}

// RecipientsOf returns the read state of every recipient of a message.
func (h *Messaging) RecipientsOf(ctx context.Context, req *pb.RecipientsOfRequest) (*pb.RecipientsOfResponse, error) {
	messageID, err := parseID("message_id", req.MessageID)
	if err != nil {
		return nil, err
	}

	statuses, err := h.queryService.RecipientsOf(ctx, messageID)
	if err != nil {
		return nil, h.fail(ctx, "recipients of", err, "message_id", messageID)
	}

	return &pb.RecipientsOfResponse{
		Recipients: lo.Map(statuses, func(s model.RecipientStatus, _ int) pb.RecipientStatus { return convertRecipientStatus(s) }),
	}, nil
}
