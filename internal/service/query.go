package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dtroode/letterbox-server/internal/apperrors"
	"github.com/dtroode/letterbox-server/internal/logger"
	"github.com/dtroode/letterbox-server/internal/model"
	"github.com/dtroode/letterbox-server/internal/telemetry"
)

// Query answers read-only questions about sent and received messages.
type Query struct {
	userStore      model.UserStore
	messageStore   model.MessageStore
	recipientStore model.RecipientStore
	telemetry      *telemetry.Instruments
	logger         *logger.Logger
}

func NewQuery(
	userStore model.UserStore,
	messageStore model.MessageStore,
	recipientStore model.RecipientStore,
	instruments *telemetry.Instruments,
	logger *logger.Logger,
) *Query {
	return &Query{
		userStore:      userStore,
		messageStore:   messageStore,
		recipientStore: recipientStore,
		telemetry:      instruments,
		logger:         logger,
	}
}

// SentMessages returns the messages sent by userID in the order they were sent.
func (s *Query) SentMessages(ctx context.Context, userID uuid.UUID) (messages []model.Message, err error) {
	ctx, end := s.telemetry.StartSpan(ctx, "query.sent")
	defer func() { end(err) }()

	if err = s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	messages, err = s.messageStore.ListBySender(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages by sender: %w", err)
	}
	if messages == nil {
		messages = []model.Message{}
	}

	return messages, nil
}

// Inbox returns every message received by userID, one item per recipient
// entry. With unreadOnly only entries that are still unread are returned.
// Items whose sender cannot be resolved carry a nil Sender.
func (s *Query) Inbox(ctx context.Context, userID uuid.UUID, unreadOnly bool) (items []model.InboxItem, err error) {
	ctx, end := s.telemetry.StartSpan(ctx, "query.inbox",
		attribute.Bool("unread_only", unreadOnly))
	defer func() { end(err) }()

	if err = s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	entries, err := s.recipientStore.ListByRecipient(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipient entries: %w", err)
	}
	if len(entries) == 0 {
		return []model.InboxItem{}, nil
	}

	messageIDs := lo.Uniq(lo.Map(entries, func(e model.MessageRecipient, _ int) uuid.UUID {
		return e.MessageID
	}))
	messages, err := s.messageStore.GetByIDs(ctx, messageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages by ids: %w", err)
	}
	messagesByID := lo.KeyBy(messages, func(m model.Message) uuid.UUID { return m.ID })

	senderIDs := lo.Uniq(lo.Map(messages, func(m model.Message, _ int) uuid.UUID {
		return m.SenderID
	}))
	senders, err := s.userStore.GetByIDs(ctx, senderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get senders by ids: %w", err)
	}
	sendersByID := lo.KeyBy(senders, func(u model.User) uuid.UUID { return u.ID })

	items = make([]model.InboxItem, 0, len(entries))
	for _, entry := range entries {
		message, ok := messagesByID[entry.MessageID]
		if !ok {
			s.logger.Warn("Query service: recipient entry without message",
				"entry_id", entry.ID,
				"message_id", entry.MessageID)
			continue
		}

		item := model.InboxItem{
			ID:               message.ID,
			SenderID:         message.SenderID,
			Subject:          message.Subject,
			Content:          message.Content,
			Timestamp:        message.Timestamp,
			RecipientEntryID: entry.ID,
			Read:             entry.Read,
			ReadAt:           entry.ReadAt,
		}
		if sender, ok := sendersByID[message.SenderID]; ok {
			item.Sender = &sender
		}
		items = append(items, item)
	}

	return items, nil
}

// RecipientsOf returns the read state of every recipient of messageID.
func (s *Query) RecipientsOf(ctx context.Context, messageID uuid.UUID) (statuses []model.RecipientStatus, err error) {
	ctx, end := s.telemetry.StartSpan(ctx, "query.recipients")
	defer func() { end(err) }()

	_, err = s.messageStore.GetByID(ctx, messageID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, apperrors.NewErrMessageRecipientsNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message by id: %w", err)
	}

	entries, err := s.recipientStore.ListByMessage(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipient entries: %w", err)
	}

	recipientIDs := lo.Map(entries, func(e model.MessageRecipient, _ int) uuid.UUID {
		return e.RecipientID
	})
	users, err := s.userStore.GetByIDs(ctx, recipientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipients by ids: %w", err)
	}
	usersByID := lo.KeyBy(users, func(u model.User) uuid.UUID { return u.ID })

	statuses = lo.Map(entries, func(e model.MessageRecipient, _ int) model.RecipientStatus {
		recipient := usersByID[e.RecipientID]
		return model.RecipientStatus{
			RecipientEntryID: e.ID,
			RecipientID:      e.RecipientID,
			RecipientName:    recipient.Name,
			RecipientEmail:   recipient.Email,
			Read:             e.Read,
			ReadAt:           e.ReadAt,
		}
	})

	return statuses, nil
}

func (s *Query) ensureUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return apperrors.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}
	return nil
}
