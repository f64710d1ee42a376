package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dtroode/letterbox-server/internal/apperrors"
	"github.com/dtroode/letterbox-server/internal/logger"
	"github.com/dtroode/letterbox-server/internal/model"
	"github.com/dtroode/letterbox-server/internal/telemetry"
)

// Message sends messages and tracks per-recipient read state.
type Message struct {
	txManager      model.TxManager
	messageStore   model.MessageStore
	recipientStore model.RecipientStore
	telemetry      *telemetry.Instruments
	logger         *logger.Logger
	now            func() time.Time
}

func NewMessage(
	txManager model.TxManager,
	messageStore model.MessageStore,
	recipientStore model.RecipientStore,
	instruments *telemetry.Instruments,
	logger *logger.Logger,
) *Message {
	return &Message{
		txManager:      txManager,
		messageStore:   messageStore,
		recipientStore: recipientStore,
		telemetry:      instruments,
		logger:         logger,
		now:            now,
	}
}

// Send persists a message and one unread recipient entry per recipient in a
// single transaction. Input is checked in a fixed order: an empty recipient
// list, then the sender, then each recipient in the order given, then
// repeated recipients. The first failure aborts the send and nothing is
// persisted. Empty content is accepted.
func (s *Message) Send(ctx context.Context, params model.SendMessageParams) (message model.Message, err error) {
	start := time.Now()
	ctx, end := s.telemetry.StartSpan(ctx, "message.send",
		attribute.Int("recipient_count", len(params.RecipientIDs)))
	defer func() { end(err) }()

	if len(params.RecipientIDs) == 0 {
		return model.Message{}, apperrors.NewErrNoRecipients()
	}

	draft := model.Message{
		ID:        uuid.New(),
		SenderID:  params.SenderID,
		Subject:   params.Subject,
		Content:   params.Content,
		Timestamp: s.now(),
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, stores model.TxStores) error {
		_, err := stores.Users.GetByID(ctx, params.SenderID)
		if errors.Is(err, model.ErrNotFound) {
			return apperrors.NewErrSenderNotFound()
		}
		if err != nil {
			return fmt.Errorf("failed to get sender: %w", err)
		}

		for _, recipientID := range params.RecipientIDs {
			_, err := stores.Users.GetByID(ctx, recipientID)
			if errors.Is(err, model.ErrNotFound) {
				return apperrors.NewErrRecipientNotFound(recipientID)
			}
			if err != nil {
				return fmt.Errorf("failed to get recipient: %w", err)
			}
		}

		if dups := lo.FindDuplicates(params.RecipientIDs); len(dups) > 0 {
			return apperrors.NewErrDuplicateRecipient(dups[0])
		}

		saved, err := stores.Messages.Create(ctx, draft)
		if err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}

		for _, recipientID := range params.RecipientIDs {
			_, err := stores.Recipients.Create(ctx, model.MessageRecipient{
				ID:          uuid.New(),
				MessageID:   saved.ID,
				RecipientID: recipientID,
			})
			if err != nil {
				return fmt.Errorf("failed to create recipient entry: %w", err)
			}
		}

		message = saved
		return nil
	})
	if err != nil {
		if _, ok := apperrors.As(err); !ok {
			s.logger.Error("Message service: send failed",
				"sender_id", params.SenderID,
				"error", err.Error())
		}
		return model.Message{}, err
	}

	s.telemetry.RecordSend(ctx, time.Since(start), len(params.RecipientIDs))
	s.logger.Info("Message service: message sent",
		"message_id", message.ID,
		"sender_id", message.SenderID,
		"recipient_count", len(params.RecipientIDs))

	return message, nil
}

func (s *Message) GetMessage(ctx context.Context, id uuid.UUID) (message model.Message, err error) {
	ctx, end := s.telemetry.StartSpan(ctx, "message.get")
	defer func() { end(err) }()

	message, err = s.messageStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Message{}, apperrors.NewErrMessageNotFound()
	}
	if err != nil {
		return model.Message{}, fmt.Errorf("failed to get message by id: %w", err)
	}

	return message, nil
}

// MarkRead marks a recipient entry as read. Marking an entry that is already
// read returns it unchanged, so ReadAt always records the first read.
func (s *Message) MarkRead(ctx context.Context, entryID uuid.UUID) (entry model.MessageRecipient, err error) {
	ctx, end := s.telemetry.StartSpan(ctx, "message.mark_read")
	defer func() { end(err) }()

	at := s.now()
	entry, err = s.recipientStore.MarkRead(ctx, entryID, at)
	if errors.Is(err, model.ErrNotFound) {
		return model.MessageRecipient{}, apperrors.NewErrRecipientEntryNotFound()
	}
	if err != nil {
		return model.MessageRecipient{}, fmt.Errorf("failed to mark recipient entry as read: %w", err)
	}

	if entry.ReadAt != nil && entry.ReadAt.Equal(at) {
		s.telemetry.RecordRead(ctx)
		s.logger.Info("Message service: entry marked read",
			"entry_id", entry.ID,
			"message_id", entry.MessageID)
	} else {
		s.logger.Debug("Message service: entry already read",
			"entry_id", entry.ID)
	}

	return entry, nil
}
