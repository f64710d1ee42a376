package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecipientStore defines persistence operations for message recipient entries.
type RecipientStore interface {
	Create(ctx context.Context, entry MessageRecipient) (MessageRecipient, error)
	GetByID(ctx context.Context, id uuid.UUID) (MessageRecipient, error)
	ListByMessage(ctx context.Context, messageID uuid.UUID) ([]MessageRecipient, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]MessageRecipient, error)
	// MarkRead flips an unread entry to read with ReadAt set to at. An entry
	// that is already read is returned as is. Returns ErrNotFound if the
	// entry does not exist.
	MarkRead(ctx context.Context, id uuid.UUID, at time.Time) (MessageRecipient, error)
}

// MessageRecipient tracks the read state of a message for one recipient.
// ReadAt is set if and only if Read is true.
type MessageRecipient struct {
	ID          uuid.UUID  `json:"id"`
	MessageID   uuid.UUID  `json:"message_id"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	Read        bool       `json:"read"`
	ReadAt      *time.Time `json:"read_at"`
}
