package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MessageStore defines persistence operations for messages.
type MessageStore interface {
	Create(ctx context.Context, message Message) (Message, error)
	GetByID(ctx context.Context, id uuid.UUID) (Message, error)
	// GetByIDs skips unknown ids.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Message, error)
	// ListBySender returns messages in creation order.
	ListBySender(ctx context.Context, senderID uuid.UUID) ([]Message, error)
}

// Message is a sent message. It is created together with its recipient
// entries and never changes afterwards.
type Message struct {
	ID        uuid.UUID `json:"id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Subject   *string   `json:"subject"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// SendMessageParams contains parameters to send a message.
type SendMessageParams struct {
	SenderID     uuid.UUID
	Subject      *string
	Content      string
	RecipientIDs []uuid.UUID
}

// InboxItem is a message as seen by one of its recipients.
type InboxItem struct {
	ID               uuid.UUID  `json:"id"`
	SenderID         uuid.UUID  `json:"sender_id"`
	Subject          *string    `json:"subject"`
	Content          string     `json:"content"`
	Timestamp        time.Time  `json:"timestamp"`
	RecipientEntryID uuid.UUID  `json:"recipient_entry_id"`
	Read             bool       `json:"read"`
	ReadAt           *time.Time `json:"read_at"`
	// Sender is nil when the sender row could not be resolved.
	Sender *User `json:"sender"`
}

// RecipientStatus describes the read state of one recipient of a message.
type RecipientStatus struct {
	RecipientEntryID uuid.UUID  `json:"recipient_entry_id"`
	RecipientID      uuid.UUID  `json:"recipient_id"`
	RecipientName    string     `json:"recipient_name"`
	RecipientEmail   string     `json:"recipient_email"`
	Read             bool       `json:"read"`
	ReadAt           *time.Time `json:"read_at"`
}
