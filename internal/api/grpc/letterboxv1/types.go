// Package letterboxv1 defines the letterbox.v1.Messaging gRPC service: its
// request and response messages, the protobuf schema they are encoded with,
// the service descriptor and a client.
//
// JSON tags of the wire types are the proto field names of
// api/letterbox/v1/messaging.proto; Codec relies on that.
package letterboxv1

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID        uuid.UUID `json:"id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Subject   *string   `json:"subject"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type RecipientEntry struct {
	ID          uuid.UUID  `json:"id"`
	MessageID   uuid.UUID  `json:"message_id"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	Read        bool       `json:"read"`
	ReadAt      *time.Time `json:"read_at"`
}

type InboxItem struct {
	ID               uuid.UUID  `json:"id"`
	SenderID         uuid.UUID  `json:"sender_id"`
	Subject          *string    `json:"subject"`
	Content          string     `json:"content"`
	Timestamp        time.Time  `json:"timestamp"`
	RecipientEntryID uuid.UUID  `json:"recipient_entry_id"`
	Read             bool       `json:"read"`
	ReadAt           *time.Time `json:"read_at"`
	Sender           *User      `json:"sender"`
}

type RecipientStatus struct {
	RecipientEntryID uuid.UUID  `json:"recipient_entry_id"`
	RecipientID      uuid.UUID  `json:"recipient_id"`
	RecipientName    string     `json:"recipient_name"`
	RecipientEmail   string     `json:"recipient_email"`
	Read             bool       `json:"read"`
	ReadAt           *time.Time `json:"read_at"`
}

type CreateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type ListUsersRequest struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

// Identifiers in requests are strings so malformed values reach the handler
// and are reported as InvalidArgument.

type GetUserRequest struct {
	UserID string `json:"user_id"`
}

type SendMessageRequest struct {
	SenderID     string   `json:"sender_id"`
	Subject      *string  `json:"subject,omitempty"`
	Content      string   `json:"content"`
	RecipientIDs []string `json:"recipient_ids"`
}

type GetMessageRequest struct {
	MessageID string `json:"message_id"`
}

type MarkRecipientReadRequest struct {
	EntryID string `json:"entry_id"`
}

type UserMessagesRequest struct {
	UserID string `json:"user_id"`
}

type MessagesResponse struct {
	Messages []Message `json:"messages"`
}

type InboxResponse struct {
	Items []InboxItem `json:"items"`
}

type RecipientsOfRequest struct {
	MessageID string `json:"message_id"`
}

type RecipientsOfResponse struct {
	Recipients []RecipientStatus `json:"recipients"`
}
