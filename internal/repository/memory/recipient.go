package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/letterbox-server/internal/model"
)

var _ model.RecipientStore = (*RecipientRepository)(nil)

type RecipientRepository struct {
	acc accessor
}

// Create enforces the same foreign keys and (message, recipient) uniqueness
// as the postgres schema.
func (r *RecipientRepository) Create(ctx context.Context, entry model.MessageRecipient) (model.MessageRecipient, error) {
	err := r.acc.write(ctx, func(st *state) error {
		if _, ok := st.messages[entry.MessageID]; !ok {
			return fmt.Errorf("failed to create message recipient: message %s does not exist", entry.MessageID)
		}
		if _, ok := st.users[entry.RecipientID]; !ok {
			return fmt.Errorf("failed to create message recipient: user %s does not exist", entry.RecipientID)
		}
		if _, ok := st.pairs[pairKey{messageID: entry.MessageID, recipientID: entry.RecipientID}]; ok {
			return fmt.Errorf("failed to create message recipient: duplicate recipient %s", entry.RecipientID)
		}
		if _, ok := st.recipients[entry.ID]; ok {
			return fmt.Errorf("failed to create message recipient: id %s already exists", entry.ID)
		}
		st.insertRecipient(entry)
		return nil
	})
	if err != nil {
		return model.MessageRecipient{}, err
	}
	return entry, nil
}

func (r *RecipientRepository) GetByID(ctx context.Context, id uuid.UUID) (model.MessageRecipient, error) {
	var entry model.MessageRecipient
	err := r.acc.read(ctx, func(st *state) error {
		e, ok := st.recipients[id]
		if !ok {
			return model.ErrNotFound
		}
		entry = e
		return nil
	})
	return entry, err
}

func (r *RecipientRepository) ListByMessage(ctx context.Context, messageID uuid.UUID) ([]model.MessageRecipient, error) {
	return r.filter(ctx, func(e model.MessageRecipient) bool {
		return e.MessageID == messageID
	})
}

func (r *RecipientRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]model.MessageRecipient, error) {
	return r.filter(ctx, func(e model.MessageRecipient) bool {
		return e.RecipientID == recipientID && (!unreadOnly || !e.Read)
	})
}

func (r *RecipientRepository) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) (model.MessageRecipient, error) {
	var entry model.MessageRecipient
	err := r.acc.write(ctx, func(st *state) error {
		e, ok := st.recipients[id]
		if !ok {
			return model.ErrNotFound
		}
		if !e.Read {
			e.Read = true
			e.ReadAt = &at
			st.updateRecipient(e)
		}
		entry = e
		return nil
	})
	return entry, err
}

func (r *RecipientRepository) filter(ctx context.Context, keep func(model.MessageRecipient) bool) ([]model.MessageRecipient, error) {
	var entries []model.MessageRecipient
	err := r.acc.read(ctx, func(st *state) error {
		for _, id := range st.recipientOrder {
			if e := st.recipients[id]; keep(e) {
				entries = append(entries, e)
			}
		}
		return nil
	})
	return entries, err
}
