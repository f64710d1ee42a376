package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/letterbox-server/internal/model"
)

var _ model.MessageStore = (*MessageRepository)(nil)

type MessageRepository struct {
	acc accessor
}

func (r *MessageRepository) Create(ctx context.Context, message model.Message) (model.Message, error) {
	err := r.acc.write(ctx, func(st *state) error {
		if _, ok := st.users[message.SenderID]; !ok {
			return fmt.Errorf("failed to create message: sender %s does not exist", message.SenderID)
		}
		if _, ok := st.messages[message.ID]; ok {
			return fmt.Errorf("failed to create message: id %s already exists", message.ID)
		}
		st.insertMessage(message)
		return nil
	})
	if err != nil {
		return model.Message{}, err
	}
	return message, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Message, error) {
	var message model.Message
	err := r.acc.read(ctx, func(st *state) error {
		m, ok := st.messages[id]
		if !ok {
			return model.ErrNotFound
		}
		message = m
		return nil
	})
	return message, err
}

func (r *MessageRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Message, error) {
	var messages []model.Message
	err := r.acc.read(ctx, func(st *state) error {
		for _, id := range ids {
			if m, ok := st.messages[id]; ok {
				messages = append(messages, m)
			}
		}
		return nil
	})
	return messages, err
}

func (r *MessageRepository) ListBySender(ctx context.Context, senderID uuid.UUID) ([]model.Message, error) {
	var messages []model.Message
	err := r.acc.read(ctx, func(st *state) error {
		for _, id := range st.messageOrder {
			if m := st.messages[id]; m.SenderID == senderID {
				messages = append(messages, m)
			}
		}
		return nil
	})
	return messages, err
}
