package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/letterbox-server/internal/model"
)

var _ model.MessageStore = (*MessageRepository)(nil)

type MessageRepository struct {
	q querier
}

func NewMessageRepository(db *Connection) *MessageRepository {
	return &MessageRepository{
		q: db.Pool,
	}
}

func (r *MessageRepository) Create(ctx context.Context, message model.Message) (model.Message, error) {
	query := `INSERT INTO messages (id, sender_id, subject, content, timestamp)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, sender_id, subject, content, timestamp`

	var saved model.Message
	err := r.q.QueryRow(ctx, query,
		message.ID, message.SenderID, message.Subject, message.Content, message.Timestamp,
	).Scan(&saved.ID, &saved.SenderID, &saved.Subject, &saved.Content, &saved.Timestamp)
	if err != nil {
		return model.Message{}, fmt.Errorf("failed to create message: %w", err)
	}

	return saved, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Message, error) {
	query := `SELECT id, sender_id, subject, content, timestamp FROM messages WHERE id = $1`

	var message model.Message
	err := r.q.QueryRow(ctx, query, id).Scan(
		&message.ID, &message.SenderID, &message.Subject, &message.Content, &message.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Message{}, model.ErrNotFound
		}
		return model.Message{}, fmt.Errorf("failed to get message by id: %w", err)
	}

	return message, nil
}

func (r *MessageRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Message, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, sender_id, subject, content, timestamp
			  FROM messages WHERE id = ANY($1) ORDER BY seq`

	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages by ids: %w", err)
	}

	return collectMessages(rows)
}

func (r *MessageRepository) ListBySender(ctx context.Context, senderID uuid.UUID) ([]model.Message, error) {
	query := `SELECT id, sender_id, subject, content, timestamp
			  FROM messages WHERE sender_id = $1 ORDER BY seq`

	rows, err := r.q.Query(ctx, query, senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages by sender: %w", err)
	}

	return collectMessages(rows)
}

func collectMessages(rows pgx.Rows) ([]model.Message, error) {
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var message model.Message
		err := rows.Scan(&message.ID, &message.SenderID, &message.Subject, &message.Content, &message.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}
