package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/letterbox-server/internal/model"
)

var _ model.RecipientStore = (*RecipientRepository)(nil)

type RecipientRepository struct {
	q querier
}

func NewRecipientRepository(db *Connection) *RecipientRepository {
	return &RecipientRepository{
		q: db.Pool,
	}
}

func (r *RecipientRepository) Create(ctx context.Context, entry model.MessageRecipient) (model.MessageRecipient, error) {
	query := `INSERT INTO message_recipients (id, message_id, recipient_id, read, read_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, message_id, recipient_id, read, read_at`

	var saved model.MessageRecipient
	err := r.q.QueryRow(ctx, query,
		entry.ID, entry.MessageID, entry.RecipientID, entry.Read, entry.ReadAt,
	).Scan(&saved.ID, &saved.MessageID, &saved.RecipientID, &saved.Read, &saved.ReadAt)
	if err != nil {
		return model.MessageRecipient{}, fmt.Errorf("failed to create message recipient: %w", err)
	}

	return saved, nil
}

func (r *RecipientRepository) GetByID(ctx context.Context, id uuid.UUID) (model.MessageRecipient, error) {
	query := `SELECT id, message_id, recipient_id, read, read_at FROM message_recipients WHERE id = $1`

	var entry model.MessageRecipient
	err := r.q.QueryRow(ctx, query, id).Scan(
		&entry.ID, &entry.MessageID, &entry.RecipientID, &entry.Read, &entry.ReadAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MessageRecipient{}, model.ErrNotFound
		}
		return model.MessageRecipient{}, fmt.Errorf("failed to get message recipient by id: %w", err)
	}

	return entry, nil
}

func (r *RecipientRepository) ListByMessage(ctx context.Context, messageID uuid.UUID) ([]model.MessageRecipient, error) {
	query := `SELECT id, message_id, recipient_id, read, read_at
			  FROM message_recipients WHERE message_id = $1 ORDER BY seq`

	rows, err := r.q.Query(ctx, query, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipients by message: %w", err)
	}

	return collectRecipients(rows)
}

func (r *RecipientRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]model.MessageRecipient, error) {
	query := `SELECT id, message_id, recipient_id, read, read_at
			  FROM message_recipients
			  WHERE recipient_id = $1 AND ($2 = FALSE OR read = FALSE)
			  ORDER BY seq`

	rows, err := r.q.Query(ctx, query, recipientID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipients by recipient: %w", err)
	}

	return collectRecipients(rows)
}

// MarkRead only transitions unread rows. When the update touches nothing the
// row is re-read in a separate statement so a concurrent winner's read_at is
// observed.
func (r *RecipientRepository) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) (model.MessageRecipient, error) {
	const query = `UPDATE message_recipients SET read = TRUE, read_at = $2
				   WHERE id = $1 AND read = FALSE
				   RETURNING id, message_id, recipient_id, read, read_at`

	var entry model.MessageRecipient
	err := r.q.QueryRow(ctx, query, id, at).Scan(
		&entry.ID, &entry.MessageID, &entry.RecipientID, &entry.Read, &entry.ReadAt,
	)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.MessageRecipient{}, fmt.Errorf("failed to mark message recipient read: %w", err)
	}

	return r.GetByID(ctx, id)
}

func collectRecipients(rows pgx.Rows) ([]model.MessageRecipient, error) {
	defer rows.Close()

	var entries []model.MessageRecipient
	for rows.Next() {
		var entry model.MessageRecipient
		if err := rows.Scan(&entry.ID, &entry.MessageID, &entry.RecipientID, &entry.Read, &entry.ReadAt); err != nil {
			return nil, fmt.Errorf("failed to scan message recipient: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate message recipients: %w", err)
	}

	return entries, nil
}
