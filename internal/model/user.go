package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
	List(ctx context.Context, offset, limit int) ([]User, error)
}

// User represents a registered user. Users are immutable after creation.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserParams contains parameters to register a user.
type CreateUserParams struct {
	Email string `json:"email" validate:"required,email,max=320"`
	Name  string `json:"name" validate:"required,max=255"`
}
