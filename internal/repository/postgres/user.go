package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/letterbox-server/internal/model"
)

const (
	uniqueViolationCode = "23505"
	usersEmailKey       = "users_email_key"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	q querier
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		q: db.Pool,
	}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, email, name, created_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, email, name, created_at`

	var savedUser model.User
	err := r.q.QueryRow(ctx, query, user.ID, user.Email, user.Name, user.CreatedAt).Scan(
		&savedUser.ID, &savedUser.Email, &savedUser.Name, &savedUser.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == usersEmailKey {
			return model.User{}, model.ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var user model.User
	query := `SELECT id, email, name, created_at FROM users WHERE id = $1`

	err := r.q.QueryRow(ctx, query, id).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	query := `SELECT id, email, name, created_at FROM users WHERE email = $1`

	err := r.q.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, email, name, created_at FROM users WHERE id = ANY($1) ORDER BY seq`

	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}

	return collectUsers(rows)
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	query := `SELECT id, email, name, created_at FROM users ORDER BY seq OFFSET $1 LIMIT $2`

	rows, err := r.q.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]model.User, error) {
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
