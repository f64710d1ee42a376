package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/letterbox-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	acc accessor
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	err := r.acc.write(ctx, func(st *state) error {
		if _, ok := st.emails[user.Email]; ok {
			return model.ErrDuplicateEmail
		}
		st.insertUser(user)
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var user model.User
	err := r.acc.read(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return model.ErrNotFound
		}
		user = u
		return nil
	})
	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := r.acc.read(ctx, func(st *state) error {
		id, ok := st.emails[email]
		if !ok {
			return model.ErrNotFound
		}
		user = st.users[id]
		return nil
	})
	return user, err
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.acc.read(ctx, func(st *state) error {
		for _, id := range ids {
			if u, ok := st.users[id]; ok {
				users = append(users, u)
			}
		}
		return nil
	})
	return users, err
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	var users []model.User
	err := r.acc.read(ctx, func(st *state) error {
		offset = max(offset, 0)
		if limit <= 0 || offset >= len(st.userOrder) {
			return nil
		}
		end := min(offset+limit, len(st.userOrder))
		for _, id := range st.userOrder[offset:end] {
			users = append(users, st.users[id])
		}
		return nil
	})
	return users, err
}
