// Package redis caches immutable user rows in front of another UserStore.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dtroode/letterbox-server/internal/logger"
	"github.com/dtroode/letterbox-server/internal/model"
)

const keyPrefix = "letterbox:user:"

var _ model.UserStore = (*CachedUserStore)(nil)

// CachedUserStore reads users by id through a redis cache. Users never change
// after creation, so entries are only evicted by their TTL. Email lookups and
// listings always hit the underlying store. Cache failures are logged and
// served from the underlying store.
type CachedUserStore struct {
	next   model.UserStore
	cache  goredis.Cmdable
	ttl    time.Duration
	logger *logger.Logger
}

func NewCachedUserStore(next model.UserStore, cache goredis.Cmdable, ttl time.Duration, logger *logger.Logger) *CachedUserStore {
	return &CachedUserStore{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

func (s *CachedUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	saved, err := s.next.Create(ctx, user)
	if err != nil {
		return model.User{}, err
	}
	s.store(ctx, saved)
	return saved, nil
}

func (s *CachedUserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	data, err := s.cache.Get(ctx, cacheKey(id)).Bytes()
	if err == nil {
		var user model.User
		if uErr := json.Unmarshal(data, &user); uErr == nil {
			return user, nil
		}
	} else if !errors.Is(err, goredis.Nil) {
		s.logger.Warn("User cache: get failed", "user_id", id, "error", err.Error())
	}

	user, err := s.next.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	s.store(ctx, user)
	return user, nil
}

func (s *CachedUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return s.next.GetByEmail(ctx, email)
}

// GetByIDs returns cached users first and loads the rest with a single call
// to the underlying store. Result order follows ids; unknown ids are skipped.
func (s *CachedUserStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	found := make(map[uuid.UUID]model.User, len(ids))

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}
	values, err := s.cache.MGet(ctx, keys...).Result()
	if err != nil {
		s.logger.Warn("User cache: mget failed", "count", len(ids), "error", err.Error())
		values = nil
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var user model.User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			found[ids[i]] = user
		}
	}

	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		loaded, err := s.next.GetByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, user := range loaded {
			found[user.ID] = user
			s.store(ctx, user)
		}
	}

	users := make([]model.User, 0, len(found))
	seen := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range ids {
		user, ok := found[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		users = append(users, user)
	}
	return users, nil
}

func (s *CachedUserStore) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	return s.next.List(ctx, offset, limit)
}

func (s *CachedUserStore) store(ctx context.Context, user model.User) {
	payload, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(user.ID), payload, s.ttl).Err(); err != nil {
		s.logger.Warn("User cache: set failed", "user_id", user.ID, "error", err.Error())
	}
}
