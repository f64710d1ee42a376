package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/letterbox-server/internal/mocks"
	"github.com/dtroode/letterbox-server/internal/model"
	"github.com/dtroode/letterbox-server/internal/testutil"
)

func newCache(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCachedUserStore_GetByID_ReadsThrough(t *testing.T) {
	ctx := context.Background()
	mr, client := newCache(t)
	next := mocks.NewUserStore(t)

	user := model.User{ID: uuid.New(), Email: "a@example.com", Name: "A", CreatedAt: time.Now().UTC().Truncate(time.Second)}
	next.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()

	s := NewCachedUserStore(next, client, time.Minute, testutil.MakeNoopLogger())

	got, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)
	assert.True(t, mr.Exists(cacheKey(user.ID)))

	got, err = s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists(cacheKey(user.ID)))
}

func TestCachedUserStore_GetByID_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	mr, client := newCache(t)
	next := mocks.NewUserStore(t)

	id := uuid.New()
	next.On("GetByID", mock.Anything, id).Return(model.User{}, model.ErrNotFound).Twice()

	s := NewCachedUserStore(next, client, time.Minute, testutil.MakeNoopLogger())

	_, err := s.GetByID(ctx, id)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.GetByID(ctx, id)
	require.ErrorIs(t, err, model.ErrNotFound)
	assert.False(t, mr.Exists(cacheKey(id)))
}

func TestCachedUserStore_FallsBackWhenCacheIsDown(t *testing.T) {
	ctx := context.Background()
	mr, client := newCache(t)
	next := mocks.NewUserStore(t)

	user := model.User{ID: uuid.New(), Email: "a@example.com", Name: "A"}
	next.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	next.On("GetByIDs", mock.Anything, []uuid.UUID{user.ID}).Return([]model.User{user}, nil)

	s := NewCachedUserStore(next, client, time.Minute, testutil.MakeNoopLogger())
	mr.Close()

	got, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	batch, err := s.GetByIDs(ctx, []uuid.UUID{user.ID})
	require.NoError(t, err)
	assert.Len(t, batch, 1)
}

func TestCachedUserStore_GetByIDs_LoadsOnlyMisses(t *testing.T) {
	ctx := context.Background()
	_, client := newCache(t)
	next := mocks.NewUserStore(t)

	cached := model.User{ID: uuid.New(), Email: "c@example.com", Name: "C"}
	fresh := model.User{ID: uuid.New(), Email: "f@example.com", Name: "F"}
	unknown := uuid.New()

	next.On("Create", mock.Anything, cached).Return(cached, nil).Once()
	next.On("GetByIDs", mock.Anything, []uuid.UUID{fresh.ID, unknown}).Return([]model.User{fresh}, nil).Once()

	s := NewCachedUserStore(next, client, time.Minute, testutil.MakeNoopLogger())

	_, err := s.Create(ctx, cached)
	require.NoError(t, err)

	users, err := s.GetByIDs(ctx, []uuid.UUID{fresh.ID, cached.ID, unknown, cached.ID})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, fresh.ID, users[0].ID)
	assert.Equal(t, cached.ID, users[1].ID)

	users, err = s.GetByIDs(ctx, []uuid.UUID{cached.ID, fresh.ID})
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestCachedUserStore_Passthrough(t *testing.T) {
	ctx := context.Background()
	_, client := newCache(t)
	next := mocks.NewUserStore(t)

	user := model.User{ID: uuid.New(), Email: "a@example.com"}
	next.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)
	next.On("List", mock.Anything, 0, 10).Return([]model.User{user}, nil)

	s := NewCachedUserStore(next, client, time.Minute, testutil.MakeNoopLogger())

	got, err := s.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	list, err := s.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
