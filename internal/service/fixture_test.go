package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dtroode/letterbox-server/internal/model"
	"github.com/dtroode/letterbox-server/internal/repository/memory"
	"github.com/dtroode/letterbox-server/internal/telemetry"
	"github.com/dtroode/letterbox-server/internal/testutil"
)

type fixture struct {
	store    *memory.Store
	users    *User
	messages *Message
	query    *Query
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	store := memory.New()
	ins := telemetry.Noop()
	lg := testutil.MakeNoopLogger()

	return fixture{
		store:    store,
		users:    NewUser(store.Users(), ins, lg),
		messages: NewMessage(store, store.Messages(), store.Recipients(), ins, lg),
		query:    NewQuery(store.Users(), store.Messages(), store.Recipients(), ins, lg),
	}
}

func (f fixture) register(t *testing.T, email, name string) model.User {
	t.Helper()
	user, err := f.users.CreateUser(context.Background(), model.CreateUserParams{Email: email, Name: name})
	require.NoError(t, err)
	return user
}

func ptr[T any](v T) *T {
	return &v
}
