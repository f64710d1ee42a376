package rest

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	grpcctx "github.com/dtroode/letterbox-server/internal/api/grpc/context"
	"github.com/dtroode/letterbox-server/internal/model"
	"github.com/dtroode/letterbox-server/internal/repository/memory"
	"github.com/dtroode/letterbox-server/internal/service"
	"github.com/dtroode/letterbox-server/internal/telemetry"
	"github.com/dtroode/letterbox-server/internal/testutil"
)

func newMemoryEngine(t *testing.T) http.Handler {
	t.Helper()

	store := memory.New()
	ins := telemetry.Noop()
	lg := testutil.MakeNoopLogger()

	r := NewRouter(
		service.NewUser(store.Users(), ins, lg),
		service.NewMessage(store, store.Messages(), store.Recipients(), ins, lg),
		service.NewQuery(store.Users(), store.Messages(), store.Recipients(), ins, lg),
		store,
		grpcctx.NewManager(),
		lg,
	)
	return r.Register()
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func createUser(t *testing.T, engine http.Handler, email, name string) model.User {
	t.Helper()
	w := do(t, engine, http.MethodPost, "/api/v1/users/", map[string]string{"email": email, "name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[model.User](t, w.Body.Bytes())
}

func TestRouter_MessagingFlow(t *testing.T) {
	t.Parallel()

	engine := newMemoryEngine(t)
	alice := createUser(t, engine, "alice@example.com", "Alice")
	bob := createUser(t, engine, "bob@example.com", "Bob")
	carol := createUser(t, engine, "carol@example.com", "Carol")

	w := do(t, engine, http.MethodPost, "/api/v1/messages/", map[string]any{
		"sender_id":     alice.ID,
		"subject":       "Hi",
		"content":       "Hello",
		"recipient_ids": []uuid.UUID{bob.ID, carol.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	msg := decode[model.Message](t, w.Body.Bytes())
	assert.Equal(t, alice.ID, msg.SenderID)

	w = do(t, engine, http.MethodGet, "/api/v1/messages/"+msg.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello", decode[model.Message](t, w.Body.Bytes()).Content)

	w = do(t, engine, http.MethodGet, "/api/v1/users/"+alice.ID.String()+"/sent_messages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sent := decode[[]model.Message](t, w.Body.Bytes())
	require.Len(t, sent, 1)
	assert.Equal(t, msg.ID, sent[0].ID)

	w = do(t, engine, http.MethodGet, "/api/v1/users/"+bob.ID.String()+"/inbox/unread", nil)
	require.Equal(t, http.StatusOK, w.Code)
	unread := decode[[]model.InboxItem](t, w.Body.Bytes())
	require.Len(t, unread, 1)
	require.NotNil(t, unread[0].Sender)
	assert.Equal(t, alice.Email, unread[0].Sender.Email)

	entryID := unread[0].RecipientEntryID
	w = do(t, engine, http.MethodPatch, "/api/v1/messages/recipients/"+entryID.String()+"/read", nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := decode[model.MessageRecipient](t, w.Body.Bytes())
	assert.True(t, first.Read)
	require.NotNil(t, first.ReadAt)

	w = do(t, engine, http.MethodPatch, "/api/v1/messages/recipients/"+entryID.String()+"/read", nil)
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[model.MessageRecipient](t, w.Body.Bytes())
	assert.True(t, first.ReadAt.Equal(*second.ReadAt))

	w = do(t, engine, http.MethodGet, "/api/v1/users/"+bob.ID.String()+"/inbox/unread", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, engine, http.MethodGet, "/api/v1/users/"+bob.ID.String()+"/inbox", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[[]model.InboxItem](t, w.Body.Bytes())
	require.Len(t, all, 1)
	assert.True(t, all[0].Read)

	w = do(t, engine, http.MethodGet, "/api/v1/messages/"+msg.ID.String()+"/recipients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	statuses := decode[[]model.RecipientStatus](t, w.Body.Bytes())
	require.Len(t, statuses, 2)
	read := map[uuid.UUID]bool{}
	for _, s := range statuses {
		read[s.RecipientID] = s.Read
	}
	assert.Equal(t, map[uuid.UUID]bool{bob.ID: true, carol.ID: false}, read)
}

func TestRouter_RejectedSendPersistsNothing(t *testing.T) {
	t.Parallel()

	engine := newMemoryEngine(t)
	alice := createUser(t, engine, "alice@example.com", "Alice")
	bob := createUser(t, engine, "bob@example.com", "Bob")
	ghost := uuid.New()

	w := do(t, engine, http.MethodPost, "/api/v1/messages/", map[string]any{
		"sender_id":     alice.ID,
		"content":       "Hello",
		"recipient_ids": []uuid.UUID{bob.ID, ghost},
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "not_found", body.Kind)
	assert.Equal(t, "Recipient with ID "+ghost.String()+" not found.", body.Detail)

	w = do(t, engine, http.MethodGet, "/api/v1/users/"+alice.ID.String()+"/sent_messages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, engine, http.MethodGet, "/api/v1/users/"+bob.ID.String()+"/inbox", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_SendEmptyContent(t *testing.T) {
	t.Parallel()

	engine := newMemoryEngine(t)
	alice := createUser(t, engine, "alice@example.com", "Alice")
	bob := createUser(t, engine, "bob@example.com", "Bob")

	w := do(t, engine, http.MethodPost, "/api/v1/messages/", map[string]any{
		"sender_id":     alice.ID,
		"content":       "",
		"recipient_ids": []uuid.UUID{bob.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "", decode[model.Message](t, w.Body.Bytes()).Content)
}

func TestRouter_DuplicateEmail(t *testing.T) {
	t.Parallel()

	engine := newMemoryEngine(t)
	createUser(t, engine, "alice@example.com", "Alice")

	w := do(t, engine, http.MethodPost, "/api/v1/users/", map[string]string{"email": "alice@example.com", "name": "Other"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", decodeError(t, w).Detail)
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	engine := newMemoryEngine(t)
	w := do(t, engine, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}
