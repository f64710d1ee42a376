// Package memory provides an in-memory implementation of the entity stores.
// Data is not persisted; it backs tests and the memory store driver.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/letterbox-server/internal/model"
)

type pairKey struct {
	messageID   uuid.UUID
	recipientID uuid.UUID
}

type state struct {
	users          map[uuid.UUID]model.User
	emails         map[string]uuid.UUID
	userOrder      []uuid.UUID
	messages       map[uuid.UUID]model.Message
	messageOrder   []uuid.UUID
	recipients     map[uuid.UUID]model.MessageRecipient
	recipientOrder []uuid.UUID
	pairs          map[pairKey]uuid.UUID

	// journal holds undo steps for the open transaction, nil outside one.
	journal []func()
	inTx    bool
}

func newState() *state {
	return &state{
		users:      make(map[uuid.UUID]model.User),
		emails:     make(map[string]uuid.UUID),
		messages:   make(map[uuid.UUID]model.Message),
		recipients: make(map[uuid.UUID]model.MessageRecipient),
		pairs:      make(map[pairKey]uuid.UUID),
	}
}

func (s *state) record(undo func()) {
	if s.inTx {
		s.journal = append(s.journal, undo)
	}
}

func (s *state) begin() {
	s.inTx = true
	s.journal = nil
}

// end closes the transaction, replaying undo steps newest first unless commit is set.
func (s *state) end(commit bool) {
	if !commit {
		for i := len(s.journal) - 1; i >= 0; i-- {
			s.journal[i]()
		}
	}
	s.inTx = false
	s.journal = nil
}

func (s *state) insertUser(u model.User) {
	s.users[u.ID] = u
	s.emails[u.Email] = u.ID
	s.userOrder = append(s.userOrder, u.ID)
	s.record(func() {
		delete(s.users, u.ID)
		delete(s.emails, u.Email)
		s.userOrder = s.userOrder[:len(s.userOrder)-1]
	})
}

func (s *state) insertMessage(m model.Message) {
	s.messages[m.ID] = m
	s.messageOrder = append(s.messageOrder, m.ID)
	s.record(func() {
		delete(s.messages, m.ID)
		s.messageOrder = s.messageOrder[:len(s.messageOrder)-1]
	})
}

func (s *state) insertRecipient(e model.MessageRecipient) {
	key := pairKey{messageID: e.MessageID, recipientID: e.RecipientID}
	s.recipients[e.ID] = e
	s.pairs[key] = e.ID
	s.recipientOrder = append(s.recipientOrder, e.ID)
	s.record(func() {
		delete(s.recipients, e.ID)
		delete(s.pairs, key)
		s.recipientOrder = s.recipientOrder[:len(s.recipientOrder)-1]
	})
}

func (s *state) updateRecipient(e model.MessageRecipient) {
	prev := s.recipients[e.ID]
	s.recipients[e.ID] = e
	s.record(func() {
		s.recipients[e.ID] = prev
	})
}

// accessor gives repositories access to the state, either under the store
// lock or from inside a transaction that already holds it.
type accessor interface {
	read(ctx context.Context, fn func(st *state) error) error
	write(ctx context.Context, fn func(st *state) error) error
}

var _ model.TxManager = (*Store)(nil)

// Store holds users, messages and recipient entries in memory.
// It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	st *state
}

// New creates an empty store.
func New() *Store {
	return &Store{st: newState()}
}

func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Users returns a user repository over the committed state.
func (s *Store) Users() *UserRepository {
	return &UserRepository{acc: s}
}

// Messages returns a message repository over the committed state.
func (s *Store) Messages() *MessageRepository {
	return &MessageRepository{acc: s}
}

// Recipients returns a recipient repository over the committed state.
func (s *Store) Recipients() *RecipientRepository {
	return &RecipientRepository{acc: s}
}

// WithinTx holds the store's write lock for the duration of fn. Writes go
// straight to the state and are journaled; if fn fails or panics they are
// undone before the lock is released.
// fn must use the stores it is given; calling the store's own repositories
// from inside fn deadlocks.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, stores model.TxStores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	committed := false
	s.st.begin()
	defer func() { s.st.end(committed) }()

	tx := &txAccessor{st: s.st}
	err := fn(ctx, model.TxStores{
		Users:      &UserRepository{acc: tx},
		Messages:   &MessageRepository{acc: tx},
		Recipients: &RecipientRepository{acc: tx},
	})
	if err != nil {
		return err
	}

	committed = true
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

type txAccessor struct {
	st *state
}

func (t *txAccessor) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.st)
}

func (t *txAccessor) write(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.st)
}
