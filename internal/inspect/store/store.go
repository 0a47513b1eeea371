// Package store keeps inspection sessions in a size-bounded, expiring
// in-process cache.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/wiratR/batch-transaction-viewer/internal/inspect/models"
	"github.com/wiratR/batch-transaction-viewer/pkg/platform/sentinel"
)

// InMemorySessionStore evicts the least recently used session once size is
// reached, and any session not saved within ttl.
type InMemorySessionStore struct {
	mu       sync.Mutex
	sessions *expirable.LRU[uuid.UUID, *models.Session]
}

// NewInMemorySessionStore builds a store. A size of zero means unbounded and
// a ttl of zero disables expiry.
func NewInMemorySessionStore(size int, ttl time.Duration) *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: expirable.NewLRU[uuid.UUID, *models.Session](size, nil, ttl),
	}
}

// Save inserts or replaces a session snapshot.
func (s *InMemorySessionStore) Save(_ context.Context, session *models.Session) error {
	if session == nil {
		return fmt.Errorf("save nil session: %w", sentinel.ErrInvalidState)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Add(session.ID, session)
	return nil
}

// Execute re-reads the session for id and stores the snapshot returned by
// apply. The read and the write happen under one lock, so concurrent
// updates to the same session are applied in turn and none is lost. An
// error from apply leaves the session unchanged.
func (s *InMemorySessionStore) Execute(_ context.Context, id uuid.UUID, apply func(*models.Session) (*models.Session, error)) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, sentinel.ErrNotFound)
	}
	next, err := apply(current)
	if err != nil {
		return nil, err
	}
	if next == nil || next.ID != id {
		return nil, fmt.Errorf("execute session %s: %w", id, sentinel.ErrInvalidState)
	}
	s.sessions.Add(id, next)
	return next, nil
}

// FindByID returns the session snapshot for id.
func (s *InMemorySessionStore) FindByID(_ context.Context, id uuid.UUID) (*models.Session, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, sentinel.ErrNotFound)
	}
	return session, nil
}

// Delete removes a session.
func (s *InMemorySessionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sessions.Remove(id) {
		return fmt.Errorf("session %s: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

// Len reports the number of live sessions.
func (s *InMemorySessionStore) Len() int {
	return s.sessions.Len()
}
