package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiratR/batch-transaction-viewer/internal/inspect/models"
	"github.com/wiratR/batch-transaction-viewer/pkg/platform/sentinel"
)

func newSession() *models.Session {
	now := time.Now()
	return &models.Session{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func TestSaveAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewInMemorySessionStore(4, time.Hour)
	session := newSession()

	require.NoError(t, s.Save(ctx, session))

	got, err := s.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)
	assert.Equal(t, 1, s.Len())
}

func TestSaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewInMemorySessionStore(4, time.Hour)
	session := newSession()
	require.NoError(t, s.Save(ctx, session))

	replaced := session.WithDocument(&models.Document{Size: 10}, time.Now())
	require.NoError(t, s.Save(ctx, replaced))

	got, err := s.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Same(t, replaced, got)
	assert.Nil(t, session.Document, "original snapshot must be untouched")
	assert.Equal(t, 1, s.Len())
}

func TestFindMissing(t *testing.T) {
	s := NewInMemorySessionStore(4, time.Hour)
	_, err := s.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := NewInMemorySessionStore(4, time.Hour)
	session := newSession()
	require.NoError(t, s.Save(ctx, session))

	require.NoError(t, s.Delete(ctx, session.ID))
	_, err := s.FindByID(ctx, session.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, session.ID), sentinel.ErrNotFound)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	s := NewInMemorySessionStore(2, time.Hour)
	first, second, third := newSession(), newSession(), newSession()

	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, second))
	_, err := s.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, third))

	_, err = s.FindByID(ctx, second.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = s.FindByID(ctx, first.ID)
	assert.NoError(t, err)
}

func TestExpiresStaleSessions(t *testing.T) {
	ctx := context.Background()
	s := NewInMemorySessionStore(4, 20*time.Millisecond)
	session := newSession()
	require.NoError(t, s.Save(ctx, session))

	assert.Eventually(t, func() bool {
		_, err := s.FindByID(ctx, session.ID)
		return err != nil
	}, time.Second, 10*time.Millisecond)
}

func TestSaveNil(t *testing.T) {
	s := NewInMemorySessionStore(4, time.Hour)
	assert.ErrorIs(t, s.Save(context.Background(), nil), sentinel.ErrInvalidState)
}

func TestExecuteAppliesToCurrentSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewInMemorySessionStore(4, time.Hour)
	session := newSession()
	require.NoError(t, s.Save(ctx, session))

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Execute(ctx, session.ID, func(current *models.Session) (*models.Session, error) {
				next := *current
				next.UpdatedAt = current.UpdatedAt.Add(time.Second)
				return &next, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.UpdatedAt.Add(writers*time.Second), got.UpdatedAt)
}

func TestExecuteErrors(t *testing.T) {
	ctx := context.Background()
	s := NewInMemorySessionStore(4, time.Hour)
	session := newSession()
	require.NoError(t, s.Save(ctx, session))

	t.Run("missing session", func(t *testing.T) {
		_, err := s.Execute(ctx, uuid.New(), func(current *models.Session) (*models.Session, error) {
			return current, nil
		})
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("apply error leaves session unchanged", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := s.Execute(ctx, session.ID, func(current *models.Session) (*models.Session, error) {
			return current.WithDocument(&models.Document{Size: 1}, time.Now()), boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := s.FindByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Same(t, session, got)
	})

	t.Run("snapshot for another id is rejected", func(t *testing.T) {
		_, err := s.Execute(ctx, session.ID, func(*models.Session) (*models.Session, error) {
			return newSession(), nil
		})
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)
	})
}
