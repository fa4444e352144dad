package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/facility-reservation/internal/model"
	"github.com/courtside/facility-reservation/internal/repository"
)

// memSessionStore is an in-memory SessionStore with the same CAS semantics
// as the MySQL implementation.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*model.Session)}
}

func (m *memSessionStore) Create(_ context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memSessionStore) Get(_ context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessionStore) Swap(_ context.Context, id, oldHash, newHash string, expiresAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Revoked || s.RefreshTokenHash != oldHash {
		return false, nil
	}
	s.RefreshTokenHash = newHash
	s.ExpiresAt = expiresAt
	return true, nil
}

func (m *memSessionStore) Revoke(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Revoked {
		return false, nil
	}
	s.Revoked = true
	return true, nil
}

func TestSessionCreateThenValid(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(newMemSessionStore())

	require.NoError(t, svc.Create(ctx, "s1", "u1", "token-1", time.Now().Add(time.Hour)))

	ok, err := svc.IsValid(ctx, "s1", "token-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsValid(ctx, "s1", "some-other-token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionUnknownIDIsInvalidNotError(t *testing.T) {
	svc := NewSessionService(newMemSessionStore())
	ok, err := svc.IsValid(context.Background(), "nope", "token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionExtendRotatesToken(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(newMemSessionStore())
	require.NoError(t, svc.Create(ctx, "s1", "u1", "token-1", time.Now().Add(time.Hour)))

	require.NoError(t, svc.Extend(ctx, "s1", "token-1", "token-2", time.Now().Add(2*time.Hour)))

	ok, err := svc.IsValid(ctx, "s1", "token-2")
	require.NoError(t, err)
	assert.True(t, ok)

	// The rotated-out token must be dead.
	ok, err = svc.IsValid(ctx, "s1", "token-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionExtendWithStaleTokenFails(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(newMemSessionStore())
	require.NoError(t, svc.Create(ctx, "s1", "u1", "token-1", time.Now().Add(time.Hour)))
	require.NoError(t, svc.Extend(ctx, "s1", "token-1", "token-2", time.Now().Add(time.Hour)))

	// Replaying the pre-rotation token loses the compare-and-swap.
	err := svc.Extend(ctx, "s1", "token-1", "token-3", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	// The winner's token stays valid, untouched by the failed attempt.
	ok, err := svc.IsValid(ctx, "s1", "token-2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSessionExtendSlidesExpiry(t *testing.T) {
	ctx := context.Background()
	store := newMemSessionStore()
	svc := NewSessionService(store)
	require.NoError(t, svc.Create(ctx, "s1", "u1", "token-1", time.Now().Add(time.Minute)))

	far := time.Now().Add(72 * time.Hour)
	require.NoError(t, svc.Extend(ctx, "s1", "token-1", "token-2", far))

	sess, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.WithinDuration(t, far, sess.ExpiresAt, time.Second)
}

func TestSessionInvalidateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(newMemSessionStore())
	require.NoError(t, svc.Create(ctx, "s1", "u1", "token-1", time.Now().Add(time.Hour)))

	require.NoError(t, svc.Invalidate(ctx, "s1"))
	require.NoError(t, svc.Invalidate(ctx, "s1"))
	require.NoError(t, svc.Invalidate(ctx, "never-existed"))

	ok, err := svc.IsValid(ctx, "s1", "token-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRevokedSessionCannotBeExtended(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(newMemSessionStore())
	require.NoError(t, svc.Create(ctx, "s1", "u1", "token-1", time.Now().Add(time.Hour)))
	require.NoError(t, svc.Invalidate(ctx, "s1"))

	err := svc.Extend(ctx, "s1", "token-1", "token-2", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestExpiredSessionIsInvalid(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(newMemSessionStore())
	require.NoError(t, svc.Create(ctx, "s1", "u1", "token-1", time.Now().Add(-time.Minute)))

	ok, err := svc.IsValid(ctx, "s1", "token-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConcurrentExtendExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(newMemSessionStore())
	require.NoError(t, svc.Create(ctx, "s1", "u1", "token-1", time.Now().Add(time.Hour)))

	const n = 8
	results := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results <- svc.Extend(ctx, "s1", "token-1", string(rune('a'+i)), time.Now().Add(time.Hour))
		}(i)
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, repository.ErrSessionNotFound)
		}
	}
	assert.Equal(t, 1, wins)
}
