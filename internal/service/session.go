// Package service holds orchestration logic that composes repositories:
// session lifecycle management and the domain-event publisher.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/courtside/facility-reservation/internal/auth"
	"github.com/courtside/facility-reservation/internal/model"
	"github.com/courtside/facility-reservation/internal/repository"
)

// SessionService manages the server-side session records that refresh
// tokens are bound to. All methods hash the raw token before it touches
// the store; the store never sees plaintext tokens.
type SessionService struct {
	store repository.SessionStore
}

func NewSessionService(store repository.SessionStore) *SessionService {
	return &SessionService{store: store}
}

// Create persists a new session for a fresh login.
func (s *SessionService) Create(ctx context.Context, sessionID, userID, refreshToken string, expiresAt time.Time) error {
	return s.store.Create(ctx, &model.Session{
		ID:               sessionID,
		UserID:           userID,
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
		InitiatedAt:      time.Now().UTC(),
		ExpiresAt:        expiresAt,
	})
}

// Extend rotates the session: the stored hash is swapped from the
// presented token's hash to the new token's hash and the expiry window
// slides forward. The swap is a compare-and-swap, so of two concurrent
// refreshes with the same token exactly one succeeds; the loser gets
// ErrSessionNotFound and its caller must treat the rotation as failed.
func (s *SessionService) Extend(ctx context.Context, sessionID, presentedToken, newToken string, expiresAt time.Time) error {
	swapped, err := s.store.Swap(ctx, sessionID,
		auth.HashRefreshToken(presentedToken), auth.HashRefreshToken(newToken), expiresAt)
	if err != nil {
		return err
	}
	if !swapped {
		// Either the session vanished or another rotation won the race.
		// Worth a warning: a well-behaved client never gets here.
		log.Printf("session: extend found no matching session %s", sessionID)
		return repository.ErrSessionNotFound
	}
	return nil
}

// Invalidate revokes the session. Missing sessions are logged and
// otherwise ignored so logout stays idempotent.
func (s *SessionService) Invalidate(ctx context.Context, sessionID string) error {
	revoked, err := s.store.Revoke(ctx, sessionID)
	if err != nil {
		return err
	}
	if !revoked {
		log.Printf("session: invalidate found no active session %s", sessionID)
	}
	return nil
}

// IsValid reports whether the session exists, is not revoked, has not
// expired, and still holds the hash of the presented refresh token.
func (s *SessionService) IsValid(ctx context.Context, sessionID, refreshToken string) (bool, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	if sess.Revoked || time.Now().UTC().After(sess.ExpiresAt) {
		return false, nil
	}
	return sess.RefreshTokenHash == auth.HashRefreshToken(refreshToken), nil
}
