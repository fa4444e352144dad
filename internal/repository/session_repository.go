package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/courtside/facility-reservation/internal/model"
)

// SessionRepo is the MySQL implementation of SessionStore. Sessions are
// single rows keyed by the opaque session id generated at login; rotation
// and revocation are single-statement updates so they stay atomic without
// explicit locking.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create inserts a new session row.
func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sessions (id, user_id, refresh_token_hash, initiated_at, expires_at, revoked) VALUES (?,?,?,?,?,0)",
		s.ID, s.UserID, s.RefreshTokenHash, s.InitiatedAt, s.ExpiresAt)
	return err
}

// Get fetches a session by id.
func (r *SessionRepo) Get(ctx context.Context, id string) (*model.Session, error) {
	var s model.Session
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, refresh_token_hash, initiated_at, expires_at, revoked FROM sessions WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.UserID, &s.RefreshTokenHash, &s.InitiatedAt, &s.ExpiresAt, &s.Revoked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Swap replaces the stored hash and expiry, guarded by a compare-and-swap
// on the previous hash. Two concurrent rotations with the same token will
// race here and exactly one wins; the loser sees false.
func (r *SessionRepo) Swap(ctx context.Context, id, oldHash, newHash string, expiresAt time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET refresh_token_hash=?, expires_at=? WHERE id=? AND refresh_token_hash=? AND revoked=0",
		newHash, expiresAt, id, oldHash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Revoke flags the session revoked. Revocation is monotonic; revoking an
// already-revoked session reports false without error.
func (r *SessionRepo) Revoke(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET revoked=1 WHERE id=? AND revoked=0", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
