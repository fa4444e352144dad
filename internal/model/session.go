package model

import "time"

// Session represents one authenticated login in the `sessions` table. A
// session stores only the SHA-256 hash of the most recently issued refresh
// token, never the raw token. The row is updated in place on every
// rotation and flagged revoked on logout; rows are never deleted so the
// table doubles as an audit trail.
//
// A session is valid only while: !Revoked && now <= ExpiresAt && the
// presented refresh token hashes to RefreshTokenHash.
type Session struct {
	ID               string    // sessions.id (UUID generated at login)
	UserID           string    // owning user
	RefreshTokenHash string    // hash of the latest refresh token
	InitiatedAt      time.Time // when the login happened
	ExpiresAt        time.Time // sliding expiry, pushed forward on rotation
	Revoked          bool      // monotonic false -> true
}
