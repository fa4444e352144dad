package auth

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashRefreshToken returns the base64-encoded SHA-256 digest of a raw
// refresh token. Only this hash is stored on the session row, so a
// database read never leaks a usable token. A fast hash is acceptable
// here: the input is a signed JWT with high entropy and a short validity
// window, not a user-chosen password.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.StdEncoding.EncodeToString(sum[:])
}
