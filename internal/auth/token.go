// Package auth provides token minting and validation, refresh-token
// hashing, password hashing and the shared ownership predicate. It holds
// no state beyond the derived signing keys, which are read-only after
// startup.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token kinds carried in the "typ" claim. Access and refresh tokens are
// signed with distinct keys derived from the same configured secret, so a
// leaked access-token signing context cannot be used to forge refresh
// tokens. The typ claim is validated explicitly on parse rather than
// inferred from claim shape.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// AccessClaims is the claim set of a short-lived access token. Stateless:
// the server keeps no record of issued access tokens and they cannot be
// revoked before expiry.
type AccessClaims struct {
	Name      string   `json:"name"`
	Roles     []string `json:"roles"`
	TokenType string   `json:"typ"`
	jwt.RegisteredClaims
}

// RefreshClaims is the claim set of a refresh token. SessionID binds the
// token to a server-side session row; the token is only usable while that
// session's stored hash matches it.
type RefreshClaims struct {
	SessionID string `json:"sid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and validates both token kinds. Construct once at
// startup and share across handlers.
type TokenIssuer struct {
	accessKey  []byte
	refreshKey []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
}

// NewTokenIssuer derives the per-kind signing keys from the configured
// secret and returns an issuer bound to the given issuer/audience pair.
func NewTokenIssuer(secret, issuer, audience string, accessTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessKey:  deriveKey(secret, TokenTypeAccess),
		refreshKey: deriveKey(secret, TokenTypeRefresh),
		issuer:     issuer,
		audience:   audience,
		accessTTL:  accessTTL,
	}
}

// deriveKey computes HMAC-SHA256(secret, kind) so each token kind gets its
// own signing key without requiring two configured secrets.
func deriveKey(secret, kind string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(kind))
	return mac.Sum(nil)
}

// CreateAccessToken signs an HS256 access token for the user. Claims:
// name, roles, jti (random), sub (user id), iss, aud, exp = now+TTL, iat.
// Pure function of inputs, keys and the clock.
func (ti *TokenIssuer) CreateAccessToken(userName, userID string, roles []string) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		Name:      userName,
		Roles:     roles,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ti.issuer,
			Audience:  jwt.ClaimStrings{ti.audience},
			Subject:   userID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.accessKey)
}

// CreateRefreshToken signs an HS256 refresh token carrying the session id.
// The expiry is caller-supplied: the session lifetime, pushed forward on
// every rotation.
func (ti *TokenIssuer) CreateRefreshToken(userID string, expiresAt time.Time, sessionID string) (string, error) {
	claims := RefreshClaims{
		SessionID: sessionID,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ti.issuer,
			Audience:  jwt.ClaimStrings{ti.audience},
			Subject:   userID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt.UTC()),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.refreshKey)
}

var errWrongTokenType = errors.New("wrong token type")

// ParseAccessToken validates signature, issuer, audience, expiry and the
// typ claim of an access token and returns its claims.
func (ti *TokenIssuer) ParseAccessToken(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) { return ti.accessKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ti.issuer),
		jwt.WithAudience(ti.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		if err == nil {
			err = jwt.ErrTokenUnverifiable
		}
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, errWrongTokenType
	}
	return claims, nil
}

// TryParseRefreshToken validates a refresh token and returns its claims.
// Any structural, signature, expiry or typ violation yields ok=false;
// malformed input never panics.
func (ti *TokenIssuer) TryParseRefreshToken(raw string) (*RefreshClaims, bool) {
	claims := &RefreshClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) { return ti.refreshKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ti.issuer),
		jwt.WithAudience(ti.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid || claims.TokenType != TokenTypeRefresh {
		return nil, false
	}
	return claims, true
}
