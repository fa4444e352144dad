package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/courtside/facility-reservation/internal/auth"
	"github.com/courtside/facility-reservation/internal/model"
	"github.com/courtside/facility-reservation/internal/repository"
	"github.com/courtside/facility-reservation/internal/service"
)

// refreshCookieName is the HTTP-only cookie carrying the refresh token.
// The browser presents it automatically on the accessToken and logout
// endpoints; it is never readable from script.
const refreshCookieName = "RefreshToken"

// AuthHandler bundles dependencies for the authentication endpoints.
type AuthHandler struct {
	Users      repository.UserStore
	Sessions   *service.SessionService
	Tokens     *auth.TokenIssuer
	BcryptCost int
	RefreshTTL time.Duration // session lifetime, reset on every rotation
}

func NewAuthHandler(users repository.UserStore, sessions *service.SessionService, tokens *auth.TokenIssuer, bcryptCost int, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		Users:      users,
		Sessions:   sessions,
		Tokens:     tokens,
		BcryptCost: bcryptCost,
		RefreshTTL: refreshTTL,
	}
}

// ----- DTOs -----

type registerReq struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginResp struct {
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

// Register creates a user with the default Member role. User and role
// assignment are committed in one transaction: an account with zero roles
// must never exist.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.UserName = strings.TrimSpace(req.UserName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ve := &validationError{}
	if req.UserName == "" {
		ve.add("userName", "'User Name' must not be empty")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		ve.add("email", "'Email' is not a valid email address")
	}
	if len(req.Password) < 8 {
		ve.add("password", "'Password' must be at least 8 characters long")
	}
	if !ve.ok() {
		return respondError(c, ve)
	}

	hash, err := auth.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user := &model.User{
		ID:           uuid.NewString(),
		UserName:     req.UserName,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.Users.Create(ctx, user, []string{model.RoleMember}); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// Login verifies credentials, opens a session and returns an access token
// in the body plus the refresh token in an HTTP-only cookie. Unknown user
// and wrong password produce the same 401 so usernames cannot be
// enumerated.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByUserName(ctx, strings.TrimSpace(req.UserName))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return respondError(c, err)
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	sessionID := uuid.NewString()
	expiresAt := time.Now().UTC().Add(h.RefreshTTL)

	accessToken, err := h.Tokens.CreateAccessToken(user.UserName, user.ID, user.Roles)
	if err != nil {
		return respondError(c, err)
	}
	refreshToken, err := h.Tokens.CreateRefreshToken(user.ID, expiresAt, sessionID)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Sessions.Create(ctx, sessionID, user.ID, refreshToken, expiresAt); err != nil {
		return respondError(c, err)
	}

	setRefreshCookie(c, refreshToken, expiresAt)
	return c.JSON(http.StatusOK, loginResp{
		UserName:    user.UserName,
		Email:       user.Email,
		AccessToken: accessToken,
	})
}

// AccessToken exchanges a valid refresh cookie for a new access token and
// rotates the refresh token. Every successful call overwrites the stored
// hash, so the previous refresh token is dead from that point on; a token
// from two rotations ago can never be replayed.
func (h *AuthHandler) AccessToken(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return c.NoContent(http.StatusUnprocessableEntity)
	}
	claims, ok := h.Tokens.TryParseRefreshToken(cookie.Value)
	if !ok {
		return c.NoContent(http.StatusUnprocessableEntity)
	}
	if strings.TrimSpace(claims.SessionID) == "" {
		return c.NoContent(http.StatusBadRequest)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	valid, err := h.Sessions.IsValid(ctx, claims.SessionID, cookie.Value)
	if err != nil {
		return respondError(c, err)
	}
	if !valid {
		// Revoked, expired, or the presented token is not the latest one.
		return c.NoContent(http.StatusBadRequest)
	}

	// Roles are re-read on every rotation, so role changes take effect on
	// the next refresh rather than waiting for a new login.
	user, err := h.Users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.NoContent(http.StatusBadRequest)
		}
		return respondError(c, err)
	}

	expiresAt := time.Now().UTC().Add(h.RefreshTTL)
	accessToken, err := h.Tokens.CreateAccessToken(user.UserName, user.ID, user.Roles)
	if err != nil {
		return respondError(c, err)
	}
	newRefresh, err := h.Tokens.CreateRefreshToken(user.ID, expiresAt, claims.SessionID)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Sessions.Extend(ctx, claims.SessionID, cookie.Value, newRefresh, expiresAt); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			// Lost a rotation race or the session vanished mid-flight.
			return c.NoContent(http.StatusBadRequest)
		}
		return respondError(c, err)
	}

	setRefreshCookie(c, newRefresh, expiresAt)
	return c.String(http.StatusOK, accessToken)
}

// Logout revokes the session named by the refresh cookie and clears the
// cookie. Idempotent: a second logout finds the session already revoked
// and still returns 200.
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return c.NoContent(http.StatusUnprocessableEntity)
	}
	claims, ok := h.Tokens.TryParseRefreshToken(cookie.Value)
	if !ok {
		return c.NoContent(http.StatusUnprocessableEntity)
	}
	if strings.TrimSpace(claims.SessionID) == "" {
		return c.NoContent(http.StatusBadRequest)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Sessions.Invalidate(ctx, claims.SessionID); err != nil {
		return respondError(c, err)
	}
	clearRefreshCookie(c)
	return c.NoContent(http.StatusOK)
}

// setRefreshCookie attaches the refresh token as an HTTP-only, Lax cookie
// expiring with the session.
func setRefreshCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure should be set behind HTTPS.
	})
}

// clearRefreshCookie expires the refresh cookie immediately.
func clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
