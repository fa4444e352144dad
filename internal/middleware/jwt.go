// Package middleware provides reusable HTTP middleware: bearer-token
// authentication, role enforcement and rate limiting.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/courtside/facility-reservation/internal/auth"
	"github.com/courtside/facility-reservation/internal/model"
)

// Context keys under which the authenticated caller's identity is stored.
const (
	ctxUserID   = "user_id"
	ctxUserName = "user_name"
	ctxRoles    = "roles"
)

// JWTAuth returns middleware that validates a Bearer access token and
// injects the subject, name and role claims into the request context.
// Validation covers signature, issuer, audience, expiry and the token-type
// claim, so a refresh token presented as a bearer token is rejected even
// though both kinds are JWTs.
func JWTAuth(issuer *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := issuer.ParseAccessToken(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(ctxUserID, claims.Subject)
			c.Set(ctxUserName, claims.Name)
			c.Set(ctxRoles, claims.Roles)
			return next(c)
		}
	}
}

// CallerID returns the authenticated user's id from the request context.
func CallerID(c echo.Context) (string, error) {
	id, ok := c.Get(ctxUserID).(string)
	if !ok || id == "" {
		return "", errors.New("no authenticated user in context")
	}
	return id, nil
}

// CallerRoles returns the role names the access token was minted with.
// These are the roles at issuance time; role changes take effect on the
// next refresh, not within a token's own validity window.
func CallerRoles(c echo.Context) []string {
	roles, _ := c.Get(ctxRoles).([]string)
	return roles
}

// IsAdmin reports whether the caller holds the SystemAdministrator role.
func IsAdmin(c echo.Context) bool {
	for _, r := range CallerRoles(c) {
		if r == model.RoleSystemAdministrator {
			return true
		}
	}
	return false
}
