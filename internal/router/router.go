// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/courtside/facility-reservation/internal/auth"
	"github.com/courtside/facility-reservation/internal/config"
	"github.com/courtside/facility-reservation/internal/handler"
	"github.com/courtside/facility-reservation/internal/middleware"
	"github.com/courtside/facility-reservation/internal/model"
)

// RegisterRoutes registers routes that require no authentication.
// Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints under
// /api/v1/authentication. These are the only routes a caller can hit to
// probe credentials, so the redis token-bucket limiter is applied to the
// whole group. None of them require a bearer token: refresh and logout
// authenticate through the refresh cookie instead.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/api/v1/authentication")
	g.Use(middleware.AuthRateLimit(rlCfg, rdb))
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Exchanges the refresh cookie for a new access token and rotates the cookie.
	g.POST("/accessToken", a.AccessToken)
	g.POST("/logout", a.Logout)
}

// RegisterResources registers the facility, time-slot and reservation
// endpoints under /api/v1. Every route requires a valid access token;
// facility and time-slot mutations additionally require the
// FacilityAdministrator role. Ownership checks live in the handlers,
// which must distinguish 403 from 404.
func RegisterResources(e *echo.Echo, f *handler.FacilityHandler, ts *handler.TimeSlotHandler, r *handler.ReservationHandler, issuer *auth.TokenIssuer) {
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuth(issuer))

	facilityAdmin := middleware.RequireRole(model.RoleFacilityAdministrator, model.RoleSystemAdministrator)

	api.GET("/facility", f.List)
	api.GET("/facility/:id", f.Get)
	api.POST("/facility", f.Create, facilityAdmin)
	api.PUT("/facility/:id", f.Update, facilityAdmin)
	api.DELETE("/facility/:id", f.Delete, facilityAdmin)

	api.GET("/facility/:facilityId/timeslot", ts.List)
	api.GET("/facility/:facilityId/timeslot/:id", ts.Get)
	api.POST("/facility/:facilityId/timeslot", ts.Create, facilityAdmin)
	api.PUT("/facility/:facilityId/timeslot/:id", ts.Update, facilityAdmin)
	api.DELETE("/facility/:facilityId/timeslot/:id", ts.Delete, facilityAdmin)

	api.GET("/facility/:facilityId/timeslot/:timeSlotId/reservation", r.List)
	api.GET("/facility/:facilityId/timeslot/:timeSlotId/reservation/:id", r.Get)
	api.POST("/facility/:facilityId/timeslot/:timeSlotId/reservation", r.Create)
	api.PUT("/facility/:facilityId/timeslot/:timeSlotId/reservation/:id", r.Update)
	api.DELETE("/facility/:facilityId/timeslot/:timeSlotId/reservation/:id", r.Delete)
}
