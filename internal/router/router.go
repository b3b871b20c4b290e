package router // route registration for the restaurant API

import (
	"github.com/labstack/echo/v4"

	"github.com/elcomensal/restaurante-api/internal/handler"
	"github.com/elcomensal/restaurante-api/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication at all.
// Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the session lifecycle. Register, login and refresh
// live under /v1/auth and need no token; /v1/session requires a valid
// JWT but deliberately no role, so an account whose role record is
// missing can still inspect its own state.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts a refresh token in the body with no JWT, or a bearer
	// token with no body; either path also drops the session cart.
	g.POST("/logout", a.Logout, middleware.OptionalJWT(jwtSecret))

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/session", a.Session)
}
