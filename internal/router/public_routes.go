package router

import (
	"github.com/labstack/echo/v4"

	"github.com/elcomensal/restaurante-api/internal/handler"
)

// RegisterPublic registers the browse endpoints guests can reach without
// a session: the catalog (plain and live), promotions and contact info.
// The cache middleware is built by the caller so the same Redis client is
// shared with the rate limiter; pass nil to skip caching.
func RegisterPublic(e *echo.Echo, m *handler.MenuHandler, s *handler.StaticHandler, cache echo.MiddlewareFunc) {
	if cache != nil {
		e.GET("/v1/menu", m.List, cache)
	} else {
		e.GET("/v1/menu", m.List)
	}
	// The live stream is never cached: each subscriber holds the
	// connection open and receives snapshots as they are published.
	e.GET("/v1/menu/live", m.Live)

	e.GET("/v1/promociones", s.Promotions)
	e.GET("/v1/contacto", s.Contact)
}
