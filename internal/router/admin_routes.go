package router

import (
	"github.com/labstack/echo/v4"

	"github.com/elcomensal/restaurante-api/internal/handler"
	"github.com/elcomensal/restaurante-api/internal/middleware"
	"github.com/elcomensal/restaurante-api/internal/model"
)

// RegisterAdmin registers the management surface under /v1/admin. Every
// route requires a JWT carrying the admin role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/menu", a.ListMenu)
	g.POST("/menu", a.CreateMenuItem)
	g.PUT("/menu/:id", a.UpdateMenuItem)
	g.DELETE("/menu/:id", a.DeleteMenuItem)

	g.GET("/reservas", a.ListReservations)
}
