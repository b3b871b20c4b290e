package router

import (
	"github.com/labstack/echo/v4"

	"github.com/elcomensal/restaurante-api/internal/handler"
	"github.com/elcomensal/restaurante-api/internal/middleware"
	"github.com/elcomensal/restaurante-api/internal/model"
)

// RegisterCustomer registers the ordering surface under /v1. Every route
// requires a JWT with the cliente or admin role; admins can order like
// any customer. An account whose role claim is empty is rejected by the
// role gate, which is the fallback for the missing-profile state.
func RegisterCustomer(e *echo.Echo, cart *handler.CartHandler, co *handler.CheckoutHandler, res *handler.ReservationHandler, orders *handler.OrderHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCliente, model.RoleAdmin),
	)

	g.GET("/cart", cart.Get)
	g.POST("/cart/items", cart.AddItem)
	g.DELETE("/cart/items/:id", cart.RemoveItem)

	g.POST("/checkout", co.Begin)
	g.GET("/checkout", co.Get)
	g.DELETE("/checkout/items/:id", co.RemoveItem)
	g.POST("/checkout/payment", co.SelectPayment)
	g.GET("/checkout/qr.png", co.QRImage)
	g.POST("/checkout/qr/dismiss", co.DismissQR)
	g.POST("/checkout/card/confirm", co.ConfirmCard)
	g.POST("/checkout/card/cancel", co.CancelCard)
	g.POST("/checkout/cancel", co.Cancel)

	g.POST("/reservas", res.Create)
	g.GET("/pedidos", orders.List)
}
