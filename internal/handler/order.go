package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elcomensal/restaurante-api/internal/model"
)

// orderLister is the slice of OrderRepo the history endpoint needs.
type orderLister interface {
	ListByUser(ctx context.Context, userID uint64) ([]model.Order, error)
}

// OrderHandler serves the customer's confirmed order history.
type OrderHandler struct {
	Orders orderLister
}

func NewOrderHandler(orders orderLister) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

// List returns the caller's orders, newest first.
func (h *OrderHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Orders.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"pedidos": orders})
}
