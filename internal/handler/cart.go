package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elcomensal/restaurante-api/internal/cart"
	"github.com/elcomensal/restaurante-api/internal/model"
	"github.com/elcomensal/restaurante-api/internal/repository"
)

// menuGetter is the slice of MenuRepo the cart handler needs: items are
// always re-read from the catalog when added, so the cart line carries
// the price at the moment of adding.
type menuGetter interface {
	GetByID(ctx context.Context, id uint64) (model.MenuItem, error)
}

// CartHandler mutates the caller's in-memory cart. Nothing here touches
// MySQL except the menu lookup on add.
type CartHandler struct {
	Carts *cart.Store
	Menu  menuGetter
}

func NewCartHandler(carts *cart.Store, menu menuGetter) *CartHandler {
	return &CartHandler{Carts: carts, Menu: menu}
}

type addItemReq struct {
	MenuID uint64 `json:"menu_id"`
}

type cartResp struct {
	Lines []cart.Line `json:"lines"`
	Total float64     `json:"total"`
	Count int         `json:"count"`
}

func cartView(ct *cart.Cart) cartResp {
	return cartResp{Lines: ct.Lines(), Total: ct.Total(), Count: ct.Count()}
}

// Get returns the current cart contents with the recomputed total and
// the badge count.
func (h *CartHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, cartView(h.Carts.Get(uid)))
}

// AddItem adds one unit of a menu item: a new line at quantity 1, or an
// increment when the item is already in the cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req addItemReq
	if err := c.Bind(&req); err != nil || req.MenuID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "menu_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item, err := h.Menu.GetByID(ctx, req.MenuID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	ct := h.Carts.Get(uid)
	ct.AddItem(item)
	return c.JSON(http.StatusOK, cartView(ct))
}

// RemoveItem decrements one unit of a menu item; the line disappears when
// its quantity reaches zero. Unknown items are a no-op, not an error.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	menuID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || menuID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}

	ct := h.Carts.Get(uid)
	ct.DecrementItem(menuID)
	return c.JSON(http.StatusOK, cartView(ct))
}
