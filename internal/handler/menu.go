package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elcomensal/restaurante-api/internal/catalog"
	"github.com/elcomensal/restaurante-api/internal/model"
)

// menuLister is the slice of MenuRepo the public handlers need.
type menuLister interface {
	ListAll(ctx context.Context) ([]model.MenuItem, error)
}

// MenuHandler serves the public catalog: a plain list plus a live SSE
// stream that pushes a fresh snapshot after every admin mutation.
type MenuHandler struct {
	Menu menuLister
	Feed *catalog.Feed
}

func NewMenuHandler(menu menuLister, feed *catalog.Feed) *MenuHandler {
	return &MenuHandler{Menu: menu, Feed: feed}
}

// List returns every menu item. The route sits behind the Redis response
// cache, so repeated reads rarely reach MySQL.
func (h *MenuHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Menu.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Live streams catalog snapshots as server-sent events. The client gets
// the current menu immediately and then one event per change; slow
// readers only ever see the latest snapshot, intermediate ones are
// dropped.
func (h *MenuHandler) Live(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	items, err := h.Menu.ListAll(ctx)
	cancel()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	sub := h.Feed.Subscribe()
	defer sub.Cancel()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	if err := writeMenuEvent(res, items); err != nil {
		return nil
	}

	reqCtx := c.Request().Context()
	for {
		select {
		case <-reqCtx.Done():
			return nil
		case snapshot, ok := <-sub.C:
			if !ok {
				return nil
			}
			if err := writeMenuEvent(res, snapshot); err != nil {
				return nil
			}
		}
	}
}

func writeMenuEvent(res *echo.Response, items []model.MenuItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: menu\ndata: %s\n\n", payload); err != nil {
		return err
	}
	res.Flush()
	return nil
}
