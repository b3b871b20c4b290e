package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elcomensal/restaurante-api/internal/catalog"
	"github.com/elcomensal/restaurante-api/internal/model"
	"github.com/elcomensal/restaurante-api/internal/repository"
)

// menuEditor is the slice of MenuRepo the admin editor needs.
type menuEditor interface {
	ListAll(ctx context.Context) ([]model.MenuItem, error)
	Create(ctx context.Context, it *model.MenuItem) error
	Update(ctx context.Context, it *model.MenuItem) error
	Delete(ctx context.Context, id uint64) error
}

// reservationLister is the slice of ReservationRepo the admin view needs.
type reservationLister interface {
	ListAll(ctx context.Context) ([]model.Reservation, error)
}

// AdminHandler is the management surface: menu CRUD plus the reservation
// overview. Every menu mutation republishes the full catalog snapshot to
// the live feed, so every connected customer converges on the new list.
type AdminHandler struct {
	Menu         menuEditor
	Reservations reservationLister
	Feed         *catalog.Feed
}

func NewAdminHandler(menu menuEditor, reservations reservationLister, feed *catalog.Feed) *AdminHandler {
	return &AdminHandler{Menu: menu, Reservations: reservations, Feed: feed}
}

// menuItemReq carries precio as the raw form string; the admin form
// submits free text, so parsing happens here and a non-numeric value is
// a 400, never a silent zero.
type menuItemReq struct {
	Nombre      string `json:"nombre"`
	URL         string `json:"url"`
	Precio      string `json:"precio"`
	Descripcion string `json:"descripcion"`
}

func (r *menuItemReq) toItem() (model.MenuItem, error) {
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.URL = strings.TrimSpace(r.URL)
	r.Precio = strings.TrimSpace(r.Precio)
	r.Descripcion = strings.TrimSpace(r.Descripcion)
	if r.Nombre == "" || r.URL == "" || r.Precio == "" || r.Descripcion == "" {
		return model.MenuItem{}, errors.New("nombre/url/precio/descripcion required")
	}
	precio, err := strconv.ParseFloat(r.Precio, 64)
	if err != nil || precio < 0 {
		return model.MenuItem{}, errors.New("precio inválido")
	}
	return model.MenuItem{
		Nombre:      r.Nombre,
		URL:         r.URL,
		Precio:      precio,
		Descripcion: r.Descripcion,
	}, nil
}

// ListMenu returns the full catalog for the management view.
func (h *AdminHandler) ListMenu(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Menu.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateMenuItem adds a catalog item and pushes the new snapshot live.
func (h *AdminHandler) CreateMenuItem(c echo.Context) error {
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	item, err := req.toItem()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Menu.Create(ctx, &item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	h.republish(ctx)
	return c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem overwrites all four fields of one item.
func (h *AdminHandler) UpdateMenuItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	item, err := req.toItem()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	item.ID = id

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Menu.Update(ctx, &item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.republish(ctx)
	return c.JSON(http.StatusOK, item)
}

// DeleteMenuItem removes one item.
func (h *AdminHandler) DeleteMenuItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Menu.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	h.republish(ctx)
	return c.NoContent(http.StatusNoContent)
}

// ListReservations returns every booking, newest first.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservas": out})
}

// republish reloads the full catalog and pushes it to live subscribers.
// A reload failure only skips the push; the mutation already succeeded.
func (h *AdminHandler) republish(ctx context.Context) {
	items, err := h.Menu.ListAll(ctx)
	if err != nil {
		log.Printf("admin: reload menu for live feed failed: %v", err)
		return
	}
	h.Feed.Publish(items)
}
