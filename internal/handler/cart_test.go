package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcomensal/restaurante-api/internal/cart"
	"github.com/elcomensal/restaurante-api/internal/model"
	"github.com/elcomensal/restaurante-api/internal/repository"
)

// fakeMenu serves a fixed catalog without MySQL.
type fakeMenu struct {
	items map[uint64]model.MenuItem
}

func (f *fakeMenu) GetByID(_ context.Context, id uint64) (model.MenuItem, error) {
	it, ok := f.items[id]
	if !ok {
		return model.MenuItem{}, repository.ErrNotFound
	}
	return it, nil
}

func (f *fakeMenu) ListAll(_ context.Context) ([]model.MenuItem, error) {
	out := make([]model.MenuItem, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it)
	}
	return out, nil
}

func newFakeMenu() *fakeMenu {
	return &fakeMenu{items: map[uint64]model.MenuItem{
		1: {ID: 1, Nombre: "Pizza", Precio: 10},
		2: {ID: 2, Nombre: "Refresco", Precio: 5},
	}}
}

func newCtx(t *testing.T, method, target, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	return c, rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResp {
	t.Helper()
	var out cartResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCartAddItem(t *testing.T) {
	h := NewCartHandler(cart.NewStore(), newFakeMenu())

	c, rec := newCtx(t, http.MethodPost, "/v1/cart/items", `{"menu_id":1}`, 1)
	require.NoError(t, h.AddItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeCart(t, rec)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 1, got.Lines[0].Cantidad)
	assert.Equal(t, 10.0, got.Total)

	// Adding the same item again increments, never duplicates.
	c, rec = newCtx(t, http.MethodPost, "/v1/cart/items", `{"menu_id":1}`, 1)
	require.NoError(t, h.AddItem(c))
	got = decodeCart(t, rec)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 2, got.Lines[0].Cantidad)
	assert.Equal(t, 20.0, got.Total)
}

func TestCartAddUnknownItem(t *testing.T) {
	h := NewCartHandler(cart.NewStore(), newFakeMenu())

	c, rec := newCtx(t, http.MethodPost, "/v1/cart/items", `{"menu_id":99}`, 1)
	require.NoError(t, h.AddItem(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartRemoveItem(t *testing.T) {
	carts := cart.NewStore()
	h := NewCartHandler(carts, newFakeMenu())
	carts.Get(1).AddItem(model.MenuItem{ID: 1, Nombre: "Pizza", Precio: 10})
	carts.Get(1).AddItem(model.MenuItem{ID: 1, Nombre: "Pizza", Precio: 10})

	c, rec := newCtx(t, http.MethodDelete, "/", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.RemoveItem(c))

	got := decodeCart(t, rec)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 1, got.Lines[0].Cantidad)
	assert.Equal(t, 10.0, got.Total)
}

func TestCartRemoveAbsentItemIsNoOp(t *testing.T) {
	carts := cart.NewStore()
	h := NewCartHandler(carts, newFakeMenu())
	carts.Get(1).AddItem(model.MenuItem{ID: 1, Nombre: "Pizza", Precio: 10})

	c, rec := newCtx(t, http.MethodDelete, "/", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.RemoveItem(c))

	got := decodeCart(t, rec)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, 10.0, got.Total)
}

func TestCartIsPerUser(t *testing.T) {
	h := NewCartHandler(cart.NewStore(), newFakeMenu())

	c, _ := newCtx(t, http.MethodPost, "/v1/cart/items", `{"menu_id":1}`, 1)
	require.NoError(t, h.AddItem(c))

	c, rec := newCtx(t, http.MethodGet, "/v1/cart", "", 2)
	require.NoError(t, h.Get(c))
	got := decodeCart(t, rec)
	assert.Empty(t, got.Lines, "another user's cart stays empty")
	assert.Equal(t, 0.0, got.Total)
}
