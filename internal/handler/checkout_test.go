package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcomensal/restaurante-api/internal/cart"
	"github.com/elcomensal/restaurante-api/internal/checkout"
	"github.com/elcomensal/restaurante-api/internal/model"
	"github.com/elcomensal/restaurante-api/internal/queue"
)

// fakeOrders records created orders in memory.
type fakeOrders struct {
	created []*model.Order
	fail    bool
}

func (f *fakeOrders) Create(_ context.Context, o *model.Order) error {
	if f.fail {
		return assert.AnError
	}
	f.created = append(f.created, o)
	return nil
}

func newCheckoutFixture() (*CheckoutHandler, *cart.Store, *fakeOrders, *[]queue.OrderConfirmedEvent) {
	carts := cart.NewStore()
	orders := &fakeOrders{}
	h := NewCheckoutHandler(carts, checkout.NewFlows(), orders, checkout.SimulatedProvider{})
	published := &[]queue.OrderConfirmedEvent{}
	h.publish = func(_ context.Context, ev queue.OrderConfirmedEvent) error {
		*published = append(*published, ev)
		return nil
	}
	return h, carts, orders, published
}

func fillCart(carts *cart.Store, uid uint64) {
	ct := carts.Get(uid)
	ct.AddItem(model.MenuItem{ID: 1, Nombre: "Pizza", Precio: 10})
	ct.AddItem(model.MenuItem{ID: 1, Nombre: "Pizza", Precio: 10})
	ct.AddItem(model.MenuItem{ID: 2, Nombre: "Refresco", Precio: 5})
}

const cardBody = `{"titular":"Ana","numero":"4111111111111111","expiracion":"12/27","cvv":"123"}`

func TestCheckoutBeginShowsCart(t *testing.T) {
	h, carts, _, _ := newCheckoutFixture()
	fillCart(carts, 1)

	c, rec := newCtx(t, http.MethodPost, "/v1/checkout", "", 1)
	require.NoError(t, h.Begin(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got flowResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, string(checkout.StateReviewing), got.State)
	assert.Equal(t, 25.0, got.Cart.Total)
}

func TestCheckoutPaymentOverEmptyCart(t *testing.T) {
	h, _, _, _ := newCheckoutFixture()

	c, _ := newCtx(t, http.MethodPost, "/v1/checkout", "", 1)
	require.NoError(t, h.Begin(c))

	c, rec := newCtx(t, http.MethodPost, "/v1/checkout/payment", `{"method":"qr"}`, 1)
	require.NoError(t, h.SelectPayment(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckoutUnknownPaymentMethod(t *testing.T) {
	h, carts, _, _ := newCheckoutFixture()
	fillCart(carts, 1)

	c, _ := newCtx(t, http.MethodPost, "/v1/checkout", "", 1)
	require.NoError(t, h.Begin(c))

	c, rec := newCtx(t, http.MethodPost, "/v1/checkout/payment", `{"method":"efectivo"}`, 1)
	require.NoError(t, h.SelectPayment(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutQRRoundTrip(t *testing.T) {
	h, carts, _, _ := newCheckoutFixture()
	fillCart(carts, 1)

	c, _ := newCtx(t, http.MethodPost, "/v1/checkout", "", 1)
	require.NoError(t, h.Begin(c))

	c, rec := newCtx(t, http.MethodPost, "/v1/checkout/payment", `{"method":"qr"}`, 1)
	require.NoError(t, h.SelectPayment(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got flowResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, string(checkout.StateQRPending), got.State)
	assert.NotEmpty(t, got.Token)
	firstToken := got.Token

	c, rec = newCtx(t, http.MethodGet, "/v1/checkout/qr.png", "", 1)
	require.NoError(t, h.QRImage(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.NotEmpty(t, rec.Body.Bytes())

	c, _ = newCtx(t, http.MethodPost, "/v1/checkout/qr/dismiss", "", 1)
	require.NoError(t, h.DismissQR(c))

	// Re-entering mints a different token; the cart is untouched.
	c, rec = newCtx(t, http.MethodPost, "/v1/checkout/payment", `{"method":"qr"}`, 1)
	require.NoError(t, h.SelectPayment(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEqual(t, firstToken, got.Token)
	assert.Equal(t, 25.0, got.Cart.Total)
}

func TestCheckoutCardConfirmRecordsOrder(t *testing.T) {
	h, carts, orders, published := newCheckoutFixture()
	fillCart(carts, 1)

	c, _ := newCtx(t, http.MethodPost, "/v1/checkout", "", 1)
	require.NoError(t, h.Begin(c))
	c, _ = newCtx(t, http.MethodPost, "/v1/checkout/payment", `{"method":"card"}`, 1)
	require.NoError(t, h.SelectPayment(c))

	c, rec := newCtx(t, http.MethodPost, "/v1/checkout/card/confirm", cardBody, 1)
	require.NoError(t, h.ConfirmCard(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, orders.created, 1)
	order := orders.created[0]
	assert.Equal(t, model.PaymentCard, order.MetodoPago)
	assert.Equal(t, 25.0, order.Total)
	require.Len(t, order.Items, 2)
	assert.NotEmpty(t, order.ID)

	require.Len(t, *published, 1)
	assert.Equal(t, order.ID, (*published)[0].OrderID)

	assert.Equal(t, 0, carts.Get(1).Count(), "cart empties only on confirmation")
}

func TestCheckoutCardConfirmMissingFields(t *testing.T) {
	h, carts, orders, _ := newCheckoutFixture()
	fillCart(carts, 1)

	c, _ := newCtx(t, http.MethodPost, "/v1/checkout", "", 1)
	require.NoError(t, h.Begin(c))
	c, _ = newCtx(t, http.MethodPost, "/v1/checkout/payment", `{"method":"card"}`, 1)
	require.NoError(t, h.SelectPayment(c))

	c, rec := newCtx(t, http.MethodPost, "/v1/checkout/card/confirm", `{"titular":"Ana"}`, 1)
	require.NoError(t, h.ConfirmCard(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, orders.created)
	assert.Equal(t, 3, carts.Get(1).Count(), "a rejected confirm leaves the cart alone")
}

func TestCheckoutCardCancelKeepsCart(t *testing.T) {
	h, carts, orders, _ := newCheckoutFixture()
	fillCart(carts, 1)

	c, _ := newCtx(t, http.MethodPost, "/v1/checkout", "", 1)
	require.NoError(t, h.Begin(c))
	c, _ = newCtx(t, http.MethodPost, "/v1/checkout/payment", `{"method":"card"}`, 1)
	require.NoError(t, h.SelectPayment(c))

	c, rec := newCtx(t, http.MethodPost, "/v1/checkout/card/cancel", "", 1)
	require.NoError(t, h.CancelCard(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got flowResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, string(checkout.StatePaymentSelect), got.State)
	assert.Equal(t, 3, carts.Get(1).Count())
	assert.Empty(t, orders.created)
}

func TestCheckoutCancelAbandonsFlow(t *testing.T) {
	h, carts, _, _ := newCheckoutFixture()
	fillCart(carts, 1)

	c, _ := newCtx(t, http.MethodPost, "/v1/checkout", "", 1)
	require.NoError(t, h.Begin(c))

	c, rec := newCtx(t, http.MethodPost, "/v1/checkout/cancel", "", 1)
	require.NoError(t, h.Cancel(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, carts.Get(1).Count(), "abandoning checkout preserves the cart")

	c, rec = newCtx(t, http.MethodGet, "/v1/checkout", "", 1)
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckoutReviewRemovalSharesCart(t *testing.T) {
	h, carts, _, _ := newCheckoutFixture()
	fillCart(carts, 1)

	c, _ := newCtx(t, http.MethodPost, "/v1/checkout", "", 1)
	require.NoError(t, h.Begin(c))

	c, rec := newCtx(t, http.MethodDelete, "/", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.RemoveItem(c))

	var got flowResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 15.0, got.Cart.Total)
	assert.Equal(t, 2, carts.Get(1).Count(), "removal during review hits the shared cart")
}

func TestCheckoutWithoutFlow(t *testing.T) {
	h, _, _, _ := newCheckoutFixture()

	c, rec := newCtx(t, http.MethodPost, "/v1/checkout/payment", `{"method":"qr"}`, 1)
	require.NoError(t, h.SelectPayment(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
