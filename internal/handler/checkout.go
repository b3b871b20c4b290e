package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/elcomensal/restaurante-api/internal/cart"
	"github.com/elcomensal/restaurante-api/internal/checkout"
	"github.com/elcomensal/restaurante-api/internal/model"
	"github.com/elcomensal/restaurante-api/internal/queue"
	queue_publisher "github.com/elcomensal/restaurante-api/internal/service"
)

// orderRecorder is the slice of OrderRepo the checkout handler needs.
type orderRecorder interface {
	Create(ctx context.Context, o *model.Order) error
}

// CheckoutHandler drives the checkout state machine over the shared
// session cart and records the order when a payment confirms.
type CheckoutHandler struct {
	Carts    *cart.Store
	Flows    *checkout.Flows
	Orders   orderRecorder
	Provider checkout.Provider

	// publish sends the confirmation event to the broker. Overridable in
	// tests; publishing is advisory and never fails the request.
	publish func(ctx context.Context, ev queue.OrderConfirmedEvent) error
}

func NewCheckoutHandler(carts *cart.Store, flows *checkout.Flows, orders orderRecorder, provider checkout.Provider) *CheckoutHandler {
	return &CheckoutHandler{
		Carts:    carts,
		Flows:    flows,
		Orders:   orders,
		Provider: provider,
		publish:  queue_publisher.PublishOrderConfirmed,
	}
}

type paymentReq struct {
	Method string `json:"method"`
}

type flowResp struct {
	State string   `json:"state"`
	Cart  cartResp `json:"cart"`
	Token string   `json:"qr_token,omitempty"`
}

func flowView(f *checkout.Flow) flowResp {
	resp := flowResp{State: string(f.State()), Cart: cartView(f.Cart())}
	if a, ok := f.QRAttempt(); ok {
		resp.Token = a.Token
	}
	return resp
}

// Begin opens (or reopens) the review screen over the current cart. An
// earlier flow in any state is discarded.
func (h *CheckoutHandler) Begin(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f := h.Flows.Begin(uid, h.Carts.Get(uid))
	return c.JSON(http.StatusOK, flowView(f))
}

// Get reports the active flow without changing it.
func (h *CheckoutHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f, ok := h.Flows.Get(uid)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active checkout"})
	}
	return c.JSON(http.StatusOK, flowView(f))
}

// RemoveItem decrements a line while reviewing. The same cart backs the
// menu badge, so the change is visible everywhere at once.
func (h *CheckoutHandler) RemoveItem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f, ok := h.Flows.Get(uid)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active checkout"})
	}
	menuID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || menuID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	f.Cart().DecrementItem(menuID)
	return c.JSON(http.StatusOK, flowView(f))
}

// SelectPayment moves the flow into either the QR display or the card
// form. Selecting over an empty cart is rejected before any state change.
func (h *CheckoutHandler) SelectPayment(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f, ok := h.Flows.Get(uid)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active checkout"})
	}
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	switch req.Method {
	case model.PaymentQR:
		if _, err := f.SelectQR(); err != nil {
			return checkoutErr(c, err)
		}
	case model.PaymentCard:
		if err := f.SelectCard(); err != nil {
			return checkoutErr(c, err)
		}
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "method must be qr or card"})
	}
	return c.JSON(http.StatusOK, flowView(f))
}

// QRImage renders the pending attempt's token as a PNG.
func (h *CheckoutHandler) QRImage(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f, ok := h.Flows.Get(uid)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active checkout"})
	}
	attempt, ok := f.QRAttempt()
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no qr payment pending"})
	}
	png, err := attempt.PNG(256)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render qr failed"})
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// DismissQR closes the QR display back to payment selection; the
// displayed token is discarded and a later re-entry mints a new one.
func (h *CheckoutHandler) DismissQR(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f, ok := h.Flows.Get(uid)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active checkout"})
	}
	if err := f.DismissQR(); err != nil {
		return checkoutErr(c, err)
	}
	return c.JSON(http.StatusOK, flowView(f))
}

// ConfirmCard authorizes the card form through the provider, confirms
// the flow, records the order and publishes the confirmation event. The
// cart is emptied only after the order row is written.
func (h *CheckoutHandler) ConfirmCard(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f, ok := h.Flows.Get(uid)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active checkout"})
	}
	if f.State() != checkout.StateCardFormOpen {
		return c.JSON(http.StatusConflict, echo.Map{"error": "card form is not open"})
	}

	var card checkout.CardDetails
	if err := c.Bind(&card); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !card.Complete() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "titular/numero/expiracion/cvv required"})
	}

	// Snapshot the lines before ConfirmCard clears the cart.
	lines := f.Cart().Lines()
	total := f.Cart().Total()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Provider.Authorize(ctx, card, total); err != nil {
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "payment declined"})
	}

	order := &model.Order{
		ID:         uuid.NewString(),
		UserID:     uid,
		MetodoPago: model.PaymentCard,
		Total:      total,
		CreadoEn:   time.Now().UTC(),
	}
	for _, l := range lines {
		order.Items = append(order.Items, model.OrderItem{
			PedidoID: order.ID,
			MenuID:   l.Item.ID,
			Nombre:   l.Item.Nombre,
			Precio:   l.Item.Precio,
			Cantidad: l.Cantidad,
		})
	}
	if err := h.Orders.Create(ctx, order); err != nil {
		log.Printf("checkout: record order %s failed: %v", order.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record order failed"})
	}
	if err := f.ConfirmCard(); err != nil {
		return checkoutErr(c, err)
	}

	ev := queue.OrderConfirmedEvent{
		OrderID:     order.ID,
		UserID:      uid,
		MetodoPago:  order.MetodoPago,
		Total:       order.Total,
		ConfirmedAt: order.CreadoEn.Format(time.RFC3339),
	}
	for _, it := range order.Items {
		ev.Items = append(ev.Items, queue.OrderConfirmedItem{
			MenuID:   it.MenuID,
			Nombre:   it.Nombre,
			Precio:   it.Precio,
			Cantidad: it.Cantidad,
		})
	}
	if err := h.publish(ctx, ev); err != nil {
		// Advisory: the order is already recorded, the event can be replayed.
		log.Printf("checkout: publish order confirmed %s failed: %v", order.ID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"state":    string(f.State()),
		"order_id": order.ID,
		"total":    order.Total,
	})
}

// CancelCard closes the card form back to payment selection.
func (h *CheckoutHandler) CancelCard(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f, ok := h.Flows.Get(uid)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active checkout"})
	}
	if err := f.CancelCard(); err != nil {
		return checkoutErr(c, err)
	}
	return c.JSON(http.StatusOK, flowView(f))
}

// Cancel abandons the flow; the cart keeps every line it had.
func (h *CheckoutHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f, ok := h.Flows.Get(uid)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active checkout"})
	}
	if err := f.Cancel(); err != nil {
		return checkoutErr(c, err)
	}
	h.Flows.End(uid)
	return c.JSON(http.StatusOK, echo.Map{
		"state": string(checkout.StateCancelled),
		"cart":  cartView(h.Carts.Get(uid)),
	})
}

func checkoutErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return c.JSON(http.StatusConflict, echo.Map{"error": "cart is empty"})
	case errors.Is(err, checkout.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "action not allowed in current state"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "checkout failed"})
	}
}
