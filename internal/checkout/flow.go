// Package checkout implements the payment flow a customer walks through
// after reviewing the cart. The flow is a small state machine:
//
//	Reviewing -> PaymentSelect -> {QRPending, CardFormOpen} -> Confirmed | Cancelled
//
// Reaching QRPending is display-only: the QR token is shown for out-of-band
// scanning and nothing settles automatically. The card form confirms
// through a Provider, which is simulated here; swapping in a real
// settlement implementation does not touch this state machine.
package checkout

import (
	"errors"
	"sync"

	"github.com/elcomensal/restaurante-api/internal/cart"
)

// State names the positions of the checkout state machine.
type State string

const (
	StateReviewing     State = "reviewing"
	StatePaymentSelect State = "payment_select"
	StateQRPending     State = "qr_pending"
	StateCardFormOpen  State = "card_form_open"
	StateConfirmed     State = "confirmed"
	StateCancelled     State = "cancelled"
)

var (
	// ErrInvalidTransition is returned when an action does not apply to
	// the flow's current state.
	ErrInvalidTransition = errors.New("action not allowed in current checkout state")
	// ErrEmptyCart is returned when payment is requested over a cart with
	// no lines.
	ErrEmptyCart = errors.New("cart is empty")
)

// Flow is one checkout attempt over the shared session cart. The cart is
// held by reference: per-line removals during review mutate the same Cart
// the menu screen reads, and Confirm clears it.
type Flow struct {
	mu   sync.Mutex
	st   State
	cart *cart.Cart
	qr   *QRAttempt // set while in QRPending; one attempt per entry
}

// NewFlow starts a flow in Reviewing over the given cart.
func NewFlow(c *cart.Cart) *Flow {
	return &Flow{st: StateReviewing, cart: c}
}

// State reports the flow's current position.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st
}

// Cart exposes the shared cart for review rendering and per-line removal.
func (f *Flow) Cart() *cart.Cart { return f.cart }

// Proceed moves Reviewing -> PaymentSelect.
func (f *Flow) Proceed() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.st != StateReviewing {
		return ErrInvalidTransition
	}
	f.st = StatePaymentSelect
	return nil
}

// SelectQR generates a fresh per-attempt token and moves to QRPending.
// Tokens are never reused: re-entering QRPending mints a new one. Valid
// from Reviewing (the client may skip the explicit proceed step) or
// PaymentSelect.
func (f *Flow) SelectQR() (QRAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.st != StateReviewing && f.st != StatePaymentSelect {
		return QRAttempt{}, ErrInvalidTransition
	}
	if f.cart.Count() == 0 {
		return QRAttempt{}, ErrEmptyCart
	}
	a := NewQRAttempt()
	f.qr = &a
	f.st = StateQRPending
	return a, nil
}

// SelectCard opens the card form. Same entry states as SelectQR.
func (f *Flow) SelectCard() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.st != StateReviewing && f.st != StatePaymentSelect {
		return ErrInvalidTransition
	}
	if f.cart.Count() == 0 {
		return ErrEmptyCart
	}
	f.st = StateCardFormOpen
	return nil
}

// QRAttempt returns the token being displayed, ok=false outside QRPending.
func (f *Flow) QRAttempt() (QRAttempt, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.st != StateQRPending || f.qr == nil {
		return QRAttempt{}, false
	}
	return *f.qr, true
}

// DismissQR returns from QRPending to PaymentSelect without touching the
// cart. The displayed token is discarded.
func (f *Flow) DismissQR() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.st != StateQRPending {
		return ErrInvalidTransition
	}
	f.qr = nil
	f.st = StatePaymentSelect
	return nil
}

// ConfirmCard completes the flow from CardFormOpen: the flow becomes
// Confirmed and the shared cart is cleared. Field presence and provider
// authorization are the caller's responsibility; this method only applies
// the state change.
func (f *Flow) ConfirmCard() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.st != StateCardFormOpen {
		return ErrInvalidTransition
	}
	f.st = StateConfirmed
	f.cart.Clear()
	return nil
}

// CancelCard closes the card form back to PaymentSelect, cart untouched.
func (f *Flow) CancelCard() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.st != StateCardFormOpen {
		return ErrInvalidTransition
	}
	f.st = StatePaymentSelect
	return nil
}

// Cancel abandons the flow from any non-terminal state. The cart is left
// exactly as it was.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.st == StateConfirmed || f.st == StateCancelled {
		return ErrInvalidTransition
	}
	f.qr = nil
	f.st = StateCancelled
	return nil
}

// Flows hands out the active checkout flow per customer. Beginning a new
// checkout replaces any previous flow instance (navigating away resets
// the flow), so terminal states never linger.
type Flows struct {
	mu    sync.Mutex
	flows map[uint64]*Flow
}

func NewFlows() *Flows {
	return &Flows{flows: make(map[uint64]*Flow)}
}

// Begin starts (or restarts) the checkout flow for userID over c.
func (s *Flows) Begin(userID uint64, c *cart.Cart) *Flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := NewFlow(c)
	s.flows[userID] = f
	return f
}

// Get returns the user's active flow, ok=false when none was begun.
func (s *Flows) Get(userID uint64) (*Flow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[userID]
	return f, ok
}

// End discards the user's flow.
func (s *Flows) End(userID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, userID)
}
