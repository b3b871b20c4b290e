package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcomensal/restaurante-api/internal/cart"
	"github.com/elcomensal/restaurante-api/internal/model"
)

func cartWith(items ...model.MenuItem) *cart.Cart {
	c := cart.New()
	for _, it := range items {
		c.AddItem(it)
	}
	return c
}

func pizza() model.MenuItem { return model.MenuItem{ID: 1, Nombre: "Pizza", Precio: 10} }

func TestProceedOnlyFromReviewing(t *testing.T) {
	f := NewFlow(cartWith(pizza()))
	require.NoError(t, f.Proceed())
	assert.Equal(t, StatePaymentSelect, f.State())
	assert.ErrorIs(t, f.Proceed(), ErrInvalidTransition)
}

func TestSelectPaymentOverEmptyCart(t *testing.T) {
	f := NewFlow(cart.New())
	_, err := f.SelectQR()
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.ErrorIs(t, f.SelectCard(), ErrEmptyCart)
	assert.Equal(t, StateReviewing, f.State(), "rejected selection must not move the flow")
}

func TestQRAttemptTokensAreUnique(t *testing.T) {
	f := NewFlow(cartWith(pizza()))
	first, err := f.SelectQR()
	require.NoError(t, err)
	require.NoError(t, f.DismissQR())
	second, err := f.SelectQR()
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token, "re-entering the QR screen mints a fresh token")
}

func TestDismissQRKeepsCart(t *testing.T) {
	c := cartWith(pizza())
	f := NewFlow(c)
	_, err := f.SelectQR()
	require.NoError(t, err)

	require.NoError(t, f.DismissQR())
	assert.Equal(t, StatePaymentSelect, f.State())
	assert.Equal(t, 1, c.Count())

	_, ok := f.QRAttempt()
	assert.False(t, ok, "no token is displayed outside QRPending")
}

func TestConfirmCardClearsCart(t *testing.T) {
	c := cartWith(pizza())
	f := NewFlow(c)
	require.NoError(t, f.SelectCard())
	require.NoError(t, f.ConfirmCard())

	assert.Equal(t, StateConfirmed, f.State())
	assert.Equal(t, 0, c.Count())
}

func TestCancelCardReturnsToSelection(t *testing.T) {
	c := cartWith(pizza())
	f := NewFlow(c)
	require.NoError(t, f.SelectCard())
	require.NoError(t, f.CancelCard())

	assert.Equal(t, StatePaymentSelect, f.State())
	assert.Equal(t, 1, c.Count(), "backing out of the form never touches the cart")
}

func TestCancelPreservesCart(t *testing.T) {
	c := cartWith(pizza())
	f := NewFlow(c)
	_, err := f.SelectQR()
	require.NoError(t, err)

	require.NoError(t, f.Cancel())
	assert.Equal(t, StateCancelled, f.State())
	assert.Equal(t, 1, c.Count())

	assert.ErrorIs(t, f.Cancel(), ErrInvalidTransition, "terminal states reject further actions")
}

func TestConfirmRequiresOpenCardForm(t *testing.T) {
	f := NewFlow(cartWith(pizza()))
	assert.ErrorIs(t, f.ConfirmCard(), ErrInvalidTransition)

	_, err := f.SelectQR()
	require.NoError(t, err)
	assert.ErrorIs(t, f.ConfirmCard(), ErrInvalidTransition, "QR display never settles")
}

func TestFlowsBeginReplacesPrevious(t *testing.T) {
	s := NewFlows()
	c := cartWith(pizza())

	first := s.Begin(1, c)
	require.NoError(t, first.Proceed())

	second := s.Begin(1, c)
	assert.NotSame(t, first, second)
	assert.Equal(t, StateReviewing, second.State(), "a new checkout always starts at review")

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Same(t, second, got)

	s.End(1)
	_, ok = s.Get(1)
	assert.False(t, ok)
}

func TestCardDetailsComplete(t *testing.T) {
	full := CardDetails{Titular: "Ana", Numero: "4111111111111111", Expiracion: "12/27", CVV: "123"}
	assert.True(t, full.Complete())

	missing := full
	missing.CVV = ""
	assert.False(t, missing.Complete())
}
