package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcomensal/restaurante-api/internal/model"
)

func item(id uint64, nombre string, precio float64) model.MenuItem {
	return model.MenuItem{ID: id, Nombre: nombre, Precio: precio}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	c := New()
	c.AddItem(item(1, "Pizza", 10))
	c.AddItem(item(1, "Pizza", 10))

	lines := c.Lines()
	require.Len(t, lines, 1, "same item must never produce a second line")
	assert.Equal(t, 2, lines[0].Cantidad)
	assert.Equal(t, 2, c.Count())
}

func TestTotalRecomputedAfterEveryMutation(t *testing.T) {
	c := New()
	c.AddItem(item(1, "Pizza", 10))
	c.AddItem(item(1, "Pizza", 10))
	c.AddItem(item(2, "Refresco", 5))
	assert.Equal(t, 25.0, c.Total())

	c.DecrementItem(1)
	assert.Equal(t, 15.0, c.Total())

	c.DecrementItem(1)
	assert.Equal(t, 5.0, c.Total())
	require.Len(t, c.Lines(), 1, "line at quantity 1 disappears on decrement")
	assert.Equal(t, uint64(2), c.Lines()[0].Item.ID)
}

func TestDecrementUnknownItemIsNoOp(t *testing.T) {
	c := New()
	c.AddItem(item(1, "Pizza", 10))
	c.DecrementItem(99)

	assert.Equal(t, 1, c.Count())
	assert.Equal(t, 10.0, c.Total())
}

func TestQuantitiesNeverDropBelowOne(t *testing.T) {
	c := New()
	c.AddItem(item(1, "Pizza", 10))
	c.DecrementItem(1)
	c.DecrementItem(1) // already gone

	assert.Empty(t, c.Lines())
	assert.Equal(t, 0, c.Count())
	assert.Equal(t, 0.0, c.Total())
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	c := New()
	c.AddItem(item(3, "C", 1))
	c.AddItem(item(1, "A", 1))
	c.AddItem(item(2, "B", 1))
	c.AddItem(item(1, "A", 1)) // increment must not reorder

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, uint64(3), lines[0].Item.ID)
	assert.Equal(t, uint64(1), lines[1].Item.ID)
	assert.Equal(t, uint64(2), lines[2].Item.ID)
}

func TestClearEmptiesEverything(t *testing.T) {
	c := New()
	c.AddItem(item(1, "Pizza", 10))
	c.AddItem(item(2, "Refresco", 5))
	c.Clear()

	assert.Empty(t, c.Lines())
	assert.Equal(t, 0.0, c.Total())
	assert.Equal(t, 0, c.Count())
}

func TestStoreSharesOneCartPerUser(t *testing.T) {
	s := NewStore()
	a := s.Get(7)
	b := s.Get(7)
	require.Same(t, a, b, "both screens must see the same cart")

	a.AddItem(item(1, "Pizza", 10))
	assert.Equal(t, 1, b.Count())

	s.Drop(7)
	assert.Equal(t, 0, s.Get(7).Count(), "dropped cart starts fresh")
}
