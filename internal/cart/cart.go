// Package cart holds the in-memory shopping cart. A cart is an ordered
// collection of lines, one per menu item, with quantities always >= 1.
// Carts are never persisted: they live for the customer's session and are
// emptied when a checkout confirms. There is exactly one Cart value per
// customer (see Store), shared by the catalog badge and the checkout view,
// so a removal performed during checkout is immediately visible in the
// badge count and vice versa.
package cart

import (
	"sync"

	"github.com/elcomensal/restaurante-api/internal/model"
)

// Line pairs a menu item snapshot with a positive quantity.
type Line struct {
	Item     model.MenuItem `json:"item"`
	Cantidad int            `json:"cantidad"`
}

// Cart is the per-session cart. All methods are safe for concurrent use;
// the zero value is not usable, construct with New.
type Cart struct {
	mu    sync.Mutex
	lines []Line // insertion-ordered, at most one line per item id
}

func New() *Cart { return &Cart{} }

// AddItem increments the quantity of an existing line for item.ID or
// appends a new line with quantity 1. It always succeeds; quantities are
// unbounded.
func (c *Cart) AddItem(item model.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Cantidad++
			return
		}
	}
	c.lines = append(c.lines, Line{Item: item, Cantidad: 1})
}

// DecrementItem lowers the quantity of the line for itemID by one,
// removing the line entirely when the quantity reaches zero. Unknown ids
// are a no-op. A quantity <= 0 line is never stored.
func (c *Cart) DecrementItem(itemID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Item.ID != itemID {
			continue
		}
		if c.lines[i].Cantidad > 1 {
			c.lines[i].Cantidad--
		} else {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}
}

// Total recomputes the sum of precio*cantidad over the current lines.
// It is never memoized: every call walks the line set so the value can
// not go stale after a mutation. Empty cart totals 0.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, l := range c.lines {
		total += l.Item.Precio * float64(l.Cantidad)
	}
	return total
}

// Count returns the badge count: the sum of all line quantities.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		n += l.Cantidad
	}
	return n
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear empties all lines. Called on successful checkout confirmation.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}
