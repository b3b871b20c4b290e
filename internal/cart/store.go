package cart

import "sync"

// Store owns one Cart per customer. Every handler that touches a user's
// cart goes through the same Store instance, so both the menu screen and
// the checkout screen mutate the same Cart value instead of diverging
// copies. Carts are dropped (not persisted) on logout or restart.
type Store struct {
	mu    sync.Mutex
	carts map[uint64]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[uint64]*Cart)}
}

// Get returns the cart for userID, creating an empty one on first use.
func (s *Store) Get(userID uint64) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		c = New()
		s.carts[userID] = c
	}
	return c
}

// Drop forgets a user's cart. Used when the session ends.
func (s *Store) Drop(userID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
