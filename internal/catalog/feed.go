// Package catalog implements the live menu feed. A view that wants to
// stay current subscribes and receives full menu snapshots whenever an
// admin mutation republishes the collection; the subscription handle is a
// lifecycle-scoped resource and the owning view's teardown must call
// Cancel so nothing is delivered to a torn-down view.
package catalog

import (
	"sync"

	"github.com/elcomensal/restaurante-api/internal/model"
)

// Feed fans menu snapshots out to active subscriptions.
type Feed struct {
	mu     sync.Mutex
	subs   map[uint64]*Subscription
	nextID uint64
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[uint64]*Subscription)}
}

// Subscription is one live view of the menu. Read snapshots from C;
// call Cancel exactly when the view is torn down. After Cancel, C is
// closed and nothing further is delivered.
type Subscription struct {
	C    <-chan []model.MenuItem
	id   uint64
	feed *Feed
	ch   chan []model.MenuItem
	once sync.Once
}

// Cancel releases the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.feed.mu.Lock()
		delete(s.feed.subs, s.id)
		close(s.ch)
		s.feed.mu.Unlock()
	})
}

// Subscribe registers a new live view. The channel is buffered so a slow
// consumer delays no one; when the buffer is full the stale snapshot is
// dropped in favor of the newer one.
func (f *Feed) Subscribe() *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ch := make(chan []model.MenuItem, 1)
	s := &Subscription{C: ch, id: f.nextID, feed: f, ch: ch}
	f.subs[s.id] = s
	return s
}

// Subscribers reports the number of active subscriptions.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Publish delivers a fresh snapshot to every active subscription.
// Cancelled subscriptions are gone from the map, so a publish that races
// a teardown is simply discarded for that view.
func (f *Feed) Publish(items []model.MenuItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subs {
		select {
		case s.ch <- items:
		default:
			// buffer full: replace the stale snapshot with the new one
			select {
			case <-s.ch:
			default:
			}
			select {
			case s.ch <- items:
			default:
			}
		}
	}
}
