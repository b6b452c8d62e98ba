// Package comments counts pushed comments the operator has not read yet.
package comments

import (
	"sync"

	"github.com/and161185/kaspi-console/internal/model"
)

type orderComments struct {
	seen   map[string]struct{}
	unread int
}

// Tracker keeps per-order unread counters fed by newComment events. A comment
// id is counted once no matter how often it is delivered.
type Tracker struct {
	mu     sync.Mutex
	orders map[string]*orderComments
}

func NewTracker() *Tracker {
	return &Tracker{orders: make(map[string]*orderComments)}
}

func (t *Tracker) Notify(event model.CommentEvent) {
	if event.OrderKaspiID == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	oc, ok := t.orders[event.OrderKaspiID]
	if !ok {
		oc = &orderComments{seen: make(map[string]struct{})}
		t.orders[event.OrderKaspiID] = oc
	}
	if id := event.Comment.ID; id != "" {
		if _, dup := oc.seen[id]; dup {
			return
		}
		oc.seen[id] = struct{}{}
	}
	if !event.Comment.IsRead {
		oc.unread++
	}
}

func (t *Tracker) Count(orderID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if oc, ok := t.orders[orderID]; ok {
		return oc.unread
	}
	return 0
}

// Set replaces the counter with the backend's figure.
func (t *Tracker) Set(orderID string, unread int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	oc, ok := t.orders[orderID]
	if !ok {
		oc = &orderComments{seen: make(map[string]struct{})}
		t.orders[orderID] = oc
	}
	oc.unread = unread
}

func (t *Tracker) Reset(orderID string) {
	t.Set(orderID, 0)
}
