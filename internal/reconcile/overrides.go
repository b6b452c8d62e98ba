// Package reconcile holds statuses pushed by the backend and merges them with
// locally tracked statuses.
package reconcile

import (
	"fmt"
	"sync"

	"github.com/and161185/kaspi-console/internal/errs"
	"github.com/and161185/kaspi-console/internal/model"
)

type Override struct {
	Status    model.Status
	Timestamp model.PushTimestamp
}

// Store is the session-wide push override map. Each order keeps only its
// latest pushed status; entries are never pruned.
type Store struct {
	mu        sync.RWMutex
	overrides map[string]Override
}

func NewStore() *Store {
	return &Store{overrides: make(map[string]Override)}
}

// Apply records update in arrival order. The timestamp is kept but not used
// for ordering: a later arrival always replaces an earlier one.
func (s *Store) Apply(update model.OrderStatusUpdate) error {
	if update.OrderID == "" {
		return fmt.Errorf("apply status update: empty order id")
	}
	status := update.NewStatus.Normalize()
	if !status.Valid() {
		return fmt.Errorf("apply status update %q: %w", update.NewStatus, errs.ErrUnknownStatus)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[update.OrderID] = Override{Status: status, Timestamp: update.Timestamp}
	return nil
}

func (s *Store) Lookup(orderID string) (Override, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.overrides[orderID]
	return o, ok
}

// Effective returns the pushed status when one exists, else local.
func (s *Store) Effective(orderID string, local model.Status) model.Status {
	if o, ok := s.Lookup(orderID); ok {
		return o.Status
	}
	return local
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.overrides)
}
