package fulfillment

import (
	"context"
	"sync"

	"github.com/and161185/kaspi-console/internal/errs"
	"github.com/and161185/kaspi-console/internal/model"
	"go.uber.org/zap"
)

// Registry owns one Machine per order id seen by one operator session.
type Registry struct {
	env *env

	mu       sync.RWMutex
	machines map[string]*Machine
}

func newEnv(backend Backend, waybills Waybills, codes CodeStore, overrides StatusOverrides, logger *zap.SugaredLogger) *env {
	return &env{
		backend:   backend,
		waybills:  waybills,
		codes:     codes,
		overrides: overrides,
		logger:    logger,
	}
}

func newRegistry(e *env) *Registry {
	return &Registry{env: e, machines: make(map[string]*Machine)}
}

func NewRegistry(backend Backend, waybills Waybills, codes CodeStore, overrides StatusOverrides, logger *zap.SugaredLogger) *Registry {
	return newRegistry(newEnv(backend, waybills, codes, overrides, logger))
}

// Sessions hands every operator session its own Registry. Push overrides and
// sent-code flags are keyed by order and stay shared between sessions.
type Sessions struct {
	env *env

	mu         sync.Mutex
	registries map[string]*Registry
}

func NewSessions(backend Backend, waybills Waybills, codes CodeStore, overrides StatusOverrides, logger *zap.SugaredLogger) *Sessions {
	return &Sessions{
		env:        newEnv(backend, waybills, codes, overrides, logger),
		registries: make(map[string]*Registry),
	}
}

// For returns the registry of the session key, creating an empty one.
func (s *Sessions) For(key string) *Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.registries[key]
	if !ok {
		r = newRegistry(s.env)
		s.registries[key] = r
	}
	return r
}

func (s *Sessions) Observe(ctx context.Context, key string, store model.Store) {
	s.For(key).Observe(ctx, store)
}

func (s *Sessions) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registries, key)
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.registries)
}

// Machine returns the machine for order, creating it on first sight.
// A known machine gets the newer order data.
func (r *Registry) Machine(ctx context.Context, storeName string, order model.Order) (*Machine, error) {
	if order.ID == "" || order.Attributes == nil {
		return nil, errs.ErrMalformedOrder
	}

	r.mu.RLock()
	m, ok := r.machines[order.ID]
	r.mu.RUnlock()
	if ok {
		m.refresh(storeName, order)
		return m, nil
	}

	codeSent, err := r.env.codes.IsCodeSent(ctx, order.ID)
	if err != nil {
		r.env.logger.Warnf("order %s: load sent code flag: %v", order.ID, err)
		codeSent = false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.machines[order.ID]; ok {
		m.refresh(storeName, order)
		return m, nil
	}
	m = newMachine(r.env, storeName, order, codeSent)
	r.machines[order.ID] = m
	return m, nil
}

// Observe registers every order of a store listing, skipping malformed ones.
func (r *Registry) Observe(ctx context.Context, store model.Store) {
	for _, order := range store.Orders {
		if _, err := r.Machine(ctx, store.StoreName, order); err != nil {
			r.env.logger.Warnf("store %s: skip order %q: %v", store.StoreName, order.ID, err)
		}
	}
}

func (r *Registry) Lookup(orderID string) (*Machine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.machines[orderID]
	if !ok {
		return nil, errs.ErrOrderNotFound
	}
	return m, nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.machines)
}

// Machines returns the tracked machines in no particular order.
func (r *Registry) Machines() []*Machine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Machine, 0, len(r.machines))
	for _, m := range r.machines {
		out = append(out, m)
	}
	return out
}
