// Package refresh polls the four order collections for every operator
// session and keeps the latest good listing of each.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/and161185/kaspi-console/internal/auth"
	"github.com/and161185/kaspi-console/internal/errs"
	"github.com/and161185/kaspi-console/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultInterval = 60 * time.Second

type Source interface {
	Orders(ctx context.Context, tab model.Tab) (model.OrdersResponse, error)
}

// Observer learns about every order in a listing fetched for a session.
type Observer interface {
	Observe(ctx context.Context, key string, store model.Store)
	Forget(key string)
}

type Snapshot struct {
	Response  model.OrdersResponse
	FetchedAt time.Time
	Err       error
}

// session is what one operator fetched with their own token.
type session struct {
	token     string
	snapshots map[model.Tab]Snapshot
}

type Poller struct {
	source   Source
	observer Observer
	interval time.Duration
	logger   *zap.SugaredLogger

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewPoller(source Source, observer Observer, interval time.Duration, logger *zap.SugaredLogger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		source:   source,
		observer: observer,
		interval: interval,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

func (p *Poller) sessionLocked(key string) *session {
	s, ok := p.sessions[key]
	if !ok {
		s = &session{snapshots: make(map[model.Tab]Snapshot)}
		p.sessions[key] = s
	}
	return s
}

// Refresh fetches one tab for the session key with the credentials carried
// by ctx. A failed fetch keeps the session's previous listing and records the
// error next to it.
func (p *Poller) Refresh(ctx context.Context, key string, tab model.Tab) (model.OrdersResponse, error) {
	resp, err := p.source.Orders(ctx, tab)

	p.mu.Lock()
	if err != nil {
		// only sessions with a successful fetch are tracked
		var snap Snapshot
		if s, ok := p.sessions[key]; ok {
			snap = s.snapshots[tab]
			snap.Err = err
			s.snapshots[tab] = snap
		}
		p.mu.Unlock()
		return snap.Response, fmt.Errorf("refresh %s orders: %w", tab, err)
	}
	s := p.sessionLocked(key)
	if token := auth.TokenFromContext(ctx); token != "" {
		s.token = token
	}
	s.snapshots[tab] = Snapshot{Response: resp, FetchedAt: time.Now()}
	p.mu.Unlock()

	for _, store := range resp.Stores {
		p.observer.Observe(ctx, key, store)
	}
	return resp, nil
}

// Snapshot returns the last listing fetched for the session key.
func (p *Poller) Snapshot(key string, tab model.Tab) (Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.sessions[key]
	if !ok {
		return Snapshot{}, false
	}
	snap := s.snapshots[tab]
	return snap, !snap.FetchedAt.IsZero()
}

// Forget drops everything held for the session key.
func (p *Poller) Forget(key string) {
	p.mu.Lock()
	delete(p.sessions, key)
	p.mu.Unlock()
	p.observer.Forget(key)
}

func (p *Poller) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.sessions)
}

// Run polls every tab on its own schedule until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, tab := range model.Tabs {
		g.Go(func() error {
			p.poll(ctx, tab)
			return nil
		})
	}
	return g.Wait()
}

func (p *Poller) poll(ctx context.Context, tab model.Tab) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		p.refreshSessions(ctx, tab)
	}
}

type credentials struct {
	key   string
	token string
}

// refreshSessions refetches tab for every session that supplied a token. A
// session whose token the backend no longer accepts is dropped.
func (p *Poller) refreshSessions(ctx context.Context, tab model.Tab) {
	p.mu.RLock()
	creds := make([]credentials, 0, len(p.sessions))
	for key, s := range p.sessions {
		if s.token != "" {
			creds = append(creds, credentials{key: key, token: s.token})
		}
	}
	p.mu.RUnlock()

	for _, c := range creds {
		sctx := auth.WithSession(ctx, model.Session{UserID: c.key}, c.token)
		_, err := p.Refresh(sctx, c.key, tab)
		switch {
		case err == nil, ctx.Err() != nil:
		case errors.Is(err, errs.ErrUnauthorized):
			p.logger.Infof("session %s: token rejected, forgetting it", c.key)
			p.Forget(c.key)
		default:
			p.logger.Warnf("session %s: %v", c.key, err)
		}
	}
}
