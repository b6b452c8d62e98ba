package refresh

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/and161185/kaspi-console/internal/auth"
	"github.com/and161185/kaspi-console/internal/errs"
	"github.com/and161185/kaspi-console/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// scriptedSource answers each token with a store named after it.
type scriptedSource struct {
	mu       sync.Mutex
	calls    map[model.Tab]int
	tokens   []string
	fail     map[model.Tab]bool
	rejected map[string]bool
}

func newScriptedSource() *scriptedSource {
	return &scriptedSource{
		calls:    make(map[model.Tab]int),
		fail:     make(map[model.Tab]bool),
		rejected: make(map[string]bool),
	}
}

func (s *scriptedSource) Orders(ctx context.Context, tab model.Tab) (model.OrdersResponse, error) {
	token := auth.TokenFromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[tab]++
	s.tokens = append(s.tokens, token)
	if s.rejected[token] {
		return model.OrdersResponse{}, errs.ErrUnauthorized
	}
	if s.fail[tab] {
		return model.OrdersResponse{}, errs.ErrBackend
	}
	return model.OrdersResponse{Stores: []model.Store{{
		StoreName: "Shop of " + token,
		Orders:    []model.Order{{ID: string(tab), Attributes: &model.OrderAttributes{}}},
	}}}, nil
}

func (s *scriptedSource) count(tab model.Tab) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[tab]
}

func (s *scriptedSource) seenTokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tokens...)
}

func (s *scriptedSource) setFail(tab model.Tab, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[tab] = fail
}

func (s *scriptedSource) reject(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejected[token] = true
}

type recordingObserver struct {
	mu        sync.Mutex
	orders    map[string][]string
	forgotten []string
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{orders: make(map[string][]string)}
}

func (o *recordingObserver) Observe(_ context.Context, key string, store model.Store) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, order := range store.Orders {
		o.orders[key] = append(o.orders[key], order.ID)
	}
}

func (o *recordingObserver) Forget(key string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.forgotten = append(o.forgotten, key)
}

func (o *recordingObserver) forgottenKeys() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.forgotten...)
}

func withToken(key, token string) context.Context {
	return auth.WithSession(context.Background(), model.Session{UserID: key}, token)
}

func TestRefreshKeepsLastGoodSnapshot(t *testing.T) {
	source := newScriptedSource()
	observer := newRecordingObserver()
	p := NewPoller(source, observer, time.Minute, zaptest.NewLogger(t).Sugar())
	ctx := withToken("u1", "alice")

	_, ok := p.Snapshot("u1", model.TabCurrent)
	require.False(t, ok)

	resp, err := p.Refresh(ctx, "u1", model.TabCurrent)
	require.NoError(t, err)
	require.Len(t, resp.Stores, 1)
	require.Equal(t, []string{"current"}, observer.orders["u1"])

	source.setFail(model.TabCurrent, true)
	resp, err = p.Refresh(ctx, "u1", model.TabCurrent)
	require.ErrorIs(t, err, errs.ErrBackend)
	require.Len(t, resp.Stores, 1, "previous listing is returned")

	snap, ok := p.Snapshot("u1", model.TabCurrent)
	require.True(t, ok)
	require.Len(t, snap.Response.Stores, 1)
	require.ErrorIs(t, snap.Err, errs.ErrBackend)

	source.setFail(model.TabCurrent, false)
	_, err = p.Refresh(ctx, "u1", model.TabCurrent)
	require.NoError(t, err)
	snap, _ = p.Snapshot("u1", model.TabCurrent)
	require.NoError(t, snap.Err)
}

func TestRefreshFailureWithoutHistory(t *testing.T) {
	source := newScriptedSource()
	source.setFail(model.TabArchive, true)
	p := NewPoller(source, newRecordingObserver(), time.Minute, zaptest.NewLogger(t).Sugar())

	_, err := p.Refresh(withToken("u1", "alice"), "u1", model.TabArchive)
	require.Error(t, err)
	_, ok := p.Snapshot("u1", model.TabArchive)
	require.False(t, ok)
}

func TestSnapshotsAreKeptPerSession(t *testing.T) {
	source := newScriptedSource()
	observer := newRecordingObserver()
	p := NewPoller(source, observer, time.Minute, zaptest.NewLogger(t).Sugar())

	_, err := p.Refresh(withToken("u1", "alice"), "u1", model.TabCurrent)
	require.NoError(t, err)

	source.setFail(model.TabCurrent, true)
	resp, err := p.Refresh(withToken("u2", "bob"), "u2", model.TabCurrent)
	require.Error(t, err)
	require.Empty(t, resp.Stores, "another session's listing is never handed out")

	_, ok := p.Snapshot("u2", model.TabCurrent)
	require.False(t, ok)

	snap, ok := p.Snapshot("u1", model.TabCurrent)
	require.True(t, ok)
	require.Equal(t, "Shop of alice", snap.Response.Stores[0].StoreName)
	require.Empty(t, observer.orders["u2"])
}

func TestRunRefreshesEverySessionWithItsToken(t *testing.T) {
	source := newScriptedSource()
	p := NewPoller(source, newRecordingObserver(), 10*time.Millisecond, zaptest.NewLogger(t).Sugar())

	_, err := p.Refresh(withToken("u1", "alice"), "u1", model.TabCurrent)
	require.NoError(t, err)
	_, err = p.Refresh(withToken("u2", "bob"), "u2", model.TabCurrent)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool {
		for _, tab := range model.Tabs {
			if source.count(tab) < 2 {
				return false
			}
		}
		_, ok := p.Snapshot("u2", model.TabArchive)
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}

	for _, token := range source.seenTokens() {
		require.Contains(t, []string{"alice", "bob"}, token, "background fetches use a session token")
	}
	snap, _ := p.Snapshot("u2", model.TabArchive)
	require.Equal(t, "Shop of bob", snap.Response.Stores[0].StoreName)
}

func TestRunWithoutSessionsFetchesNothing(t *testing.T) {
	source := newScriptedSource()
	p := NewPoller(source, newRecordingObserver(), 5*time.Millisecond, zaptest.NewLogger(t).Sugar())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, p.Run(ctx))

	require.Empty(t, source.seenTokens())
}

func TestRunForgetsRejectedSession(t *testing.T) {
	source := newScriptedSource()
	observer := newRecordingObserver()
	p := NewPoller(source, observer, 10*time.Millisecond, zaptest.NewLogger(t).Sugar())

	_, err := p.Refresh(withToken("u1", "alice"), "u1", model.TabCurrent)
	require.NoError(t, err)
	source.reject("alice")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = p.Run(ctx) }()

	require.Eventually(t, func() bool { return p.Len() == 0 }, 2*time.Second, 5*time.Millisecond)
	require.Contains(t, observer.forgottenKeys(), "u1")
	_, ok := p.Snapshot("u1", model.TabCurrent)
	require.False(t, ok)
}
