package storage

import (
	"context"
	"sync"
)

// MemoryStorage keeps code-sent flags for the process lifetime only.
type MemoryStorage struct {
	mu   sync.Mutex
	sent map[string]struct{}
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{sent: make(map[string]struct{})}
}

func (store *MemoryStorage) MarkCodeSent(_ context.Context, orderID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.sent[orderID] = struct{}{}
	return nil
}

func (store *MemoryStorage) IsCodeSent(_ context.Context, orderID string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	_, ok := store.sent[orderID]
	return ok, nil
}

func (store *MemoryStorage) ClearCodeSent(_ context.Context, orderID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.sent, orderID)
	return nil
}
