package waybill

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/and161185/kaspi-console/internal/errs"
	"github.com/and161185/kaspi-console/internal/model"
	"github.com/redis/go-redis/v9"
)

const DocumentTTL = 24 * time.Hour

type memoryDocument struct {
	doc     model.Document
	expires time.Time
}

// MemoryStore keeps documents for DocumentTTL like RedisStore does.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]memoryDocument
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]memoryDocument), ttl: DocumentTTL, now: time.Now}
}

func (s *MemoryStore) Put(_ context.Context, key string, doc model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, d := range s.docs {
		if !now.Before(d.expires) {
			delete(s.docs, k)
		}
	}
	s.docs[key] = memoryDocument{doc: doc, expires: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[key]
	if !ok {
		return model.Document{}, errs.ErrDocumentNotFound
	}
	if !s.now().Before(d.expires) {
		delete(s.docs, key)
		return model.Document{}, errs.ErrDocumentNotFound
	}
	return d.doc, nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// RedisStore keeps generated documents for DocumentTTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{rdb: rdb, ttl: DocumentTTL}, nil
}

func documentKey(key string) string {
	return fmt.Sprintf("waybill:%s", key)
}

func (s *RedisStore) Put(ctx context.Context, key string, doc model.Document) error {
	k := documentKey(key)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k, "content_type", doc.ContentType, "body", doc.Body)
		pipe.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store document: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (model.Document, error) {
	fields, err := s.rdb.HGetAll(ctx, documentKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Document{}, errs.ErrDocumentNotFound
		}
		return model.Document{}, fmt.Errorf("load document: %w", err)
	}
	body, ok := fields["body"]
	if !ok {
		return model.Document{}, errs.ErrDocumentNotFound
	}
	return model.Document{ContentType: fields["content_type"], Body: []byte(body)}, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
