// Package waybill obtains courier waybills: retrieval polls the marketplace
// until it publishes a link, generation synthesises a self-delivery document once.
package waybill

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/and161185/kaspi-console/internal/errs"
	"github.com/and161185/kaspi-console/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultMaxAttempts = 10
	DefaultRetryDelay  = 3 * time.Second

	// DocumentPath is where the console serves generated documents.
	DocumentPath = "/api/waybills/"
)

type Backend interface {
	UpdateStatusWithWaybill(ctx context.Context, req model.WaybillRequest) (model.WaybillResponse, error)
	GenerateSelfDeliveryWaybill(ctx context.Context, orderID string) (model.Document, error)
}

type DocumentStore interface {
	Put(ctx context.Context, key string, doc model.Document) error
	Get(ctx context.Context, key string) (model.Document, error)
}

type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type Acquirer struct {
	backend     Backend
	docs        DocumentStore
	clock       Clock
	logger      *zap.SugaredLogger
	maxAttempts int
	retryDelay  time.Duration
	linkPrefix  string
}

type Option func(*Acquirer)

func WithClock(clock Clock) Option {
	return func(a *Acquirer) { a.clock = clock }
}

func WithMaxAttempts(n int) Option {
	return func(a *Acquirer) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

func WithRetryDelay(d time.Duration) Option {
	return func(a *Acquirer) { a.retryDelay = d }
}

// WithPublicURL sets the externally reachable console address used in generated links.
func WithPublicURL(publicURL string) Option {
	return func(a *Acquirer) { a.linkPrefix = strings.TrimRight(publicURL, "/") }
}

func NewAcquirer(backend Backend, docs DocumentStore, logger *zap.SugaredLogger, opts ...Option) *Acquirer {
	a := &Acquirer{
		backend:     backend,
		docs:        docs,
		clock:       realClock{},
		logger:      logger,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Retrieve asks the marketplace for the order's waybill until the link shows
// up. It sends at most maxAttempts requests and sleeps only between them.
func (a *Acquirer) Retrieve(ctx context.Context, req model.WaybillRequest) (string, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		resp, err := a.backend.UpdateStatusWithWaybill(ctx, req)
		if err != nil {
			return "", fmt.Errorf("request waybill for order %s (attempt %d): %w", req.OrderID, attempt, err)
		}
		if resp.Waybill != "" {
			a.logger.Infof("waybill for order %s ready after %d attempt(s)", req.OrderID, attempt)
			return resp.Waybill, nil
		}
		if attempt == a.maxAttempts {
			break
		}
		if err := a.clock.Sleep(ctx, a.retryDelay); err != nil {
			return "", fmt.Errorf("wait for waybill of order %s: %w", req.OrderID, err)
		}
	}

	a.logger.Warnf("waybill for order %s not ready after %d attempts", req.OrderID, a.maxAttempts)
	return "", fmt.Errorf("order %s after %d attempts: %w", req.OrderID, a.maxAttempts, errs.ErrWaybillNotReady)
}

// Generate builds a self-delivery waybill and returns a link to the stored copy.
func (a *Acquirer) Generate(ctx context.Context, orderID string) (string, error) {
	doc, err := a.backend.GenerateSelfDeliveryWaybill(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("generate waybill for order %s: %w", orderID, err)
	}
	if len(doc.Body) == 0 {
		return "", fmt.Errorf("generate waybill for order %s: empty document: %w", orderID, errs.ErrBackend)
	}
	if doc.ContentType == "" {
		doc.ContentType = "application/pdf"
	}

	key := uuid.NewString()
	if err := a.docs.Put(ctx, key, doc); err != nil {
		return "", fmt.Errorf("store waybill for order %s: %w", orderID, err)
	}

	return a.Link(key), nil
}

func (a *Acquirer) Link(key string) string {
	return a.linkPrefix + DocumentPath + key
}

func (a *Acquirer) Document(ctx context.Context, key string) (model.Document, error) {
	return a.docs.Get(ctx, key)
}
