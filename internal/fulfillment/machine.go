// Package fulfillment tracks the merchant-side fulfillment status of each
// order and performs the transitions an operator can trigger.
package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/and161185/kaspi-console/internal/delivery"
	"github.com/and161185/kaspi-console/internal/errs"
	"github.com/and161185/kaspi-console/internal/model"
	"go.uber.org/zap"
)

type Backend interface {
	UpdateCustomStatus(ctx context.Context, orderID string, status model.Status) (model.Status, error)
	UpdateStatus(ctx context.Context, req model.StatusRequest) (model.WaybillResponse, error)
	SendSecurityCode(ctx context.Context, req model.SecurityCodeRequest) error
	CompleteOrder(ctx context.Context, req model.CompleteOrderRequest) (model.CompletedOrder, error)
}

type Waybills interface {
	Retrieve(ctx context.Context, req model.WaybillRequest) (string, error)
	Generate(ctx context.Context, orderID string) (string, error)
}

type CodeStore interface {
	MarkCodeSent(ctx context.Context, orderID string) error
	IsCodeSent(ctx context.Context, orderID string) (bool, error)
	ClearCodeSent(ctx context.Context, orderID string) error
}

type StatusOverrides interface {
	Effective(orderID string, local model.Status) model.Status
}

type Operation string

const (
	OpAdvance  Operation = "advance"
	OpTransfer Operation = "transfer"
	OpSendCode Operation = "send_code"
	OpComplete Operation = "complete"
	OpWaybill  Operation = "waybill"
)

const (
	msgStatusUpdateFailed = "Failed to update the order status"
	msgWaybillFailed      = "Failed to get the waybill"
	msgWaybillNotReady    = "The waybill is not ready yet, try again later"
	msgWaybillGenFailed   = "Failed to generate the waybill"
	msgSendCodeFailed     = "Failed to send the code, try again"
	msgEnterCode          = "Please enter the code"
	msgCompleteFailed     = "Failed to complete the order"
)

type env struct {
	backend   Backend
	waybills  Waybills
	codes     CodeStore
	overrides StatusOverrides
	logger    *zap.SugaredLogger
}

// Machine is the status state of one order. The mutex guards the fields
// below it and is never held while a backend call is outstanding, so push
// updates and reads proceed while a transition is in flight.
type Machine struct {
	env *env
	id  string

	mu        sync.Mutex
	storeName string
	order     model.Order
	shape     delivery.Shape
	local     model.Status
	waybill   string
	codeSent  bool
	message   string
	inFlight  map[Operation]bool
}

// Seed derives the initial status from persisted order attributes.
func Seed(attrs *model.OrderAttributes) model.Status {
	if s := strings.TrimSpace(string(attrs.CustomStatus)); s != "" {
		return model.Status(s).Normalize()
	}
	if attrs.Assembled {
		return model.Packaged
	}
	if attrs.KaspiDelivery != nil && attrs.KaspiDelivery.Waybill != "" {
		return model.OnPackaging
	}
	return model.New
}

func newMachine(e *env, storeName string, order model.Order, codeSent bool) *Machine {
	return &Machine{
		env:       e,
		id:        order.ID,
		storeName: storeName,
		order:     order,
		shape:     delivery.ShapeOf(order.Attributes),
		local:     Seed(order.Attributes),
		waybill:   order.Waybill(),
		codeSent:  codeSent,
		inFlight:  make(map[Operation]bool),
	}
}

func (m *Machine) ID() string {
	return m.id
}

func (m *Machine) StoreName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeName
}

func (m *Machine) Order() model.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order
}

// LocalStatus is the status this process last committed for the order.
func (m *Machine) LocalStatus() model.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.local
}

// Status is the effective status: a pushed status wins over the local one.
func (m *Machine) Status() model.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.effectiveLocked()
}

func (m *Machine) Waybill() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waybill
}

func (m *Machine) Message() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.message
}

func (m *Machine) ShowCodeInput() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codeSent
}

func (m *Machine) InFlight(op Operation) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight[op]
}

func (m *Machine) effectiveLocked() model.Status {
	return m.env.overrides.Effective(m.id, m.local)
}

// refresh takes newer order data from the backend. The local status stays
// as is and a known waybill link is never replaced by an empty one.
func (m *Machine) refresh(storeName string, order model.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeName = storeName
	m.order = order
	m.shape = delivery.ShapeOf(order.Attributes)
	if link := order.Waybill(); link != "" {
		m.waybill = link
	}
}

func (m *Machine) setWaybillLocked(link string) {
	if link != "" {
		m.waybill = link
	}
}

func (m *Machine) transferredLocked() bool {
	if m.local == model.Transferred || m.effectiveLocked() == model.Transferred {
		return true
	}
	return m.shape == delivery.KaspiExpress && m.order.Attributes.Assembled
}

// begin runs the gates shared by every operation: permission, state
// precondition and the per-operation in-flight guard.
func (m *Machine) begin(op Operation, perms Permissions, required model.Status, allowed func(effective model.Status) bool) error {
	if !perms.Allows(required) {
		return errs.ErrNotPermitted
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !allowed(m.effectiveLocked()) {
		return errs.ErrActionUnavailable
	}
	if m.inFlight[op] {
		return errs.ErrOperationInFlight
	}
	m.inFlight[op] = true
	m.message = ""
	return nil
}

func (m *Machine) finish(op Operation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inFlight, op)
}

func (m *Machine) fail(msg string, err error) error {
	m.mu.Lock()
	m.message = msg
	m.mu.Unlock()

	if !errors.Is(err, errs.ErrEmptySecurityCode) {
		m.env.logger.Errorf("order %s: %v", m.id, err)
	}
	return err
}

func (m *Machine) snapshot() (model.Order, string, delivery.Shape) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order, m.storeName, m.shape
}

func nextStatus(current model.Status) (model.Status, bool) {
	switch current {
	case model.New:
		return model.OnShipment, true
	case model.OnShipment:
		return model.OnPackaging, true
	case model.OnPackaging:
		return model.Packaged, true
	}
	return "", false
}

// Advance moves the order one step along NEW → ON_SHIPMENT → ON_PACKAGING →
// PACKAGED. For Kaspi delivery the ON_PACKAGING step waits for the waybill
// and commits the status only after the link is stored.
func (m *Machine) Advance(ctx context.Context, perms Permissions) error {
	m.mu.Lock()
	current := m.effectiveLocked()
	preOrder := m.order.Attributes.PreOrder
	m.mu.Unlock()

	target, ok := nextStatus(current)
	if !ok || (current == model.New && preOrder) {
		return errs.ErrActionUnavailable
	}

	same := func(s model.Status) bool { return s == current }
	if err := m.begin(OpAdvance, perms, target, same); err != nil {
		return err
	}
	defer m.finish(OpAdvance)

	order, storeName, shape := m.snapshot()
	if target == model.OnPackaging && shape.Kaspi() {
		link, err := m.env.waybills.Retrieve(ctx, model.WaybillRequest{
			OrderID:   order.ID,
			StoreName: storeName,
			OrderCode: order.Attributes.Code,
		})
		if err != nil {
			if errors.Is(err, errs.ErrWaybillNotReady) {
				return m.fail(msgWaybillNotReady, err)
			}
			return m.fail(msgWaybillFailed, err)
		}

		m.mu.Lock()
		m.setWaybillLocked(link)
		m.mu.Unlock()
	}

	return m.commitStatus(ctx, order.ID, target)
}

func (m *Machine) commitStatus(ctx context.Context, orderID string, target model.Status) error {
	got, err := m.env.backend.UpdateCustomStatus(ctx, orderID, target)
	if err != nil {
		return m.fail(msgStatusUpdateFailed, fmt.Errorf("update status of order %s to %s: %w", orderID, target, err))
	}
	if got.Normalize() != target {
		return m.fail(msgStatusUpdateFailed, fmt.Errorf("update status of order %s to %s: backend answered %q: %w", orderID, target, got, errs.ErrBackend))
	}

	m.mu.Lock()
	m.local = target
	m.mu.Unlock()

	m.env.logger.Infof("order %s moved to %s", orderID, target)
	return nil
}

// SendForTransfer hands a packaged express order to the courier. Once the
// order is transferred, repeating the call does nothing.
func (m *Machine) SendForTransfer(ctx context.Context, perms Permissions) error {
	m.mu.Lock()
	done := m.transferredLocked()
	m.mu.Unlock()
	if done {
		return nil
	}

	order, storeName, shape := m.snapshot()
	packaged := func(s model.Status) bool { return shape == delivery.KaspiExpress && s == model.Packaged }
	if err := m.begin(OpTransfer, perms, model.OnDelivery, packaged); err != nil {
		return err
	}
	defer m.finish(OpTransfer)

	resp, err := m.env.backend.UpdateStatus(ctx, model.StatusRequest{OrderID: order.ID, StoreName: storeName})
	if err != nil {
		return m.fail(msgStatusUpdateFailed, fmt.Errorf("send order %s for transfer: %w", order.ID, err))
	}

	m.mu.Lock()
	m.setWaybillLocked(resp.Waybill)
	m.local = model.Transferred
	m.mu.Unlock()

	m.env.logger.Infof("order %s sent for transfer", order.ID)
	return nil
}

func selfHandover(shape delivery.Shape) bool {
	return shape == delivery.SelfLocal || shape == delivery.SelfPickup
}

func awaitingHandover(s model.Status) bool {
	return s == model.Packaged || s == model.CodeSent
}

// SendCode asks the backend to text the customer a confirmation code. It may
// be repeated; every success leaves the code input shown.
func (m *Machine) SendCode(ctx context.Context, perms Permissions) error {
	order, storeName, shape := m.snapshot()
	ready := func(s model.Status) bool { return selfHandover(shape) && awaitingHandover(s) }
	if err := m.begin(OpSendCode, perms, model.OnDelivery, ready); err != nil {
		return err
	}
	defer m.finish(OpSendCode)

	err := m.env.backend.SendSecurityCode(ctx, model.SecurityCodeRequest{
		OrderID:   order.ID,
		StoreName: storeName,
		OrderCode: order.Attributes.Code,
	})
	if err != nil {
		return m.fail(msgSendCodeFailed, fmt.Errorf("send code for order %s: %w", order.ID, err))
	}

	if err := m.env.codes.MarkCodeSent(ctx, order.ID); err != nil {
		m.env.logger.Warnf("order %s: remember sent code: %v", order.ID, err)
	}

	m.mu.Lock()
	m.codeSent = true
	m.mu.Unlock()
	return nil
}

// CompleteOrder confirms the hand-over with the code the customer received.
// It is available only after a code was sent; an empty code is rejected
// before any backend call.
func (m *Machine) CompleteOrder(ctx context.Context, perms Permissions, code string) error {
	order, storeName, shape := m.snapshot()
	// called by begin with m.mu held
	ready := func(s model.Status) bool {
		return selfHandover(shape) && awaitingHandover(s) && (m.codeSent || s == model.CodeSent)
	}
	if err := m.begin(OpComplete, perms, model.OnDelivery, ready); err != nil {
		return err
	}
	defer m.finish(OpComplete)

	code = strings.TrimSpace(code)
	if code == "" {
		return m.fail(msgEnterCode, errs.ErrEmptySecurityCode)
	}

	_, err := m.env.backend.CompleteOrder(ctx, model.CompleteOrderRequest{
		OrderID:      order.ID,
		StoreName:    storeName,
		OrderCode:    order.Attributes.Code,
		SecurityCode: code,
	})
	if err != nil {
		return m.fail(msgCompleteFailed, fmt.Errorf("complete order %s: %w", order.ID, err))
	}

	if err := m.env.codes.ClearCodeSent(ctx, order.ID); err != nil {
		m.env.logger.Warnf("order %s: forget sent code: %v", order.ID, err)
	}

	m.mu.Lock()
	m.codeSent = false
	m.local = model.Delivered
	m.mu.Unlock()

	m.env.logger.Infof("order %s delivered", order.ID)
	return nil
}

// AcquireWaybill returns the order's waybill link, obtaining it first when
// missing: self-delivery orders get a generated document, Kaspi orders past
// ON_SHIPMENT poll the marketplace.
func (m *Machine) AcquireWaybill(ctx context.Context) (string, error) {
	m.mu.Lock()
	link := m.waybill
	m.mu.Unlock()
	if link != "" {
		return link, nil
	}

	order, storeName, shape := m.snapshot()
	available := func(s model.Status) bool { return waybillObtainable(order, shape, s) }
	if err := m.begin(OpWaybill, Permissions{}, "", available); err != nil {
		return "", err
	}
	defer m.finish(OpWaybill)

	var err error
	if shape == delivery.SelfLocal {
		link, err = m.env.waybills.Generate(ctx, order.ID)
		if err != nil {
			return "", m.fail(msgWaybillGenFailed, err)
		}
	} else {
		link, err = m.env.waybills.Retrieve(ctx, model.WaybillRequest{
			OrderID:   order.ID,
			StoreName: storeName,
			OrderCode: order.Attributes.Code,
		})
		if err != nil {
			if errors.Is(err, errs.ErrWaybillNotReady) {
				return "", m.fail(msgWaybillNotReady, err)
			}
			return "", m.fail(msgWaybillFailed, err)
		}
	}

	m.mu.Lock()
	m.setWaybillLocked(link)
	m.mu.Unlock()
	return link, nil
}

func waybillObtainable(order model.Order, shape delivery.Shape, effective model.Status) bool {
	if delivery.SignRequired(order.Attributes) {
		return false
	}
	switch shape {
	case delivery.SelfLocal:
		return true
	case delivery.KaspiStandard, delivery.KaspiExpress:
		return effective.Rank() >= model.OnPackaging.Rank()
	}
	return false
}
