package fulfillment

import (
	"time"

	"github.com/and161185/kaspi-console/internal/delivery"
	"github.com/and161185/kaspi-console/internal/model"
)

type ActionKind string

const (
	ActionAdvance     ActionKind = "advance"
	ActionTransfer    ActionKind = "transfer"
	ActionTransferred ActionKind = "transferred"
	ActionSendCode    ActionKind = "send_code"
	ActionComplete    ActionKind = "complete"
)

// Action is a control the UI may render. A disabled action is inert.
type Action struct {
	Kind     ActionKind   `json:"kind"`
	Target   model.Status `json:"target,omitempty"`
	Required model.Status `json:"requiredStatus,omitempty"`
	Enabled  bool         `json:"enabled"`
	Pending  bool         `json:"pending,omitempty"`
}

type WaybillControlKind string

const (
	WaybillHidden   WaybillControlKind = "hidden"
	WaybillOpen     WaybillControlKind = "open"
	WaybillGenerate WaybillControlKind = "generate"
	WaybillRetrieve WaybillControlKind = "retrieve"
	WaybillAwaiting WaybillControlKind = "awaiting"
)

type WaybillControl struct {
	Kind    WaybillControlKind `json:"kind"`
	Link    string             `json:"link,omitempty"`
	Enabled bool               `json:"enabled"`
	Pending bool               `json:"pending,omitempty"`
}

type OrderView struct {
	Order          model.Order             `json:"order"`
	StoreName      string                  `json:"storeName"`
	Classification delivery.Classification `json:"classification"`
	LocalStatus    model.Status            `json:"localStatus"`
	Status         model.Status            `json:"status"`
	Stage          model.Status            `json:"stage"`
	Progress       int                     `json:"progress"`
	Actions        []Action                `json:"actions"`
	Waybill        WaybillControl          `json:"waybill"`
	ShowCodeInput  bool                    `json:"showCodeInput"`
	Error          string                  `json:"error,omitempty"`
}

// View renders the order's current decisions for the operator holding perms.
func (m *Machine) View(perms Permissions, now time.Time, returned bool) OrderView {
	m.mu.Lock()
	defer m.mu.Unlock()

	classify := delivery.Classify
	if returned {
		classify = delivery.ClassifyReturned
	}
	// attributes are present for every tracked order
	c, _ := classify(m.order, now)

	effective := m.effectiveLocked()
	return OrderView{
		Order:          m.order,
		StoreName:      m.storeName,
		Classification: c,
		LocalStatus:    m.local,
		Status:         effective,
		Stage:          m.stageLocked(effective),
		Progress:       effective.Rank(),
		Actions:        m.actionsLocked(perms, effective),
		Waybill:        m.waybillControlLocked(effective),
		ShowCodeInput:  m.codeSent,
		Error:          m.message,
	}
}

// Actions lists the controls available in the current effective status.
func (m *Machine) Actions(perms Permissions) []Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.actionsLocked(perms, m.effectiveLocked())
}

func (m *Machine) stageLocked(effective model.Status) model.Status {
	switch {
	case effective == model.Packaged && selfHandover(m.shape) && m.codeSent:
		return model.CodeSent
	case effective == model.Packaged && m.shape == delivery.KaspiExpress && m.transferredLocked():
		return model.Transferred
	}
	return effective
}

func (m *Machine) gated(kind ActionKind, op Operation, target, required model.Status, perms Permissions) Action {
	pending := m.inFlight[op]
	return Action{
		Kind:     kind,
		Target:   target,
		Required: required,
		Enabled:  perms.Allows(required) && !pending,
		Pending:  pending,
	}
}

func (m *Machine) actionsLocked(perms Permissions, effective model.Status) []Action {
	switch effective {
	case model.New:
		if m.order.Attributes.PreOrder {
			return nil
		}
		return []Action{m.gated(ActionAdvance, OpAdvance, model.OnShipment, model.OnShipment, perms)}
	case model.OnShipment:
		return []Action{m.gated(ActionAdvance, OpAdvance, model.OnPackaging, model.OnPackaging, perms)}
	case model.OnPackaging:
		return []Action{m.gated(ActionAdvance, OpAdvance, model.Packaged, model.Packaged, perms)}
	case model.Packaged, model.CodeSent:
		switch {
		case m.shape == delivery.KaspiExpress:
			if m.transferredLocked() {
				return []Action{{Kind: ActionTransferred, Target: model.Transferred}}
			}
			return []Action{m.gated(ActionTransfer, OpTransfer, model.Transferred, model.OnDelivery, perms)}
		case selfHandover(m.shape):
			if m.codeSent || effective == model.CodeSent {
				return []Action{m.gated(ActionComplete, OpComplete, model.Delivered, model.OnDelivery, perms)}
			}
			return []Action{m.gated(ActionSendCode, OpSendCode, model.CodeSent, model.OnDelivery, perms)}
		}
	case model.Transferred:
		if m.shape == delivery.KaspiExpress {
			return []Action{{Kind: ActionTransferred, Target: model.Transferred}}
		}
	}
	return nil
}

func (m *Machine) waybillControlLocked(effective model.Status) WaybillControl {
	if delivery.SignRequired(m.order.Attributes) {
		return WaybillControl{Kind: WaybillHidden}
	}
	if m.waybill != "" {
		return WaybillControl{Kind: WaybillOpen, Link: m.waybill, Enabled: true}
	}

	pending := m.inFlight[OpWaybill]
	switch m.shape {
	case delivery.SelfLocal:
		return WaybillControl{Kind: WaybillGenerate, Enabled: !pending, Pending: pending}
	case delivery.KaspiStandard, delivery.KaspiExpress:
		if waybillObtainable(m.order, m.shape, effective) {
			return WaybillControl{Kind: WaybillRetrieve, Enabled: !pending, Pending: pending}
		}
		// fetched by the ON_SHIPMENT → ON_PACKAGING step
		return WaybillControl{Kind: WaybillAwaiting, Pending: m.inFlight[OpAdvance]}
	}
	return WaybillControl{Kind: WaybillHidden}
}
