package fulfillment

import (
	"strings"

	"github.com/and161185/kaspi-console/internal/model"
)

// Permissions is the set of statuses an operator may move orders into.
// A transition is gated by the status it produces (or, for the final
// hand-over steps, by ON_DELIVERY).
type Permissions struct {
	allowed map[model.Status]struct{}
}

func NewPermissions(statuses []string) Permissions {
	p := Permissions{allowed: make(map[model.Status]struct{}, len(statuses))}
	for _, s := range statuses {
		if s = strings.TrimSpace(s); s != "" {
			p.allowed[model.Status(s)] = struct{}{}
		}
	}
	return p
}

// PermissionsFor reads the allowed statuses of a session.
func PermissionsFor(session model.Session) Permissions {
	return NewPermissions(session.AllowedStatuses)
}

// Allows reports whether required is granted; an empty requirement is always granted.
func (p Permissions) Allows(required model.Status) bool {
	if required == "" {
		return true
	}
	_, ok := p.allowed[required]
	return ok
}
