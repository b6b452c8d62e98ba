package delivery

import (
	"encoding/json"

	"github.com/and161185/kaspi-console/internal/model"
)

// Shape is the delivery arrangement of an order, resolved once from its attributes.
type Shape int

const (
	KaspiStandard Shape = iota
	KaspiExpress
	SelfLocal
	SelfPickup
	SelfOther
)

var shapeNames = map[Shape]string{
	KaspiStandard: "kaspi_standard",
	KaspiExpress:  "kaspi_express",
	SelfLocal:     "self_local",
	SelfPickup:    "self_pickup",
	SelfOther:     "self_other",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s Shape) Kaspi() bool {
	return s == KaspiStandard || s == KaspiExpress
}

// ShapeOf resolves the delivery shape. The isKaspiDelivery flag decides the
// family; a Kaspi order without its kaspiDelivery payload counts as standard.
func ShapeOf(attrs *model.OrderAttributes) Shape {
	if attrs.IsKaspiDelivery {
		if attrs.KaspiDelivery != nil && attrs.KaspiDelivery.Express {
			return KaspiExpress
		}
		return KaspiStandard
	}

	switch attrs.DeliveryMode {
	case model.DeliveryLocal:
		return SelfLocal
	case model.DeliveryPickup:
		return SelfPickup
	}
	return SelfOther
}
