// Package delivery decides which delivery lane and label an order belongs to.
package delivery

import (
	"time"

	"github.com/and161185/kaspi-console/internal/errs"
	"github.com/and161185/kaspi-console/internal/model"
)

type Lane string

const (
	Today    Lane = "today"
	Tomorrow Lane = "tomorrow"
)

type Tag string

const (
	TagNone                Tag = ""
	TagKaspiDelivery       Tag = "KaspiDelivery"
	TagExpress             Tag = "Express"
	TagPickup              Tag = "Pickup"
	TagLocalCourier        Tag = "LocalCourier"
	TagReturnedToWarehouse Tag = "ReturnedToWarehouse"
	TagEnRouteToWarehouse  Tag = "EnRouteToWarehouse"
)

const (
	cutoffHour   = 13
	cutoffMinute = 1
)

type Classification struct {
	Lane  Lane  `json:"lane"`
	Tag   Tag   `json:"tag"`
	Shape Shape `json:"shape"`
}

// Cutoff returns 13:01:00.000 of now's calendar date in now's location.
func Cutoff(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), cutoffHour, cutoffMinute, 0, 0, now.Location())
}

func Classify(order model.Order, now time.Time) (Classification, error) {
	if order.Attributes == nil {
		return Classification{}, errs.ErrMalformedOrder
	}
	return classifyAttributes(order.Attributes, now), nil
}

func classifyAttributes(attrs *model.OrderAttributes, now time.Time) Classification {
	shape := ShapeOf(attrs)
	c := Classification{Lane: Today, Shape: shape}

	switch shape {
	case SelfPickup:
		c.Tag = TagPickup
	case SelfLocal:
		c.Tag = TagLocalCourier
	case SelfOther:
		c.Tag = TagNone
	case KaspiExpress:
		c.Tag = TagExpress
	case KaspiStandard:
		c.Tag = TagKaspiDelivery
		// orders created exactly at the cutoff go to tomorrow
		if attrs.CreationDate >= Cutoff(now).UnixMilli() {
			c.Lane = Tomorrow
		}
	}
	return c
}

// ClassifyReturned is Classify for the returned-orders view: Kaspi orders are
// labelled by whether the parcel already reached the warehouse.
func ClassifyReturned(order model.Order, now time.Time) (Classification, error) {
	c, err := Classify(order, now)
	if err != nil {
		return c, err
	}
	if !c.Shape.Kaspi() {
		return c, nil
	}

	returned := false
	if kd := order.Attributes.KaspiDelivery; kd != nil && kd.ReturnedToWarehouse != nil {
		returned = *kd.ReturnedToWarehouse
	}
	if returned {
		c.Tag = TagReturnedToWarehouse
	} else {
		c.Tag = TagEnRouteToWarehouse
	}
	return c, nil
}

// Partition splits orders into lanes, dropping orders without attributes.
func Partition(orders []model.Order, now time.Time) (today, tomorrow []model.Order) {
	for _, order := range orders {
		c, err := Classify(order, now)
		if err != nil {
			continue
		}
		if c.Lane == Today {
			today = append(today, order)
		} else {
			tomorrow = append(tomorrow, order)
		}
	}
	return today, tomorrow
}

// SignRequired orders get no waybill controls at all.
func SignRequired(attrs *model.OrderAttributes) bool {
	return attrs != nil && attrs.State == model.StateSignRequired
}
