// Package aggregate folds order collections into navigation badge counts.
package aggregate

import (
	"time"

	"github.com/and161185/kaspi-console/internal/delivery"
	"github.com/and161185/kaspi-console/internal/model"
)

// Counts always satisfies SameDay+NextDay == Total.
type Counts struct {
	SameDay int `json:"sameDayCount"`
	NextDay int `json:"nextDayCount"`
	Total   int `json:"totalCount"`
}

func (c Counts) add(other Counts) Counts {
	c.SameDay += other.SameDay
	c.Total += other.Total
	c.NextDay = c.Total - c.SameDay
	return c
}

// Orders counts well-formed orders; orders without attributes are skipped.
func Orders(orders []model.Order, now time.Time) Counts {
	var c Counts
	for _, order := range orders {
		cl, err := delivery.Classify(order, now)
		if err != nil {
			continue
		}
		c.Total++
		if cl.Lane == delivery.Today {
			c.SameDay++
		}
	}
	c.NextDay = c.Total - c.SameDay
	return c
}

func Stores(stores []model.Store, now time.Time) Counts {
	var c Counts
	for _, store := range stores {
		c = c.add(Orders(store.Orders, now))
	}
	return c
}

func Response(resp model.OrdersResponse, now time.Time) Counts {
	return Stores(resp.Stores, now)
}
