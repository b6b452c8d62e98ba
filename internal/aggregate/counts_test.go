package aggregate

import (
	"testing"
	"time"

	"github.com/and161185/kaspi-console/internal/model"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC)

func order(kaspi, express bool, created time.Time) model.Order {
	attrs := &model.OrderAttributes{CreationDate: created.UnixMilli(), IsKaspiDelivery: kaspi, DeliveryMode: model.DeliveryLocal}
	if kaspi {
		attrs.KaspiDelivery = &model.KaspiDelivery{Express: express}
	}
	return model.Order{ID: created.String(), Attributes: attrs}
}

func TestOrders(t *testing.T) {
	orders := []model.Order{
		order(true, false, now),
		order(true, false, now.Add(5*time.Hour)),
		order(true, true, now.Add(5*time.Hour)),
		order(false, false, now.Add(10*time.Hour)),
		{ID: "malformed"},
	}

	c := Orders(orders, now)
	require.Equal(t, Counts{SameDay: 3, NextDay: 1, Total: 4}, c)
}

func TestStoresSumInvariant(t *testing.T) {
	tests := []struct {
		name   string
		stores []model.Store
		want   Counts
	}{
		{"nil", nil, Counts{}},
		{"store without orders", []model.Store{{StoreName: "empty"}}, Counts{}},
		{"store with error", []model.Store{{StoreName: "broken", Error: "token expired"}}, Counts{}},
		{
			"two stores",
			[]model.Store{
				{StoreName: "a", Orders: []model.Order{order(true, false, now.Add(6*time.Hour)), order(false, false, now)}},
				{StoreName: "b", Orders: []model.Order{order(true, false, now.Add(7*time.Hour)), {ID: "x"}}},
			},
			Counts{SameDay: 1, NextDay: 2, Total: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Stores(tt.stores, now)
			require.Equal(t, tt.want, c)
			require.Equal(t, c.Total, c.SameDay+c.NextDay)
		})
	}
}

func TestResponse(t *testing.T) {
	resp := model.OrdersResponse{Stores: []model.Store{{Orders: []model.Order{order(true, true, now)}}}}
	require.Equal(t, Counts{SameDay: 1, Total: 1}, Response(resp, now))
}
