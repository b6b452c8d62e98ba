package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/and161185/kaspi-console/internal/auth"
	"github.com/and161185/kaspi-console/internal/errs"
	"github.com/and161185/kaspi-console/internal/model"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "service-token")
}

func TestOrdersTabs(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		require.Equal(t, "Bearer service-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"stores":[{"id":"s1","storeName":"Main","orders":[{"id":"101","attributes":{"code":"555","isKaspiDelivery":true}}]}]}`)
	})

	for _, tab := range model.Tabs {
		resp, err := client.Orders(context.Background(), tab)
		require.NoError(t, err)
		require.Len(t, resp.Stores, 1)
		require.Equal(t, "101", resp.Stores[0].Orders[0].ID)
		require.True(t, resp.Stores[0].Orders[0].Attributes.IsKaspiDelivery)
	}
	require.Equal(t, []string{"/orders", "/orders/archive", "/orders/pre-orders", "/orders/returned"}, paths)

	_, err := client.Orders(context.Background(), model.Tab("bogus"))
	require.Error(t, err)
}

func TestCallerTokenWins(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer operator-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := auth.WithSession(context.Background(), model.Session{UserID: "u1"}, "operator-token")
	require.NoError(t, client.SendSecurityCode(ctx, model.SecurityCodeRequest{OrderID: "1"}))
}

func TestUpdateCustomStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/orders/101/custom-status", r.URL.Path)

		var body model.CustomStatusRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, model.OnPackaging, body.Status)

		_, _ = io.WriteString(w, `{"customStatus":"ON_PACKAGING"}`)
	})

	got, err := client.UpdateCustomStatus(context.Background(), "101", model.OnPackaging)
	require.NoError(t, err)
	require.Equal(t, model.OnPackaging, got)
}

func TestUpdateStatusWithWaybill(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders/status-with-waybill", r.URL.Path)

		var body model.WaybillRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, model.WaybillRequest{OrderID: "101", StoreName: "Main", OrderCode: "555"}, body)

		_, _ = io.WriteString(w, `{"waybill":"https://kaspi.kz/waybill/101.pdf"}`)
	})

	resp, err := client.UpdateStatusWithWaybill(context.Background(), model.WaybillRequest{OrderID: "101", StoreName: "Main", OrderCode: "555"})
	require.NoError(t, err)
	require.Equal(t, "https://kaspi.kz/waybill/101.pdf", resp.Waybill)
}

func TestGenerateSelfDeliveryWaybill(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/waybill/202", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	})

	doc, err := client.GenerateSelfDeliveryWaybill(context.Background(), "202")
	require.NoError(t, err)
	require.Equal(t, "application/pdf", doc.ContentType)
	require.Equal(t, []byte("%PDF-1.4"), doc.Body)
}

func TestCompleteOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/complete", r.URL.Path)
		var body model.CompleteOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "1234", body.SecurityCode)
		_, _ = io.WriteString(w, `{"data":{"type":"orders","id":"201","attributes":{"code":"555","status":"COMPLETED"}}}`)
	})

	done, err := client.CompleteOrder(context.Background(), model.CompleteOrderRequest{OrderID: "201", SecurityCode: "1234"})
	require.NoError(t, err)
	require.Equal(t, "201", done.Data.ID)
	require.Equal(t, "COMPLETED", done.Data.Attributes.Status)
}

func TestErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: errs.ErrUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, want: errs.ErrBackend},
		{name: "bad request", status: http.StatusBadRequest, want: errs.ErrBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			})

			_, err := client.UpdateStatus(context.Background(), model.StatusRequest{OrderID: "1"})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestComments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /orders/101/comments":
			_, _ = io.WriteString(w, `{"comments":[{"id":"c1","orderId":"101","text":"call first","createdAt":1700000000000}]}`)
		case "POST /orders/101/comments":
			var body model.AddCommentRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_, _ = io.WriteString(w, `{"id":"c2","orderId":"101","text":"`+body.Text+`"}`)
		case "GET /orders/101/comments/unread-count":
			_, _ = io.WriteString(w, `3`)
		case "POST /orders/101/comments/mark-read":
			_, _ = io.WriteString(w, `{"success":true}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	list, err := client.Comments(ctx, "101")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "call first", list[0].Text)

	added, err := client.AddComment(ctx, "101", "fragile")
	require.NoError(t, err)
	require.Equal(t, "c2", added.ID)

	n, err := client.UnreadCommentsCount(ctx, "101")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	require.NoError(t, client.MarkCommentsRead(ctx, "101"))
}

func TestStoresAndAdmin(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/stores":
			_, _ = io.WriteString(w, `{"id":"s9","storeName":"New"}`)
		case "/admin/users":
			_, _ = io.WriteString(w, `[{"id":"u1","username":"packer","allowedStatuses":["ON_SHIPMENT"]}]`)
		case "/stores/s9":
			w.WriteHeader(http.StatusNoContent)
		default:
			_, _ = io.WriteString(w, `{"id":"u1","username":"packer"}`)
		}
	})
	ctx := context.Background()

	store, err := client.AddStore(ctx, model.CreateStoreRequest{Name: "New", APIKey: "k"})
	require.NoError(t, err)
	require.Equal(t, "s9", store.ID)
	require.NoError(t, client.DeleteStore(ctx, "s9"))

	users, err := client.Users(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"ON_SHIPMENT"}, users[0].AllowedStatuses)

	_, err = client.CreateUser(ctx, model.CreateUserRequest{Username: "packer"})
	require.NoError(t, err)
	_, err = client.UpdateAllowedStatuses(ctx, model.UpdateAllowedStatusesRequest{UserID: "u1"})
	require.NoError(t, err)
	_, err = client.UpdateAllowedCities(ctx, model.UpdateAllowedCitiesRequest{UserID: "u1"})
	require.NoError(t, err)
	_, err = client.UpdateAllowedStores(ctx, model.UpdateAllowedStoresRequest{UserID: "u1"})
	require.NoError(t, err)

	require.Equal(t, []string{
		"POST /stores",
		"DELETE /stores/s9",
		"GET /admin/users",
		"POST /admin/create-user",
		"PATCH /admin/update-allowed-statuses",
		"PATCH /admin/update-allowed-cities",
		"PATCH /admin/update-allowed-stores",
	}, seen)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		_, _ = io.WriteString(w, `{"access_token":"jwt"}`)
	})

	resp, err := client.Login(context.Background(), model.Credentials{Username: "u", Password: "p"})
	require.NoError(t, err)
	require.Equal(t, "jwt", resp.AccessToken)
}
