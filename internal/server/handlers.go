package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/and161185/kaspi-console/internal/aggregate"
	"github.com/and161185/kaspi-console/internal/auth"
	"github.com/and161185/kaspi-console/internal/delivery"
	"github.com/and161185/kaspi-console/internal/errs"
	"github.com/and161185/kaspi-console/internal/fulfillment"
	"github.com/and161185/kaspi-console/internal/model"
	"github.com/go-chi/chi/v5"
)

// OrderCard is one order as the console renders it.
type OrderCard struct {
	fulfillment.OrderView
	UnreadComments int `json:"unreadComments"`
}

type StoreView struct {
	ID        string           `json:"id"`
	StoreName string           `json:"storeName"`
	Error     string           `json:"error,omitempty"`
	Counts    aggregate.Counts `json:"counts"`
	Orders    []OrderCard      `json:"orders"`
}

type OrdersPage struct {
	Tab    model.Tab        `json:"tab"`
	Lane   delivery.Lane    `json:"lane,omitempty"`
	Counts aggregate.Counts `json:"counts"`
	Stores []StoreView      `json:"stores"`
	Stale  bool             `json:"stale,omitempty"`
}

type Dashboard struct {
	Tabs map[model.Tab]aggregate.Counts `json:"tabs"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an operation error onto the HTTP answer.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errs.ErrUnauthorized), errors.Is(err, errs.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrNotPermitted):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrOrderNotFound), errors.Is(err, errs.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrActionUnavailable), errors.Is(err, errs.ErrOperationInFlight):
		return http.StatusConflict
	case errors.Is(err, errs.ErrEmptySecurityCode), errors.Is(err, errs.ErrMalformedOrder):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrWaybillNotReady):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrBackend):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (srv *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		srv.deps.Logger.Errorf("request failed: %v", err)
	}
	http.Error(w, http.StatusText(status), status)
}

func session(r *http.Request) model.Session {
	s, _ := auth.SessionFromContext(r.Context())
	return s
}

func visibleStores(s model.Session, stores []model.Store) []model.Store {
	out := make([]model.Store, 0, len(stores))
	for _, store := range stores {
		if s.CanViewStore(store.StoreName) {
			out = append(out, store)
		}
	}
	return out
}

func (srv *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if creds.Username == "" || creds.Password == "" {
		http.Error(w, "username and password required", http.StatusBadRequest)
		return
	}

	resp, err := srv.proxy.Login(r.Context(), creds)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		srv.fail(w, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+resp.AccessToken)
	writeJSON(w, http.StatusOK, resp)
}

func (srv *Server) OrdersHandler(w http.ResponseWriter, r *http.Request) {
	tab := model.Tab(chi.URLParam(r, "tab"))
	if !tab.Valid() {
		http.Error(w, "unknown tab", http.StatusNotFound)
		return
	}
	lane := delivery.Lane(r.URL.Query().Get("lane"))
	if lane != "" && lane != delivery.Today && lane != delivery.Tomorrow {
		http.Error(w, "unknown lane", http.StatusBadRequest)
		return
	}

	page := OrdersPage{Tab: tab, Lane: lane, Stores: []StoreView{}}
	s := session(r)
	resp, err := srv.orders.Refresh(r.Context(), s.UserID, tab)
	if err != nil {
		snap, ok := srv.orders.Snapshot(s.UserID, tab)
		if !ok {
			srv.fail(w, err)
			return
		}
		srv.deps.Logger.Warnf("serve cached %s orders: %v", tab, err)
		resp, page.Stale = snap.Response, true
	}

	registry := srv.sessions.For(s.UserID)
	perms := fulfillment.PermissionsFor(s)
	now := srv.now()

	stores := visibleStores(s, resp.Stores)
	page.Counts = aggregate.Stores(stores, now)
	for _, store := range stores {
		view := StoreView{
			ID:        store.ID,
			StoreName: store.StoreName,
			Error:     store.Error,
			Counts:    aggregate.Orders(store.Orders, now),
			Orders:    []OrderCard{},
		}

		orders := store.Orders
		if lane != "" {
			today, tomorrow := delivery.Partition(store.Orders, now)
			orders = today
			if lane == delivery.Tomorrow {
				orders = tomorrow
			}
		}

		for _, order := range orders {
			m, err := registry.Machine(r.Context(), store.StoreName, order)
			if err != nil {
				continue
			}
			view.Orders = append(view.Orders, OrderCard{
				OrderView:      m.View(perms, now, tab == model.TabReturned),
				UnreadComments: srv.comments.Count(order.ID),
			})
		}
		page.Stores = append(page.Stores, view)
	}

	writeJSON(w, http.StatusOK, page)
}

// DashboardHandler reports badge counts from the caller's latest listings
// without fetching anything.
func (srv *Server) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	now := srv.now()

	dash := Dashboard{Tabs: make(map[model.Tab]aggregate.Counts, len(model.Tabs))}
	for _, tab := range model.Tabs {
		snap, ok := srv.orders.Snapshot(s.UserID, tab)
		if !ok {
			dash.Tabs[tab] = aggregate.Counts{}
			continue
		}
		dash.Tabs[tab] = aggregate.Stores(visibleStores(s, snap.Response.Stores), now)
	}

	writeJSON(w, http.StatusOK, dash)
}

// machine finds the order addressed by the URL among the orders listed to the
// caller and checks the operator may see it.
func (srv *Server) machine(r *http.Request) (*fulfillment.Machine, error) {
	s := session(r)
	m, err := srv.sessions.For(s.UserID).Lookup(chi.URLParam(r, "orderID"))
	if err != nil {
		return nil, err
	}
	if !s.CanViewStore(m.StoreName()) {
		return nil, errs.ErrOrderNotFound
	}
	return m, nil
}

// runAction performs op on the addressed order and answers with the order's
// view whatever the outcome, so the UI always sees the order-scoped message.
func (srv *Server) runAction(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, m *fulfillment.Machine, perms fulfillment.Permissions) error) {
	m, err := srv.machine(r)
	if err != nil {
		srv.fail(w, err)
		return
	}

	s := session(r)
	perms := fulfillment.PermissionsFor(s)

	// a dropped connection does not abort a write already sent to the backend
	err = op(context.WithoutCancel(r.Context()), m, perms)
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		srv.deps.Logger.Errorf("order %s: %v", m.ID(), err)
	}

	// the returned tab labels Kaspi orders by their way back to the warehouse
	returned := model.Tab(r.URL.Query().Get("tab")) == model.TabReturned
	writeJSON(w, status, OrderCard{
		OrderView:      m.View(perms, srv.now(), returned),
		UnreadComments: srv.comments.Count(m.ID()),
	})
}

func (srv *Server) AdvanceHandler(w http.ResponseWriter, r *http.Request) {
	srv.runAction(w, r, func(ctx context.Context, m *fulfillment.Machine, perms fulfillment.Permissions) error {
		return m.Advance(ctx, perms)
	})
}

func (srv *Server) TransferHandler(w http.ResponseWriter, r *http.Request) {
	srv.runAction(w, r, func(ctx context.Context, m *fulfillment.Machine, perms fulfillment.Permissions) error {
		return m.SendForTransfer(ctx, perms)
	})
}

func (srv *Server) SendCodeHandler(w http.ResponseWriter, r *http.Request) {
	srv.runAction(w, r, func(ctx context.Context, m *fulfillment.Machine, perms fulfillment.Permissions) error {
		return m.SendCode(ctx, perms)
	})
}

func (srv *Server) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	var input model.CompleteCodeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	srv.runAction(w, r, func(ctx context.Context, m *fulfillment.Machine, perms fulfillment.Permissions) error {
		return m.CompleteOrder(ctx, perms, input.Code)
	})
}

func (srv *Server) WaybillHandler(w http.ResponseWriter, r *http.Request) {
	srv.runAction(w, r, func(ctx context.Context, m *fulfillment.Machine, _ fulfillment.Permissions) error {
		_, err := m.AcquireWaybill(ctx)
		return err
	})
}

func (srv *Server) DocumentHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := srv.documents.Document(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		srv.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", "inline")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}

func (srv *Server) CommentsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := srv.proxy.Comments(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		srv.fail(w, err)
		return
	}
	if list == nil {
		list = []model.Comment{}
	}
	writeJSON(w, http.StatusOK, model.CommentsResponse{Comments: list})
}

func (srv *Server) AddCommentHandler(w http.ResponseWriter, r *http.Request) {
	var req model.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "comment text required", http.StatusBadRequest)
		return
	}

	comment, err := srv.proxy.AddComment(r.Context(), chi.URLParam(r, "orderID"), req.Text)
	if err != nil {
		srv.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (srv *Server) UnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	n, err := srv.proxy.UnreadCommentsCount(r.Context(), orderID)
	if err != nil {
		srv.fail(w, err)
		return
	}
	srv.comments.Set(orderID, n)
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (srv *Server) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if err := srv.proxy.MarkCommentsRead(r.Context(), orderID); err != nil {
		srv.fail(w, err)
		return
	}
	srv.comments.Reset(orderID)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (srv *Server) StoresHandler(w http.ResponseWriter, r *http.Request) {
	stores, err := srv.proxy.Stores(r.Context())
	if err != nil {
		srv.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, visibleStores(session(r), stores))
}

func (srv *Server) AddStoreHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.APIKey == "" {
		http.Error(w, "name and apiKey required", http.StatusBadRequest)
		return
	}

	store, err := srv.proxy.AddStore(r.Context(), req)
	if err != nil {
		srv.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, store)
}

func (srv *Server) DeleteStoreHandler(w http.ResponseWriter, r *http.Request) {
	if err := srv.proxy.DeleteStore(r.Context(), chi.URLParam(r, "storeID")); err != nil {
		srv.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (srv *Server) UsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := srv.proxy.Users(r.Context())
	if err != nil {
		srv.fail(w, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (srv *Server) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password required", http.StatusBadRequest)
		return
	}

	user, err := srv.proxy.CreateUser(r.Context(), req)
	if err != nil {
		srv.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (srv *Server) AllowedStatusesHandler(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateAllowedStatusesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	for _, s := range req.AllowedStatuses {
		if !model.Status(s).Valid() {
			http.Error(w, "unknown status "+s, http.StatusBadRequest)
			return
		}
	}
	req.UserID = chi.URLParam(r, "userID")

	user, err := srv.proxy.UpdateAllowedStatuses(r.Context(), req)
	if err != nil {
		srv.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (srv *Server) AllowedCitiesHandler(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateAllowedCitiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	req.UserID = chi.URLParam(r, "userID")

	user, err := srv.proxy.UpdateAllowedCities(r.Context(), req)
	if err != nil {
		srv.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (srv *Server) AllowedStoresHandler(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateAllowedStoresRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	req.UserID = chi.URLParam(r, "userID")

	user, err := srv.proxy.UpdateAllowedStores(r.Context(), req)
	if err != nil {
		srv.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
