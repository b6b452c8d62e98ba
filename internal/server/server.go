package server

import (
	"context"
	"net/http"
	"time"

	"github.com/and161185/kaspi-console/internal/comments"
	"github.com/and161185/kaspi-console/internal/config"
	"github.com/and161185/kaspi-console/internal/deps"
	"github.com/and161185/kaspi-console/internal/fulfillment"
	"github.com/and161185/kaspi-console/internal/middleware"
	"github.com/and161185/kaspi-console/internal/model"
	"github.com/and161185/kaspi-console/internal/refresh"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

// Proxy is the part of the order backend the console forwards to unchanged.
type Proxy interface {
	Login(ctx context.Context, creds model.Credentials) (model.LoginResponse, error)

	AddComment(ctx context.Context, orderID, text string) (model.Comment, error)
	Comments(ctx context.Context, orderID string) ([]model.Comment, error)
	UnreadCommentsCount(ctx context.Context, orderID string) (int, error)
	MarkCommentsRead(ctx context.Context, orderID string) error

	Stores(ctx context.Context) ([]model.Store, error)
	AddStore(ctx context.Context, req model.CreateStoreRequest) (model.Store, error)
	DeleteStore(ctx context.Context, storeID string) error

	CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	Users(ctx context.Context) ([]model.User, error)
	UpdateAllowedStatuses(ctx context.Context, req model.UpdateAllowedStatusesRequest) (model.User, error)
	UpdateAllowedCities(ctx context.Context, req model.UpdateAllowedCitiesRequest) (model.User, error)
	UpdateAllowedStores(ctx context.Context, req model.UpdateAllowedStoresRequest) (model.User, error)
}

// Orders serves each session its own order listings and keeps them fresh in
// the background. key identifies the session.
type Orders interface {
	Refresh(ctx context.Context, key string, tab model.Tab) (model.OrdersResponse, error)
	Snapshot(key string, tab model.Tab) (refresh.Snapshot, bool)
	Run(ctx context.Context) error
}

type Documents interface {
	Document(ctx context.Context, key string) (model.Document, error)
}

type Server struct {
	proxy     Proxy
	orders    Orders
	sessions  *fulfillment.Sessions
	comments  *comments.Tracker
	documents Documents
	config    *config.Config
	deps      *deps.Deps
	now       func() time.Time
}

func NewServer(proxy Proxy, orders Orders, sessions *fulfillment.Sessions, tracker *comments.Tracker,
	documents Documents, config *config.Config, deps *deps.Deps) *Server {
	return &Server{
		proxy:     proxy,
		orders:    orders,
		sessions:  sessions,
		comments:  tracker,
		documents: documents,
		config:    config,
		deps:      deps,
		now:       time.Now,
	}
}

func (srv *Server) buildRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)
	router.Use(chiMiddleware.StripSlashes)
	router.Use(middleware.LogMiddleware(srv.deps.Logger))
	router.Use(middleware.DecompressMiddleware)
	router.Use(middleware.CompressMiddleware(srv.deps.Logger))

	router.Post("/api/auth/login", srv.LoginHandler)
	router.Get("/api/waybills/{documentID}", srv.DocumentHandler)

	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(srv.deps.TokenManager))

		r.Get("/api/dashboard", srv.DashboardHandler)
		r.Get("/api/orders/{tab}", srv.OrdersHandler)

		// flat routes: {orderID} shares its tree node with {tab}
		r.Post("/api/orders/{orderID}/advance", srv.AdvanceHandler)
		r.Post("/api/orders/{orderID}/transfer", srv.TransferHandler)
		r.Post("/api/orders/{orderID}/send-code", srv.SendCodeHandler)
		r.Post("/api/orders/{orderID}/complete", srv.CompleteHandler)
		r.Post("/api/orders/{orderID}/waybill", srv.WaybillHandler)

		r.Get("/api/orders/{orderID}/comments", srv.CommentsHandler)
		r.Post("/api/orders/{orderID}/comments", srv.AddCommentHandler)
		r.Get("/api/orders/{orderID}/comments/unread-count", srv.UnreadCountHandler)
		r.Post("/api/orders/{orderID}/comments/mark-read", srv.MarkReadHandler)

		r.Get("/api/stores", srv.StoresHandler)
		r.Post("/api/stores", srv.AddStoreHandler)
		r.Delete("/api/stores/{storeID}", srv.DeleteStoreHandler)

		r.Route("/api/admin/users", func(r chi.Router) {
			r.Use(middleware.AdminOnly)
			r.Get("/", srv.UsersHandler)
			r.Post("/", srv.CreateUserHandler)
			r.Patch("/{userID}/allowed-statuses", srv.AllowedStatusesHandler)
			r.Patch("/{userID}/allowed-cities", srv.AllowedCitiesHandler)
			r.Patch("/{userID}/allowed-stores", srv.AllowedStoresHandler)
		})
	})

	return router
}

func (srv *Server) Run(ctx context.Context) error {
	router := srv.buildRouter()

	server := &http.Server{
		Addr:    srv.config.RunAddress,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srv.deps.Logger.Fatalf("server error: %v", err)
		}
	}()

	go func() {
		if err := srv.orders.Run(ctx); err != nil {
			srv.deps.Logger.Errorf("background refresh: %v", err)
		}
	}()

	srv.deps.Logger.Infof("console listening on %s", srv.config.RunAddress)
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
