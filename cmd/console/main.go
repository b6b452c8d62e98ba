package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/and161185/kaspi-console/internal/backend"
	"github.com/and161185/kaspi-console/internal/comments"
	"github.com/and161185/kaspi-console/internal/config"
	"github.com/and161185/kaspi-console/internal/deps"
	"github.com/and161185/kaspi-console/internal/fulfillment"
	"github.com/and161185/kaspi-console/internal/push"
	"github.com/and161185/kaspi-console/internal/reconcile"
	"github.com/and161185/kaspi-console/internal/refresh"
	"github.com/and161185/kaspi-console/internal/server"
	"github.com/and161185/kaspi-console/internal/storage"
	"github.com/and161185/kaspi-console/internal/waybill"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := config.NewConfig()
	logger := config.Logger
	defer func() { _ = logger.Sync() }()

	client := backend.NewClient(config.BackendAddress, config.BackendToken)

	var codes fulfillment.CodeStore = storage.NewMemoryStorage()
	if config.DatabaseURI != "" {
		pg, err := storage.NewPostgreStorage(ctx, config.DatabaseURI)
		if err != nil {
			logger.Fatal(err)
		}
		defer pg.Close()
		codes = pg
	}

	var docs waybill.DocumentStore = waybill.NewMemoryStore()
	if config.RedisAddress != "" {
		rs, err := waybill.NewRedisStore(ctx, config.RedisAddress)
		if err != nil {
			logger.Fatal(err)
		}
		defer rs.Close()
		docs = rs
	}

	acquirer := waybill.NewAcquirer(client, docs, logger, waybill.WithPublicURL(config.PublicURL))
	overrides := reconcile.NewStore()
	tracker := comments.NewTracker()
	sessions := fulfillment.NewSessions(client, acquirer, codes, overrides, logger)
	poller := refresh.NewPoller(client, sessions, config.RefreshInterval, logger)

	if len(config.KafkaBrokers) > 0 {
		dispatcher := push.NewDispatcher(overrides, tracker, logger)
		consumer, err := push.NewKafkaConsumer(config.KafkaBrokers, config.PushTopic, dispatcher, logger)
		if err != nil {
			logger.Fatal(err)
		}
		defer consumer.Close()
		go func() {
			if err := consumer.Run(ctx); err != nil {
				logger.Errorf("push consumer: %v", err)
			}
		}()
	} else {
		logger.Warn("no kafka brokers configured, push updates disabled")
	}

	d := deps.NewDependencies(logger, config.JWTSecret)
	srv := server.NewServer(client, poller, sessions, tracker, acquirer, config, d)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal(err)
	}
}
