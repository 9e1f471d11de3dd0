package infrastructure

import (
	"context"

	"github.com/DarkRecklessness/ShopService/internal/config"
	"github.com/DarkRecklessness/ShopService/internal/repository"
	"github.com/DarkRecklessness/ShopService/internal/service"
	transportAMQP "github.com/DarkRecklessness/ShopService/internal/transport/amqp"
	transportHTTP "github.com/DarkRecklessness/ShopService/internal/transport/http"
	transportNATS "github.com/DarkRecklessness/ShopService/internal/transport/nats"
	"github.com/DarkRecklessness/ShopService/internal/worker"
)

// connectBus dials the configured broker. Both bus implementations publish
// and consume, so one connection serves the relay and the worker.
func connectBus(ctx context.Context, cfg *config.Config) (repository.MessageBus, repository.MessageConsumer, func(), error) {
	switch cfg.BusProvider {
	case "amqp":
		conn, err := connectAmqp(ctx, cfg.AmqpAddr())
		if err != nil {
			return nil, nil, nil, err
		}
		bus, err := transportAMQP.NewBus(conn)
		if err != nil {
			conn.Close()
			return nil, nil, nil, err
		}
		return bus, bus, func() { _ = conn.Close() }, nil
	default: // "nats", enforced by config.New
		nc, err := connectNats(ctx, cfg.NatsAddr())
		if err != nil {
			return nil, nil, nil, err
		}
		bus := transportNATS.NewBus(nc)
		return bus, bus, nc.Close, nil
	}
}

// BootstrapPayment wires the payment service: HTTP API, the relay that
// drains payment_outbox into the results queue, and the processor that
// charges accounts for incoming order events.
func BootstrapPayment(ctx context.Context) (*App, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	db, err := connectPostgres(ctx, cfg.DSN())
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()
	cleanupFns = append(cleanupFns, db.Close)

	rdb, err := connectRedis(ctx, cfg.RedisAddr())
	if err != nil {
		return nil, runCleanup(cleanupFns), err
	}
	cleanupFns = append(cleanupFns, func() { _ = rdb.Close() })

	bus, consumer, busCleanup, err := connectBus(ctx, cfg)
	if err != nil {
		return nil, runCleanup(cleanupFns), err
	}
	cleanupFns = append(cleanupFns, busCleanup)

	repo := repository.NewAccountRepo(db, rdb)
	var svc service.PaymentService = repo

	servers := []Server{
		transportHTTP.NewServer(cfg.PaymentAddr(), transportHTTP.NewPaymentHandler(svc).Routes()),
		worker.NewOutboxRelay(
			repository.NewOutbox(db, repository.PaymentOutboxTable),
			bus,
			repository.PaymentResultsQueue,
			"payment",
			cfg.OutboxPollInterval,
		),
		worker.NewPaymentProcessor(svc, consumer),
	}

	return NewApp(servers), runCleanup(cleanupFns), nil
}

// BootstrapOrder wires the order service: HTTP API, the relay that drains
// order_outbox into the orders queue, and the consumer that applies payment
// results.
func BootstrapOrder(ctx context.Context) (*App, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	db, err := connectPostgres(ctx, cfg.DSN())
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()
	cleanupFns = append(cleanupFns, db.Close)

	bus, consumer, busCleanup, err := connectBus(ctx, cfg)
	if err != nil {
		return nil, runCleanup(cleanupFns), err
	}
	cleanupFns = append(cleanupFns, busCleanup)

	repo := repository.NewOrderRepo(db)
	var svc service.OrderService = repo

	servers := []Server{
		transportHTTP.NewServer(cfg.OrderAddr(), transportHTTP.NewOrderHandler(svc).Routes()),
		worker.NewOutboxRelay(
			repository.NewOutbox(db, repository.OrderOutboxTable),
			bus,
			repository.OrdersQueue,
			"order",
			cfg.OutboxPollInterval,
		),
		worker.NewResultConsumer(svc, consumer),
	}

	return NewApp(servers), runCleanup(cleanupFns), nil
}

// runCleanup returns a single function that calls all cleanup functions in
// reverse order.
func runCleanup(fns []func()) func() {
	return func() {
		for i := len(fns) - 1; i >= 0; i-- {
			fns[i]()
		}
	}
}
