package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	amqp091 "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

// Services come up together in compose, so every dial retries with backoff
// instead of failing on the first refused connection.
func backoff() retry.Backoff {
	return retry.WithMaxRetries(10, retry.NewExponential(500*time.Millisecond))
}

func connectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	var db *pgxpool.Pool
	err := retry.Do(ctx, backoff(), func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		pool, err := pgxpool.New(pingCtx, dsn)
		if err != nil {
			return err
		}
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return retry.RetryableError(err)
		}
		db = pool
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	return db, nil
}

func connectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	err := retry.Do(ctx, backoff(), func(ctx context.Context) error {
		if err := rdb.Ping(ctx).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}
	return rdb, nil
}

func connectNats(ctx context.Context, url string) (*nats.Conn, error) {
	var nc *nats.Conn
	err := retry.Do(ctx, backoff(), func(ctx context.Context) error {
		conn, err := nats.Connect(url)
		if err != nil {
			return retry.RetryableError(err)
		}
		nc = conn
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return nc, nil
}

func connectAmqp(ctx context.Context, url string) (*amqp091.Connection, error) {
	var conn *amqp091.Connection
	err := retry.Do(ctx, backoff(), func(ctx context.Context) error {
		c, err := amqp091.Dial(url)
		if err != nil {
			return retry.RetryableError(err)
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("amqp connect: %w", err)
	}
	return conn, nil
}
