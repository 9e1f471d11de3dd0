package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/DarkRecklessness/ShopService/internal/model"
)

var (
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
)

// AccountRepo owns accounts in Postgres with a Redis read-through balance
// cache. Payment processing writes results to payment_outbox in the same
// transaction as the debit; payment_inbox keeps event consumption idempotent.
type AccountRepo struct {
	dbPool *pgxpool.Pool
	cache  *redis.Client
}

func NewAccountRepo(db *pgxpool.Pool, rdb *redis.Client) *AccountRepo {
	return &AccountRepo{dbPool: db, cache: rdb}
}

func balanceKey(userID int64) string {
	return fmt.Sprintf("balance:%d", userID)
}

func (r *AccountRepo) CreateAccount(ctx context.Context, userID int64) (*model.Account, error) {
	var acc model.Account
	err := r.dbPool.QueryRow(ctx,
		`INSERT INTO accounts (user_id, balance)
		 VALUES ($1, 0)
		 ON CONFLICT (user_id) DO NOTHING
		 RETURNING id, user_id, balance, created_at`,
		userID,
	).Scan(&acc.ID, &acc.UserID, &acc.Balance, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &acc, nil
}

// TopUp credits the account and returns the new balance. The cache entry is
// rewritten so the next read does not serve the stale value.
func (r *AccountRepo) TopUp(ctx context.Context, userID, amount int64) (int64, error) {
	var balance int64
	err := r.dbPool.QueryRow(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE user_id = $2 RETURNING balance`,
		amount, userID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, fmt.Errorf("top up: %w", err)
	}

	if err := r.cache.Set(ctx, balanceKey(userID), balance, 0).Err(); err != nil {
		slog.Warn("failed to update balance cache", "user_id", userID, "error", err)
	}
	return balance, nil
}

// GetBalance serves from Redis, warming the cache from Postgres on a miss.
func (r *AccountRepo) GetBalance(ctx context.Context, userID int64) (int64, error) {
	balance, err := r.cache.Get(ctx, balanceKey(userID)).Int64()
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("balance cache read: %w", err)
	}
	return r.warmUpCache(ctx, userID)
}

// warmUpCache fetches the balance from Postgres and writes it to Redis.
// No TTL: Postgres writes keep the entry current.
func (r *AccountRepo) warmUpCache(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.dbPool.QueryRow(ctx,
		`SELECT balance FROM accounts WHERE user_id = $1`, userID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, fmt.Errorf("balance query: %w", err)
	}

	if err := r.cache.Set(ctx, balanceKey(userID), balance, 0).Err(); err != nil {
		return 0, fmt.Errorf("failed to save balance to cache: %w", err)
	}
	return balance, nil
}

// ProcessPayment handles one OrderCreated event: records it in the inbox
// (skipping duplicates), debits the account when funds allow, and appends the
// PAID/FAILED result to payment_outbox inside the same transaction.
func (r *AccountRepo) ProcessPayment(ctx context.Context, event model.OrderCreatedEvent) error {
	tx, err := r.dbPool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	messageID := fmt.Sprintf("order_%d", event.OrderID)
	tag, err := tx.Exec(ctx,
		`INSERT INTO payment_inbox (message_id) VALUES ($1) ON CONFLICT (message_id) DO NOTHING`,
		messageID,
	)
	if err != nil {
		return fmt.Errorf("inbox insert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Duplicate delivery, already handled.
		slog.Info("skipping already processed payment", "message_id", messageID)
		return nil
	}

	status := model.OrderStatusFailed
	var balance int64
	err = tx.QueryRow(ctx,
		`UPDATE accounts SET balance = balance - $1
		 WHERE user_id = $2 AND balance >= $1
		 RETURNING balance`,
		event.Amount, event.UserID,
	).Scan(&balance)
	switch {
	case err == nil:
		status = model.OrderStatusPaid
	case errors.Is(err, pgx.ErrNoRows):
		// Missing account or insufficient funds: the order fails.
	default:
		return fmt.Errorf("debit: %w", err)
	}

	payload, err := json.Marshal(model.PaymentResultEvent{OrderID: event.OrderID, Status: status})
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := insertOutbox(ctx, tx, "payment_outbox", "PAYMENT_RESULT", payload); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if status == model.OrderStatusPaid {
		if err := r.cache.Set(ctx, balanceKey(event.UserID), balance, 0).Err(); err != nil {
			slog.Warn("failed to update balance cache", "user_id", event.UserID, "error", err)
		}
	}

	slog.Info("payment processed", "order_id", event.OrderID, "status", status)
	return nil
}
