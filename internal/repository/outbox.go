package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DarkRecklessness/ShopService/internal/model"
)

// ErrOutboxEmpty means there is nothing to publish right now.
var ErrOutboxEmpty = errors.New("outbox empty")

// outbox table names. Only these two are ever interpolated into SQL.
const (
	OrderOutboxTable   = "order_outbox"
	PaymentOutboxTable = "payment_outbox"
)

// Outbox claims unprocessed events from one outbox table, oldest first.
type Outbox struct {
	dbPool *pgxpool.Pool
	table  string
}

func NewOutbox(db *pgxpool.Pool, table string) *Outbox {
	return &Outbox{dbPool: db, table: table}
}

// Next claims the oldest unprocessed event. FOR UPDATE SKIP LOCKED lets
// multiple relays run without handing the same row to two of them.
func (o *Outbox) Next(ctx context.Context) (*model.OutboxEvent, error) {
	var ev model.OutboxEvent
	query := fmt.Sprintf(
		`UPDATE %[1]s
		 SET processed = TRUE
		 WHERE id = (
		     SELECT id FROM %[1]s
		     WHERE processed = FALSE
		     ORDER BY created_at ASC
		     LIMIT 1
		     FOR UPDATE SKIP LOCKED
		 )
		 RETURNING id, event_type, payload, created_at`, o.table)

	err := o.dbPool.QueryRow(ctx, query).Scan(&ev.ID, &ev.EventType, &ev.Payload, &ev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOutboxEmpty
		}
		return nil, fmt.Errorf("claim outbox event: %w", err)
	}
	return &ev, nil
}

// insertOutbox appends an event row inside the caller's transaction.
func insertOutbox(ctx context.Context, tx pgx.Tx, table, eventType string, payload []byte) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (id, event_type, payload) VALUES ($1, $2, $3)`, table)
	if _, err := tx.Exec(ctx, query, uuid.NewString(), eventType, payload); err != nil {
		return fmt.Errorf("outbox insert: %w", err)
	}
	return nil
}
