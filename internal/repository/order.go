package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DarkRecklessness/ShopService/internal/model"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepo owns orders in Postgres. Creation appends an OrderCreated event
// to order_outbox in the same transaction as the insert.
type OrderRepo struct {
	dbPool *pgxpool.Pool
}

func NewOrderRepo(db *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{dbPool: db}
}

func (r *OrderRepo) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.Order, error) {
	tx, err := r.dbPool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	order := model.Order{
		UserID:      req.UserID,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      model.OrderStatusNew,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (user_id, amount, description, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		order.UserID, order.Amount, order.Description, order.Status,
	).Scan(&order.ID)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	payload, err := json.Marshal(model.OrderCreatedEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Amount:  order.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	if err := insertOutbox(ctx, tx, "order_outbox", "ORDER_CREATED", payload); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &order, nil
}

func (r *OrderRepo) GetOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	var o model.Order
	err := r.dbPool.QueryRow(ctx,
		`SELECT id, user_id, amount, description, status FROM orders WHERE id = $1`,
		orderID,
	).Scan(&o.ID, &o.UserID, &o.Amount, &o.Description, &o.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

func (r *OrderRepo) OrdersForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	rows, err := r.dbPool.Query(ctx,
		`SELECT id, user_id, amount, description, status FROM orders WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Amount, &o.Description, &o.Status); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// ApplyPaymentResult moves the order to its terminal status from a
// PaymentResult event.
func (r *OrderRepo) ApplyPaymentResult(ctx context.Context, event model.PaymentResultEvent) error {
	tag, err := r.dbPool.Exec(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`,
		event.Status, event.OrderID,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		slog.Warn("payment result for unknown order", "order_id", event.OrderID)
		return ErrOrderNotFound
	}
	slog.Info("order status updated", "order_id", event.OrderID, "status", event.Status)
	return nil
}
