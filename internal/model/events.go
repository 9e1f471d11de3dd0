package model

import "time"

// OrderCreatedEvent is written to the order service outbox and consumed by
// the payment service.
type OrderCreatedEvent struct {
	OrderID int64 `json:"order_id"`
	UserID  int64 `json:"user_id"`
	Amount  int64 `json:"amount"`
}

// PaymentResultEvent travels the opposite way: payment outbox -> order service.
// Status is PAID or FAILED.
type PaymentResultEvent struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

// OutboxEvent is a claimed outbox row ready for publication.
type OutboxEvent struct {
	ID        string    `json:"id"`
	EventType string    `json:"event_type"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}
