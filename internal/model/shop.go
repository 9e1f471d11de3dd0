package model

import "time"

// Order statuses as written by the services. The frontend renders whatever
// string it receives, so this list is not an allow-list.
const (
	OrderStatusNew    = "NEW"
	OrderStatusPaid   = "PAID"
	OrderStatusFailed = "FAILED"
)

type Account struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type CreateOrderRequest struct {
	UserID      int64  `json:"user_id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

type TopUpRequest struct {
	UserID int64 `json:"user_id"`
	Amount int64 `json:"amount"`
}
