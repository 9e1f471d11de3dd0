package service

import (
	"context"

	"github.com/DarkRecklessness/ShopService/internal/model"
)

// PaymentService is the business surface of the payment side. Transports and
// workers depend on this interface, not on the concrete repo.
type PaymentService interface {
	CreateAccount(ctx context.Context, userID int64) (*model.Account, error)
	TopUp(ctx context.Context, userID, amount int64) (int64, error)
	GetBalance(ctx context.Context, userID int64) (int64, error)
	ProcessPayment(ctx context.Context, event model.OrderCreatedEvent) error
}

// OrderService is the business surface of the order side.
type OrderService interface {
	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*model.Order, error)
	OrdersForUser(ctx context.Context, userID int64) ([]model.Order, error)
	ApplyPaymentResult(ctx context.Context, event model.PaymentResultEvent) error
}
