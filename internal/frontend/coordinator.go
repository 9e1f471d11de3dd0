package frontend

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/DarkRecklessness/ShopService/internal/client"
	"github.com/DarkRecklessness/ShopService/internal/model"
)

// DefaultDescription replaces an empty order description.
const DefaultDescription = "Item"

// StatusProcessing is the neutral label shown until the deferred check runs.
const StatusProcessing = "processing..."

// PaymentAPI is the slice of the payment service the frontend uses.
type PaymentAPI interface {
	CreateAccount(ctx context.Context, userID int64) error
	TopUp(ctx context.Context, userID, amount int64) error
	GetBalance(ctx context.Context, userID int64) (int64, error)
}

// OrderAPI is the slice of the order service the frontend uses.
type OrderAPI interface {
	CreateOrder(ctx context.Context, userID, amount int64, description string) (*client.CreatedOrder, error)
	GetOrder(ctx context.Context, orderID int64) (*model.Order, error)
	OrdersForUser(ctx context.Context, userID int64) ([]model.Order, error)
}

// Notifier surfaces user-visible messages. Info is a confirmation, Alert an
// error prompt. The deferred status check uses neither.
type Notifier interface {
	Info(msg string)
	Alert(msg string)
}

var errInvalidNumber = errors.New("invalid number")

// parseID parses a base-10 identifier. Non-numeric input, values that
// overflow int64 and negative values are all rejected; leading zeros parse
// as their decimal value ("007" is 7).
func parseID(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 0 {
		return 0, errInvalidNumber
	}
	return v, nil
}

// parseAmount is parseID for amounts, which must be positive.
func parseAmount(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v <= 0 {
		return 0, errInvalidNumber
	}
	return v, nil
}

// Coordinator sequences user actions against the two services and keeps the
// view in sync. It never holds authoritative state: every render comes from
// a point-in-time read.
type Coordinator struct {
	payments PaymentAPI
	orders   OrderAPI
	view     *View
	notifier Notifier
	log      *slog.Logger

	// statusDelay is how long after a successful creation the single
	// status check fires. No polling, no retry.
	statusDelay time.Duration
}

func NewCoordinator(payments PaymentAPI, orders OrderAPI, view *View, notifier Notifier, statusDelay time.Duration, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{
		payments:    payments,
		orders:      orders,
		view:        view,
		notifier:    notifier,
		log:         log,
		statusDelay: statusDelay,
	}
}

func (c *Coordinator) View() *View { return c.view }

// CreateAccount registers a payment account for the given user id field.
func (c *Coordinator) CreateAccount(ctx context.Context, userField string) {
	if userField == "" {
		c.notifier.Alert("Enter a user ID")
		return
	}
	userID, err := parseID(userField)
	if err != nil {
		c.notifier.Alert("User ID must be a number")
		return
	}
	if err := c.payments.CreateAccount(ctx, userID); err != nil {
		c.alertFailure("Failed to create account", err)
		return
	}
	c.notifier.Info("Account created")
}

// TopUp adds funds and, on success, re-reads the now-stale balance for the
// same user.
func (c *Coordinator) TopUp(ctx context.Context, userField, amountField string) {
	if userField == "" || amountField == "" {
		c.notifier.Alert("Fill in all fields")
		return
	}
	userID, err := parseID(userField)
	if err != nil {
		c.notifier.Alert("User ID must be a number")
		return
	}
	amount, err := parseAmount(amountField)
	if err != nil {
		c.notifier.Alert("Amount must be a positive number")
		return
	}
	if err := c.payments.TopUp(ctx, userID, amount); err != nil {
		c.alertFailure("Failed to top up", err)
		return
	}
	c.notifier.Info("Balance updated")
	c.view.SetBalanceUser(userField)
	c.RefreshBalance(ctx)
}

// StatusCheck is the handle for the one-shot deferred status check. The
// caller may discard it (matching the fire-and-forget original) or Cancel it.
type StatusCheck struct {
	timer *time.Timer
	done  chan struct{}
}

// Cancel stops the check if it has not fired yet.
func (s *StatusCheck) Cancel() bool {
	return s.timer.Stop()
}

// Done is closed once the check has run. It never closes after a successful
// Cancel.
func (s *StatusCheck) Done() <-chan struct{} {
	return s.done
}

// SubmitOrder validates the form fields, creates the order, reveals the
// result panel in the neutral "processing" state, pre-fills the history
// lookup field with the acting user, and schedules the single deferred
// status check. It returns nil when validation or creation failed.
func (c *Coordinator) SubmitOrder(ctx context.Context, userField, amountField, descField string) *StatusCheck {
	if userField == "" || amountField == "" {
		c.notifier.Alert("Fill in all fields")
		return nil
	}
	userID, err := parseID(userField)
	if err != nil {
		c.notifier.Alert("User ID must be a number")
		return nil
	}
	amount, err := parseAmount(amountField)
	if err != nil {
		c.notifier.Alert("Amount must be a positive number")
		return nil
	}
	desc := descField
	if desc == "" {
		desc = DefaultDescription
	}

	created, err := c.orders.CreateOrder(ctx, userID, amount, desc)
	if err != nil {
		c.alertFailure("Failed to create order", err)
		return nil
	}

	c.view.ShowOrderResult(created.OrderID)
	c.view.SetOrderStatus(StatusProcessing, StyleProcessing)
	c.view.SetHistoryUser(userField)

	sc := &StatusCheck{done: make(chan struct{})}
	sc.timer = time.AfterFunc(c.statusDelay, func() {
		defer close(sc.done)
		c.checkCreatedOrder(context.Background(), created.OrderID)
	})
	return sc
}

// checkCreatedOrder is the background reconciliation step. Failure here is
// logged, never alerted: the order simply stays "processing" until the user
// refreshes by hand.
func (c *Coordinator) checkCreatedOrder(ctx context.Context, orderID int64) {
	order, err := c.orders.GetOrder(ctx, orderID)
	if err != nil {
		c.log.Error("deferred status check failed", "order_id", orderID, "error", err)
		return
	}

	c.view.SetOrderStatus(order.Status, StatusStyle(order.Status))

	c.RefreshHistory(ctx)

	// Refresh the balance only when the user currently shown in the
	// balance panel owns this order; otherwise leave it alone.
	if balID, err := parseID(c.view.BalanceUser()); err == nil && balID == order.UserID {
		c.RefreshBalance(ctx)
	}
}

func (c *Coordinator) alertFailure(prefix string, err error) {
	var netErr *client.NetworkError
	if errors.As(err, &netErr) {
		c.notifier.Alert("Network error: " + netErr.Err.Error())
		return
	}
	c.notifier.Alert(prefix + ": " + err.Error())
}
