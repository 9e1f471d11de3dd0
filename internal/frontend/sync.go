package frontend

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/DarkRecklessness/ShopService/internal/client"
)

// RefreshHistory re-fetches the order list for the user in the history
// lookup field and rewrites the history view: loading marker, then an inline
// error, an explicit empty-state row, or rows sorted by id descending.
func (c *Coordinator) RefreshHistory(ctx context.Context) {
	userField := c.view.HistoryUser()
	if userField == "" {
		c.notifier.Alert("Enter a user ID")
		return
	}
	userID, err := parseID(userField)
	if err != nil {
		c.notifier.Alert("User ID must be a number")
		return
	}

	c.view.SetHistoryLoading()

	orders, err := c.orders.OrdersForUser(ctx, userID)
	if err != nil {
		// Inline, not a blocking alert: the rest of the view stays usable.
		c.view.SetHistoryError(err.Error())
		return
	}
	if len(orders) == 0 {
		c.view.SetHistoryEmpty()
		return
	}

	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })

	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, OrderRow{
			ID:          o.ID,
			Description: o.Description,
			Amount:      o.Amount,
			Status:      o.Status,
			Style:       StatusStyle(o.Status),
		})
	}
	c.view.SetHistoryRows(rows)
}

// RefreshBalance re-fetches the balance for the user in the balance lookup
// field. A missing account (or any service rejection) renders the
// BalanceNotFound sentinel so it can never be mistaken for a zero balance.
func (c *Coordinator) RefreshBalance(ctx context.Context) {
	userField := c.view.BalanceUser()
	if userField == "" {
		c.notifier.Alert("Enter a user ID")
		return
	}
	userID, err := parseID(userField)
	if err != nil {
		c.notifier.Alert("User ID must be a number")
		return
	}

	balance, err := c.payments.GetBalance(ctx, userID)
	switch {
	case err == nil:
		c.view.SetBalanceText(strconv.FormatInt(balance, 10))
	case errors.Is(err, client.ErrAccountNotFound):
		c.view.SetBalanceText(BalanceNotFound)
	default:
		var serviceErr *client.ServiceError
		if errors.As(err, &serviceErr) {
			c.view.SetBalanceText(BalanceNotFound)
			return
		}
		c.alertFailure("Failed to get balance", err)
	}
}
