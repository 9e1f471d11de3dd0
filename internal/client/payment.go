package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/DarkRecklessness/ShopService/internal/model"
)

type PaymentClient struct {
	baseURL string
	hc      *http.Client
}

func NewPaymentClient(baseURL string) *PaymentClient {
	return &PaymentClient{baseURL: baseURL, hc: newHTTPClient()}
}

func (c *PaymentClient) CreateAccount(ctx context.Context, userID int64) error {
	req := struct {
		UserID int64 `json:"user_id"`
	}{UserID: userID}
	return doJSON(ctx, c.hc, http.MethodPost, c.baseURL+"/account", req, nil)
}

func (c *PaymentClient) TopUp(ctx context.Context, userID, amount int64) error {
	req := model.TopUpRequest{UserID: userID, Amount: amount}
	return doJSON(ctx, c.hc, http.MethodPost, c.baseURL+"/account/topup", req, nil)
}

// GetBalance returns the account balance in minor units. An unknown user is
// ErrAccountNotFound so callers can render the sentinel instead of a number.
func (c *PaymentClient) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var resp struct {
		Balance int64 `json:"balance"`
	}
	url := fmt.Sprintf("%s/account/balance?user_id=%d", c.baseURL, userID)
	err := doJSON(ctx, c.hc, http.MethodGet, url, nil, &resp)
	if err != nil {
		var serviceErr *ServiceError
		if errors.As(err, &serviceErr) && serviceErr.Status == http.StatusNotFound {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}
	return resp.Balance, nil
}
