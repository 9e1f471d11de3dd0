package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/DarkRecklessness/ShopService/internal/model"
)

type OrderClient struct {
	baseURL string
	hc      *http.Client
}

func NewOrderClient(baseURL string) *OrderClient {
	return &OrderClient{baseURL: baseURL, hc: newHTTPClient()}
}

type CreatedOrder struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

func (c *OrderClient) CreateOrder(ctx context.Context, userID, amount int64, description string) (*CreatedOrder, error) {
	req := model.CreateOrderRequest{UserID: userID, Amount: amount, Description: description}
	var resp CreatedOrder
	if err := doJSON(ctx, c.hc, http.MethodPost, c.baseURL+"/orders", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *OrderClient) GetOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	var order model.Order
	url := fmt.Sprintf("%s/orders/%d", c.baseURL, orderID)
	if err := doJSON(ctx, c.hc, http.MethodGet, url, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *OrderClient) OrdersForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order
	url := fmt.Sprintf("%s/orders/user/%d", c.baseURL, userID)
	if err := doJSON(ctx, c.hc, http.MethodGet, url, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
