package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DarkRecklessness/ShopService/internal/model"
)

func TestPaymentClient_CreateAccount(t *testing.T) {
	var gotBody struct {
		UserID int64 `json:"user_id"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/account" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	if err := NewPaymentClient(srv.URL).CreateAccount(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody.UserID != 42 {
		t.Errorf("user_id = %d, want 42", gotBody.UserID)
	}
}

func TestPaymentClient_GetBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("user_id"); got != "7" {
			t.Errorf("user_id query = %q, want 7", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]int64{"balance": 250})
	}))
	defer srv.Close()

	balance, err := NewPaymentClient(srv.URL).GetBalance(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 250 {
		t.Errorf("balance = %d, want 250", balance)
	}
}

func TestPaymentClient_GetBalance_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewPaymentClient(srv.URL).GetBalance(context.Background(), 999)
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestPaymentClient_GetBalance_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewPaymentClient(srv.URL).GetBalance(context.Background(), 1)
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if serviceErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", serviceErr.Status)
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	err := NewPaymentClient(srv.URL).TopUp(context.Background(), 1, 100)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %v", err)
	}
}

func TestOrderClient_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req model.CreateOrderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.UserID != 1 || req.Amount != 100 || req.Description != "Book" {
			t.Errorf("unexpected request body: %+v", req)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"order_id": 7, "status": "NEW"})
	}))
	defer srv.Close()

	created, err := NewOrderClient(srv.URL).CreateOrder(context.Background(), 1, 100, "Book")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.OrderID != 7 || created.Status != "NEW" {
		t.Errorf("unexpected result: %+v", created)
	}
}

func TestOrderClient_CreateOrder_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewOrderClient(srv.URL).CreateOrder(context.Background(), 1, 100, "")
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
}

func TestOrderClient_GetOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/7" {
			t.Errorf("path = %q, want /orders/7", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(model.Order{ID: 7, UserID: 1, Amount: 100, Description: "Book", Status: "PAID"})
	}))
	defer srv.Close()

	order, err := NewOrderClient(srv.URL).GetOrder(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != "PAID" || order.UserID != 1 {
		t.Errorf("unexpected order: %+v", order)
	}
}

func TestOrderClient_OrdersForUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/user/1" {
			t.Errorf("path = %q, want /orders/user/1", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]model.Order{{ID: 1}, {ID: 2}})
	}))
	defer srv.Close()

	orders, err := NewOrderClient(srv.URL).OrdersForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("expected 2 orders, got %d", len(orders))
	}
}
