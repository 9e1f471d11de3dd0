package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DarkRecklessness/ShopService/internal/model"
	"github.com/DarkRecklessness/ShopService/internal/repository"
	"github.com/DarkRecklessness/ShopService/internal/service"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Routes returns the order service handler with CORS applied.
func (h *OrderHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /orders", h.CreateOrder)
	mux.HandleFunc("GET /orders/{id}", h.GetOrder)
	mux.HandleFunc("GET /orders/user/{user_id}", h.OrdersForUser)
	return withCORS(mux)
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.UserID == 0 || req.Amount == 0 {
		respondError(w, http.StatusBadRequest, "missing fields")
		return
	}
	if req.Amount < 0 {
		respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	order, err := h.svc.CreateOrder(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create order")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	order, err := h.svc.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) OrdersForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	orders, err := h.svc.OrdersForUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}
