package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/DarkRecklessness/ShopService/internal/model"
	"github.com/DarkRecklessness/ShopService/internal/repository"
	"github.com/DarkRecklessness/ShopService/internal/service"
)

// ResultConsumer consumes PaymentResult events and moves orders to their
// terminal status.
type ResultConsumer struct {
	svc      service.OrderService
	consumer repository.MessageConsumer
}

func NewResultConsumer(svc service.OrderService, consumer repository.MessageConsumer) *ResultConsumer {
	return &ResultConsumer{svc: svc, consumer: consumer}
}

func (c *ResultConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, repository.PaymentResultsQueue, func(data []byte) {
		var event model.PaymentResultEvent
		if err := json.Unmarshal(data, &event); err != nil {
			eventsProcessed.WithLabelValues(repository.PaymentResultsQueue, "decode_error").Inc()
			slog.Error("result consumer: bad event payload", "error", err)
			return
		}

		if err := c.svc.ApplyPaymentResult(ctx, event); err != nil {
			eventsProcessed.WithLabelValues(repository.PaymentResultsQueue, "error").Inc()
			slog.Error("result consumer: update failed", "order_id", event.OrderID, "error", err)
			return
		}
		eventsProcessed.WithLabelValues(repository.PaymentResultsQueue, "ok").Inc()
	})
}

func (c *ResultConsumer) Stop(ctx context.Context) error {
	return nil
}
