package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/DarkRecklessness/ShopService/internal/model"
	"github.com/DarkRecklessness/ShopService/internal/repository"
	"github.com/DarkRecklessness/ShopService/internal/service"
)

// PaymentProcessor consumes OrderCreated events and charges the owning
// account through the payment service.
type PaymentProcessor struct {
	svc      service.PaymentService
	consumer repository.MessageConsumer
}

func NewPaymentProcessor(svc service.PaymentService, consumer repository.MessageConsumer) *PaymentProcessor {
	return &PaymentProcessor{svc: svc, consumer: consumer}
}

func (p *PaymentProcessor) Start(ctx context.Context) error {
	return p.consumer.Consume(ctx, repository.OrdersQueue, func(data []byte) {
		var event model.OrderCreatedEvent
		if err := json.Unmarshal(data, &event); err != nil {
			eventsProcessed.WithLabelValues(repository.OrdersQueue, "decode_error").Inc()
			slog.Error("payment processor: bad event payload", "error", err)
			return
		}

		if err := p.svc.ProcessPayment(ctx, event); err != nil {
			eventsProcessed.WithLabelValues(repository.OrdersQueue, "error").Inc()
			slog.Error("payment processor: processing failed",
				"order_id", event.OrderID,
				"user_id", event.UserID,
				"error", err,
			)
			return
		}
		eventsProcessed.WithLabelValues(repository.OrdersQueue, "ok").Inc()
	})
}

func (p *PaymentProcessor) Stop(ctx context.Context) error {
	return nil
}
