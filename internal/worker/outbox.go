package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DarkRecklessness/ShopService/internal/model"
	"github.com/DarkRecklessness/ShopService/internal/repository"
)

// OutboxSource claims the next unpublished event, repository.ErrOutboxEmpty
// when there is none.
type OutboxSource interface {
	Next(ctx context.Context) (*model.OutboxEvent, error)
}

// OutboxRelay drains one outbox table into one broker queue. Claimed rows
// are marked processed before publication, so a crash between claim and
// publish loses the event rather than duplicating it; consumers are
// idempotent regardless.
type OutboxRelay struct {
	outbox   OutboxSource
	bus      repository.MessageBus
	queue    string
	name     string
	interval time.Duration
}

func NewOutboxRelay(outbox OutboxSource, bus repository.MessageBus, queue, name string, interval time.Duration) *OutboxRelay {
	return &OutboxRelay{
		outbox:   outbox,
		bus:      bus,
		queue:    queue,
		name:     name,
		interval: interval,
	}
}

// Start polls until ctx is cancelled.
func (r *OutboxRelay) Start(ctx context.Context) error {
	slog.Info("outbox relay started", "outbox", r.name, "queue", r.queue)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		// Drain everything that is ready before sleeping.
		for {
			event, err := r.outbox.Next(ctx)
			if err != nil {
				if !errors.Is(err, repository.ErrOutboxEmpty) {
					outboxErrors.WithLabelValues(r.name).Inc()
					slog.Error("outbox claim failed", "outbox", r.name, "error", err)
				}
				break
			}
			if err := r.bus.Publish(r.queue, event.Payload); err != nil {
				outboxErrors.WithLabelValues(r.name).Inc()
				slog.Error("outbox publish failed", "outbox", r.name, "event_id", event.ID, "error", err)
				break
			}
			outboxPublished.WithLabelValues(r.name).Inc()
			slog.Info("outbox event published", "outbox", r.name, "event_id", event.ID, "type", event.EventType)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (r *OutboxRelay) Stop(ctx context.Context) error {
	return nil
}
