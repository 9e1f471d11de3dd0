package nats

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"
)

type Bus struct {
	nc *nats.Conn
}

func NewBus(nc *nats.Conn) *Bus {
	return &Bus{nc: nc}
}

func (b *Bus) Publish(queue string, data []byte) error {
	return b.nc.Publish(queue, data)
}

// Consume queue-subscribes so each message reaches one consumer in the
// group, then blocks until ctx is cancelled and drains the subscription.
func (b *Bus) Consume(ctx context.Context, queue string, handler func(data []byte)) error {
	sub, err := b.nc.QueueSubscribe(queue, queue+"_group", func(m *nats.Msg) {
		handler(m.Data)
	})
	if err != nil {
		return err
	}

	slog.Info("nats: consuming", "queue", queue)
	<-ctx.Done()

	slog.Info("nats: draining subscription", "queue", queue)
	return sub.Drain()
}
