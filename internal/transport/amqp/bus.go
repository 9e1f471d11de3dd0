package amqp

import (
	"context"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Bus adapts a RabbitMQ channel to the MessageBus/MessageConsumer pair.
// Queues are declared durable on first use.
type Bus struct {
	ch *amqp.Channel
}

func NewBus(conn *amqp.Connection) (*Bus, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	return &Bus{ch: ch}, nil
}

func (b *Bus) declare(queue string) error {
	_, err := b.ch.QueueDeclare(queue, true, false, false, false, nil)
	return err
}

func (b *Bus) Publish(queue string, data []byte) error {
	if err := b.declare(queue); err != nil {
		return err
	}
	return b.ch.PublishWithContext(context.Background(), "", queue, false, false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
		})
}

// Consume delivers messages to handler until ctx is cancelled. Messages are
// acked after the handler returns; handlers own their error handling.
func (b *Bus) Consume(ctx context.Context, queue string, handler func(data []byte)) error {
	if err := b.declare(queue); err != nil {
		return err
	}
	deliveries, err := b.ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("amqp consume: %w", err)
	}

	slog.Info("amqp: consuming", "queue", queue)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("amqp: delivery channel closed for %s", queue)
			}
			handler(d.Body)
			_ = d.Ack(false)
		}
	}
}
