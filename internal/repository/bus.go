package repository

import "context"

// Queues connecting the two services, matching the broker topology the
// system has always used.
const (
	OrdersQueue         = "orders_queue"
	PaymentResultsQueue = "payment_results_queue"
)

// MessageBus publishes outbox payloads to the broker. Implemented by the
// nats and amqp transports.
type MessageBus interface {
	Publish(queue string, data []byte) error
}

// MessageConsumer delivers queue messages to a handler. Consume blocks until
// ctx is cancelled; each message goes to exactly one consumer in the group.
type MessageConsumer interface {
	Consume(ctx context.Context, queue string, handler func(data []byte)) error
}
