package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DarkRecklessness/ShopService/internal/model"
	"github.com/DarkRecklessness/ShopService/internal/repository"
)

type mockBus struct {
	mu        sync.Mutex
	published [][]byte
	queues    []string
	err       error
}

func (m *mockBus) Publish(queue string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queues = append(m.queues, queue)
	m.published = append(m.published, data)
	return nil
}

func (m *mockBus) publishedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.published)
}

type mockConsumer struct {
	messages [][]byte
}

func (m *mockConsumer) Consume(ctx context.Context, queue string, handler func(data []byte)) error {
	for _, msg := range m.messages {
		handler(msg)
	}
	return nil
}

type mockPaymentService struct {
	events []model.OrderCreatedEvent
	err    error
}

func (m *mockPaymentService) CreateAccount(ctx context.Context, userID int64) (*model.Account, error) {
	return nil, nil
}
func (m *mockPaymentService) TopUp(ctx context.Context, userID, amount int64) (int64, error) {
	return 0, nil
}
func (m *mockPaymentService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	return 0, nil
}
func (m *mockPaymentService) ProcessPayment(ctx context.Context, event model.OrderCreatedEvent) error {
	m.events = append(m.events, event)
	return m.err
}

type mockOrderService struct {
	results []model.PaymentResultEvent
}

func (m *mockOrderService) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.Order, error) {
	return nil, nil
}
func (m *mockOrderService) GetOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return nil, nil
}
func (m *mockOrderService) OrdersForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return nil, nil
}
func (m *mockOrderService) ApplyPaymentResult(ctx context.Context, event model.PaymentResultEvent) error {
	m.results = append(m.results, event)
	return nil
}

type mockOutbox struct {
	events []*model.OutboxEvent
}

func (m *mockOutbox) Next(ctx context.Context) (*model.OutboxEvent, error) {
	if len(m.events) == 0 {
		return nil, repository.ErrOutboxEmpty
	}
	ev := m.events[0]
	m.events = m.events[1:]
	return ev, nil
}

func TestPaymentProcessor_HandlesOrderCreated(t *testing.T) {
	event := model.OrderCreatedEvent{OrderID: 7, UserID: 1, Amount: 100}
	payload, _ := json.Marshal(event)

	svc := &mockPaymentService{}
	p := NewPaymentProcessor(svc, &mockConsumer{messages: [][]byte{payload}})

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.events) != 1 || svc.events[0] != event {
		t.Errorf("expected one processed event, got %+v", svc.events)
	}
}

func TestPaymentProcessor_SkipsBadPayload(t *testing.T) {
	svc := &mockPaymentService{}
	p := NewPaymentProcessor(svc, &mockConsumer{messages: [][]byte{[]byte("not json")}})

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.events) != 0 {
		t.Errorf("bad payload must not reach the service, got %+v", svc.events)
	}
}

func TestResultConsumer_AppliesPaymentResult(t *testing.T) {
	event := model.PaymentResultEvent{OrderID: 7, Status: model.OrderStatusPaid}
	payload, _ := json.Marshal(event)

	svc := &mockOrderService{}
	c := NewResultConsumer(svc, &mockConsumer{messages: [][]byte{payload}})

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.results) != 1 || svc.results[0] != event {
		t.Errorf("expected one applied result, got %+v", svc.results)
	}
}

func TestOutboxRelay_PublishesClaimedEvents(t *testing.T) {
	outbox := &mockOutbox{events: []*model.OutboxEvent{
		{ID: "a", EventType: "ORDER_CREATED", Payload: []byte(`{"order_id":1}`), CreatedAt: time.Now()},
		{ID: "b", EventType: "ORDER_CREATED", Payload: []byte(`{"order_id":2}`), CreatedAt: time.Now()},
	}}
	bus := &mockBus{}

	relay := NewOutboxRelay(outbox, bus, repository.OrdersQueue, "order", time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Start(ctx) }()

	deadline := time.After(time.Second)
	for bus.publishedCount() < 2 {
		select {
		case <-deadline:
			t.Fatalf("relay published %d events, want 2", bus.publishedCount())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, q := range bus.queues {
		if q != repository.OrdersQueue {
			t.Errorf("published to %q, want %q", q, repository.OrdersQueue)
		}
	}
}

func TestOutboxRelay_StopsOnPublishError(t *testing.T) {
	outbox := &mockOutbox{events: []*model.OutboxEvent{
		{ID: "a", EventType: "ORDER_CREATED", Payload: []byte(`{}`), CreatedAt: time.Now()},
	}}
	bus := &mockBus{err: errors.New("broker down")}

	relay := NewOutboxRelay(outbox, bus, repository.OrdersQueue, "order", time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := relay.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bus.published) != 0 {
		t.Errorf("nothing should be recorded as published, got %d", len(bus.published))
	}
}
