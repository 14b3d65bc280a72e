package checkout

import (
	"context"
	"sync"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/clerin-codes/canvas/internal/orders"
)

type mockStore struct {
	order *orders.Order
	err   error
	calls int
}

func (m *mockStore) CreateOrder(context.Context, string) (*orders.Order, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

type mockPublisher struct {
	mu       sync.Mutex
	messages [][]byte
	keys     [][]byte
}

func (m *mockPublisher) Publish(key, value []byte, _ ...kafkago.Header) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, key)
	m.messages = append(m.messages, value)
}

type mockCartCache struct {
	deletes []string
	err     error
}

func (m *mockCartCache) Delete(_ context.Context, userID string) error {
	m.deletes = append(m.deletes, userID)
	return m.err
}

type mockStatusCache struct {
	set map[string]orders.Status
}

func (m *mockStatusCache) SetStatus(_ context.Context, orderID string, status orders.Status) {
	if m.set == nil {
		m.set = map[string]orders.Status{}
	}
	m.set[orderID] = status
}
