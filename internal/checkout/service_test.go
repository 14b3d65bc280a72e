package checkout

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	kafkax "github.com/clerin-codes/canvas/internal/kafka"
	"github.com/clerin-codes/canvas/internal/orders"
)

func confirmedOrder() *orders.Order {
	return &orders.Order{
		ID:     "o1",
		UserID: "u1",
		Status: orders.StatusConfirmed,
		Lines: []orders.Line{
			{ID: "ol1", ProductID: "p1", ProductName: "Product p1", Size: "M", Quantity: 2, Price: decimal.RequireFromString("22.00")},
		},
		TotalAmount: decimal.RequireFromString("44.00"),
		CreatedAt:   time.Now().UTC(),
	}
}

func TestCheckoutSuccessPublishesAndInvalidates(t *testing.T) {
	store := &mockStore{order: confirmedOrder()}
	pub := &mockPublisher{}
	carts := &mockCartCache{}
	statuses := &mockStatusCache{}
	svc := NewService(store, pub, carts, statuses, zap.NewNop(), "canvas-api")

	o, err := svc.Checkout(context.Background(), "u1", "u1@example.com", "User One", "req-1")

	require.NoError(t, err)
	assert.Equal(t, "o1", o.ID)
	assert.Equal(t, orders.StatusConfirmed, o.Status)

	// cache cart basi dibuang, status ke-cache
	assert.Equal(t, []string{"u1"}, carts.deletes)
	assert.Equal(t, orders.StatusConfirmed, statuses.set["o1"])

	// event konfirmasi terkirim dengan payload lengkap
	require.Len(t, pub.messages, 1)
	assert.Equal(t, []byte("o1"), pub.keys[0])

	var env orders.Envelope
	require.NoError(t, json.Unmarshal(pub.messages[0], &env))
	assert.Equal(t, orders.EventOrderConfirmed, env.EventType)
	assert.Equal(t, "o1", env.CorrelationID)
	assert.Equal(t, "req-1", env.TraceID)
	assert.Equal(t, "canvas-api", env.Producer)

	p, err := kafkax.UnwrapPayload[orders.OrderConfirmedPayload](env.Payload)
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", p.Email)
	assert.Equal(t, "44.00", p.TotalAmount)
	require.Len(t, p.Lines, 1)
	assert.Equal(t, "22.00", p.Lines[0].Price)
}

func TestCheckoutFailurePublishesNothing(t *testing.T) {
	store := &mockStore{err: ErrEmptyCart}
	pub := &mockPublisher{}
	carts := &mockCartCache{}
	svc := NewService(store, pub, carts, &mockStatusCache{}, zap.NewNop(), "canvas-api")

	_, err := svc.Checkout(context.Background(), "u1", "u1@example.com", "", "")

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, pub.messages, "no order, no event")
	assert.Empty(t, carts.deletes, "failed checkout must leave the cart cache alone")
}

func TestCheckoutCacheDeleteFailureIsNotFatal(t *testing.T) {
	store := &mockStore{order: confirmedOrder()}
	carts := &mockCartCache{err: assert.AnError}
	svc := NewService(store, &mockPublisher{}, carts, &mockStatusCache{}, zap.NewNop(), "canvas-api")

	o, err := svc.Checkout(context.Background(), "u1", "u1@example.com", "", "")

	require.NoError(t, err, "cache trouble must never fail a committed order")
	assert.Equal(t, "o1", o.ID)
}
