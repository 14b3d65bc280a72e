package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clerin-codes/canvas/internal/orders"
)

type fakeDedup struct {
	seen map[string]bool
}

func (d *fakeDedup) Seen(_ context.Context, eventID string) bool {
	if d.seen[eventID] {
		return true
	}
	if d.seen == nil {
		d.seen = map[string]bool{}
	}
	d.seen[eventID] = true
	return false
}

type fakeMailer struct {
	sent []string // to addresses
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, plain, html string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func confirmedMessage(t *testing.T, eventID string) kafkago.Message {
	t.Helper()
	p := orders.OrderConfirmedPayload{
		OrderID:     "ord-1234abcd",
		UserID:      "u1",
		Email:       "u1@example.com",
		UserName:    "Budi",
		Lines:       []orders.LinePayload{{ProductID: "p1", ProductName: "Canvas Tee", Size: "M", Quantity: 2, Price: "19.50"}},
		TotalAmount: "39.00",
		CreatedAt:   time.Now(),
	}
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	env := orders.Envelope{
		EventID:      eventID,
		EventType:    orders.EventOrderConfirmed,
		EventVersion: 1,
		OccurredAt:   time.Now(),
		Producer:     "canvas-api",
		Payload:      raw,
	}
	val, err := json.Marshal(env)
	require.NoError(t, err)
	return kafkago.Message{Value: val}
}

func newTestService(d Deduper, m Mailer) *Service {
	return &Service{Dedup: d, Mailer: m, Log: zap.NewNop()}
}

func TestHandleOrderConfirmedSendsOnce(t *testing.T) {
	dedup := &fakeDedup{}
	mailer := &fakeMailer{}
	svc := newTestService(dedup, mailer)

	msg := confirmedMessage(t, "ev-1")
	require.NoError(t, svc.HandleOrderConfirmed(context.Background(), msg))
	require.NoError(t, svc.HandleOrderConfirmed(context.Background(), msg)) // redelivery

	assert.Equal(t, []string{"u1@example.com"}, mailer.sent)
}

func TestHandleOrderConfirmedIgnoresOtherEvents(t *testing.T) {
	dedup := &fakeDedup{}
	mailer := &fakeMailer{}
	svc := newTestService(dedup, mailer)

	env := orders.Envelope{EventID: "ev-2", EventType: "SomethingElse"}
	val, err := json.Marshal(env)
	require.NoError(t, err)

	require.NoError(t, svc.HandleOrderConfirmed(context.Background(), kafkago.Message{Value: val}))
	assert.Empty(t, mailer.sent)
	assert.False(t, dedup.seen["ev-2"]) // tidak perlu dicatat
}

func TestHandleOrderConfirmedBadEnvelope(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestService(&fakeDedup{}, mailer)

	require.NoError(t, svc.HandleOrderConfirmed(context.Background(), kafkago.Message{Value: []byte("{bukan json")}))
	assert.Empty(t, mailer.sent)
}

func TestHandleOrderConfirmedMailFailureNotFatal(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("sendgrid down")}
	svc := newTestService(&fakeDedup{}, mailer)

	// error dari mailer tidak boleh bikin offset gagal commit
	require.NoError(t, svc.HandleOrderConfirmed(context.Background(), confirmedMessage(t, "ev-3")))
	assert.Empty(t, mailer.sent)
}

func TestConfirmationEmailRendering(t *testing.T) {
	p := orders.OrderConfirmedPayload{
		OrderID:     "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Email:       "u1@example.com",
		Lines:       []orders.LinePayload{{ProductName: "Canvas Tee", Size: "M", Quantity: 2, Price: "19.50"}},
		TotalAmount: "39.00",
		CreatedAt:   time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "Order Confirmed - Order #C1F90AE7", ConfirmationSubject(p))

	plain := ConfirmationPlain(p)
	assert.Contains(t, plain, "Order ID: #C1F90AE7")
	assert.Contains(t, plain, "Canvas Tee (size M) x2 @ $19.50")
	assert.Contains(t, plain, "Total Amount: $39.00")
	assert.Contains(t, plain, "March 14, 2026")

	html := ConfirmationHTML(p)
	assert.Contains(t, html, "<td>Canvas Tee</td>")
	assert.Contains(t, html, "$39.00")
}
