package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/clerin-codes/canvas/internal/kafka"
	"github.com/clerin-codes/canvas/internal/orders"
)

type Store interface {
	CreateOrder(ctx context.Context, userID string) (*orders.Order, error)
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type CartCache interface {
	Delete(ctx context.Context, userID string) error
}

type StatusCache interface {
	SetStatus(ctx context.Context, orderID string, status orders.Status)
}

type Service struct {
	store    Store
	producer Publisher
	carts    CartCache
	statuses StatusCache
	log      *zap.Logger
	service  string
}

func NewService(store Store, producer Publisher, carts CartCache, statuses StatusCache, log *zap.Logger, service string) *Service {
	return &Service{store: store, producer: producer, carts: carts, statuses: statuses, log: log, service: service}
}

// Checkout menjalankan transaksi cart→order, lalu (setelah commit) update
// cache dan publish event konfirmasi. Publish fire-and-forget: gagal di sini
// tidak pernah membatalkan order yang sudah tersimpan.
func (s *Service) Checkout(ctx context.Context, userID, email, userName, traceID string) (*orders.Order, error) {
	o, err := s.store.CreateOrder(ctx, userID)
	if err != nil {
		return nil, err
	}

	// cart sudah kosong, buang cache basi
	if err := s.carts.Delete(ctx, userID); err != nil {
		s.log.Warn("cart cache delete", zap.String("user_id", userID), zap.Error(err))
	}
	s.statuses.SetStatus(ctx, o.ID, o.Status)

	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderConfirmed,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.service,
		TraceID:       traceID,
		CorrelationID: o.ID,
		Payload:       kafkax.MustMarshal(orders.ConfirmedPayload(o, email, userName)),
	}
	s.producer.Publish(orders.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderConfirmed)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	s.log.Info("checkout completed",
		zap.String("order_id", o.ID),
		zap.String("user_id", userID),
		zap.String("total_amount", o.TotalAmount.StringFixed(2)))
	return o, nil
}
