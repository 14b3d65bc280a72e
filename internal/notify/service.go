package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/clerin-codes/canvas/internal/kafka"
	"github.com/clerin-codes/canvas/internal/orders"
	"github.com/clerin-codes/canvas/internal/redisx"
)

type Deduper interface {
	// Seen menandai event sekaligus lapor apakah sudah pernah diproses.
	Seen(ctx context.Context, eventID string) bool
}

// RedisDedup dedup event via Redis (pakai event_id) supaya redelivery tidak
// double-email.
type RedisDedup struct {
	R       *redis.Client
	Service string
}

func (d *RedisDedup) Seen(ctx context.Context, eventID string) bool {
	key := fmt.Sprintf(redisx.KeyDedup, d.Service, eventID)
	exists, _ := redisx.Exists(ctx, d.R, key)
	if exists {
		return true
	}
	_ = d.R.Set(ctx, key, "1", redisx.TTLDedup).Err()
	return false
}

// Service adalah Notification Sink: konsumsi event order.confirmed dan kirim
// email konfirmasi. Best effort — kegagalan kirim cuma dicatat, tidak pernah
// menyentuh order atau cart.
type Service struct {
	Dedup  Deduper
	Mailer Mailer
	Log    *zap.Logger
}

// HandleOrderConfirmed dipasang sebagai handler consumer. Return nil di semua
// jalur kecuali error infrastruktur, supaya offset tetap di-commit dan pesan
// rusak tidak di-retry selamanya.
func (s *Service) HandleOrderConfirmed(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		s.Log.Warn("bad envelope, skipping", zap.Error(err))
		return nil
	}
	if env.EventType != orders.EventOrderConfirmed {
		return nil
	}

	if s.Dedup.Seen(ctx, env.EventID) {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderConfirmedPayload](env.Payload)
	if err != nil {
		s.Log.Warn("bad payload, skipping", zap.String("event_id", env.EventID), zap.Error(err))
		return nil
	}

	if err := s.Mailer.Send(ctx, p.Email, ConfirmationSubject(p), ConfirmationPlain(p), ConfirmationHTML(p)); err != nil {
		// email gagal tidak boleh dianggap fatal
		s.Log.Error("confirmation email failed",
			zap.String("order_id", p.OrderID),
			zap.String("to", p.Email),
			zap.Error(err))
		return nil
	}

	s.Log.Info("confirmation email sent", zap.String("order_id", p.OrderID), zap.String("to", p.Email))
	return nil
}
