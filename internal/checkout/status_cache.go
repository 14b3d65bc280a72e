package checkout

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/clerin-codes/canvas/internal/orders"
	"github.com/clerin-codes/canvas/internal/redisx"
)

// RedisStatusCache cache status order supaya GET status cepat. Best effort.
type RedisStatusCache struct {
	R   *redis.Client
	Log *zap.Logger
}

func (c *RedisStatusCache) SetStatus(ctx context.Context, orderID string, status orders.Status) {
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	val := fmt.Sprintf(`{"status":%q}`, string(status))
	if err := c.R.Set(ctx, key, val, redisx.TTLStatusCache).Err(); err != nil {
		c.Log.Warn("order status cache set", zap.String("order_id", orderID), zap.Error(err))
	}
}
