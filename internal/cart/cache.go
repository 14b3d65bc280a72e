package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/clerin-codes/canvas/internal/redisx"
)

var ErrCacheMiss = errors.New("cart cache miss")

// RedisCache cache-aside untuk cart. Redis bukan source of truth; isi basi
// cukup di-delete, Postgres yang benar.
type RedisCache struct{ R *redis.Client }

func (c *RedisCache) Get(ctx context.Context, userID string) (*Cart, error) {
	s, err := c.R.Get(ctx, fmt.Sprintf(redisx.KeyCart, userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var crt Cart
	if err := json.Unmarshal([]byte(s), &crt); err != nil {
		return nil, err
	}
	return &crt, nil
}

func (c *RedisCache) Set(ctx context.Context, crt *Cart) error {
	b, err := json.Marshal(crt)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, fmt.Sprintf(redisx.KeyCart, crt.UserID), b, redisx.TTLCartCache).Err()
}

func (c *RedisCache) Delete(ctx context.Context, userID string) error {
	return c.R.Del(ctx, fmt.Sprintf(redisx.KeyCart, userID)).Err()
}
