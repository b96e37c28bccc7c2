package ratesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/homewise/affordability/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisStore shares quotes between service instances through Redis,
// encoded as JSON.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the Redis server at addr.
func NewRedisStore(addr string) *RedisStore {
	return NewRedisStoreWithClient(redis.NewClient(&redis.Options{
		Addr: addr,
	}))
}

// NewRedisStoreWithClient uses an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) (domain.RateQuote, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RateQuote{}, false, nil
	}
	if err != nil {
		return domain.RateQuote{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var quote domain.RateQuote
	if err := json.Unmarshal(data, &quote); err != nil {
		return domain.RateQuote{}, false, fmt.Errorf("decode cached quote: %w", err)
	}
	return quote, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, quote domain.RateQuote, ttl time.Duration) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection, used by the readiness probe.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
