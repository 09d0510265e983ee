// File: database/repository/cart/redis.go
package cartRepo

import (
	"context"
	"time"

	"beautyboosters/services/cart"

	"github.com/go-redis/redis/v8"
)

const cartKeyPrefix = "session:"

// RedisSessionStorage persists one session's "cart" entry as a JSON string.
type RedisSessionStorage struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisSessionStorage(client *redis.Client, sessionID string, ttl time.Duration) *RedisSessionStorage {
	return &RedisSessionStorage{client: client, key: CartKey(sessionID), ttl: ttl}
}

// CartKey is the redis key holding a session's cart.
func CartKey(sessionID string) string {
	return cartKeyPrefix + sessionID + ":cart"
}

func (s *RedisSessionStorage) Load(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, cart.ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisSessionStorage) Save(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Set(ctx, s.key, data, s.ttl).Err()
}

func (s *RedisSessionStorage) Delete(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Del(ctx, s.key).Err()
}

// Factory returns a cart.StorageFactory bound to the given client.
func Factory(client *redis.Client, ttl time.Duration) cart.StorageFactory {
	return func(sessionID string) cart.SessionStorage {
		return NewRedisSessionStorage(client, sessionID, ttl)
	}
}
