// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"beautyboosters/config"

	"github.com/go-redis/redis/v8"
)

// CartCacheClient holds the session-scoped cart entries.
var CartCacheClient *redis.Client

// InitCartCache initializes the Redis client used for cart session storage.
func InitCartCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCartDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis (Cart): %w", err)
	}
	CartCacheClient = client
	return nil
}

// GetCartCacheClient returns the cart cache client, connecting on first use.
func GetCartCacheClient() (*redis.Client, error) {
	if CartCacheClient == nil {
		if err := InitCartCache(); err != nil {
			return nil, err
		}
	}
	return CartCacheClient, nil
}
