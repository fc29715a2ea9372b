package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ManuelReschke/RechargeFox/internal/pkg/env"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/logger"
)

var client *redis.Client

// SetupCache initializes the connection to the Redis server that backs the
// session store.
func SetupCache() {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnv("CACHE_PORT", "6379")

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		logger.L().Warn("could not connect to cache", zap.String("addr", client.Options().Addr), zap.Error(err))
	} else {
		logger.L().Info("connected to cache", zap.String("addr", client.Options().Addr), zap.String("reply", pong))
	}
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

// SetClient replaces the client, e.g. with one pointing at a test server.
func SetClient(c *redis.Client) {
	client = c
}

// Ping reports whether the cache answers within the context deadline.
func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("cache not initialized")
	}
	return client.Ping(ctx).Err()
}
