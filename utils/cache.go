// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"fayano/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient holds wizard sessions and assistant context.
	CacheClient *redis.Client
	// LoyaltyClient holds the loyalty counters.
	LoyaltyClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitRedis connects every Redis client the service uses.
func InitRedis() {
	GetCacheClient()
	GetLoyaltyClient()
}

// GetCacheClient returns the session/context cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
	}
	return CacheClient
}

// GetLoyaltyClient returns the Redis client for loyalty counters.
func GetLoyaltyClient() *redis.Client {
	if LoyaltyClient == nil {
		LoyaltyClient = newRedisClient(config.AppConfig.RedisLoyaltyDB, "Loyalty")
	}
	return LoyaltyClient
}

// RedisClients lists the initialised clients, for health monitoring and shutdown.
func RedisClients() []*redis.Client {
	var clients []*redis.Client
	for _, c := range []*redis.Client{CacheClient, LoyaltyClient} {
		if c != nil {
			clients = append(clients, c)
		}
	}
	return clients
}
