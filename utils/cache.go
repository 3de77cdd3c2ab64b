package utils

import (
	"context"
	"sync"
	"time"

	"reviewdesk/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// redisHandle lazily connects one logical Redis database.
type redisHandle struct {
	once   sync.Once
	name   string
	db     func() int
	client *redis.Client
}

func (h *redisHandle) get() *redis.Client {
	h.once.Do(func() {
		client := redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       h.db(),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			GetLogger().Fatal("Redis unreachable", zap.String("client", h.name), zap.Error(err))
		}
		h.client = client
	})
	return h.client
}

var (
	sessionRedis = &redisHandle{name: "session", db: func() int { return config.AppConfig.RedisSessionDB }}
	authRedis    = &redisHandle{name: "auth-cache", db: func() int { return config.AppConfig.RedisAuthDB }}
)

// GetSessionClient returns the client holding request sessions and flash bags.
func GetSessionClient() *redis.Client {
	return sessionRedis.get()
}

// GetAuthCacheClient returns the client caching verified callers and revoked tokens.
func GetAuthCacheClient() *redis.Client {
	return authRedis.get()
}

// InitRedis connects every Redis client up front so a bad address fails at startup.
func InitRedis() {
	GetSessionClient()
	GetAuthCacheClient()
}
