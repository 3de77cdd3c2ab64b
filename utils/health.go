package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	healthProbeTimeout = 3 * time.Second
	healthInterval     = time.Minute
)

// HealthStatus is the result of one probe round, keyed by dependency name.
type HealthStatus struct {
	Checks    map[string]bool `json:"checks"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// Healthy reports whether every dependency answered.
func (h HealthStatus) Healthy() bool {
	for _, ok := range h.Checks {
		if !ok {
			return false
		}
	}
	return true
}

type healthProbe struct {
	name string
	ping func(ctx context.Context) error
}

var (
	healthMu   sync.RWMutex
	lastHealth HealthStatus
)

// GetHealthStatus returns the last stored snapshot. CheckedAt is zero before the first round.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return lastHealth
}

func healthProbes(redisClients []*redis.Client, mongoClient *mongo.Client) []healthProbe {
	probes := make([]healthProbe, 0, len(redisClients)+1)
	for i, client := range redisClients {
		client := client
		probes = append(probes, healthProbe{
			name: fmt.Sprintf("redis-%d", i),
			ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
	}
	probes = append(probes, healthProbe{
		name: "mongo",
		ping: func(ctx context.Context) error {
			if mongoClient == nil {
				return fmt.Errorf("mongo client not initialized")
			}
			return mongoClient.Ping(ctx, nil)
		},
	})
	return probes
}

func runHealthProbes(ctx context.Context, probes []healthProbe) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	status := HealthStatus{Checks: make(map[string]bool, len(probes)), CheckedAt: time.Now()}
	for _, p := range probes {
		err := p.ping(ctx)
		if err != nil {
			GetLogger().Warn("Health probe failed", zap.String("dependency", p.name), zap.Error(err))
		}
		status.Checks[p.name] = err == nil
	}

	healthMu.Lock()
	lastHealth = status
	healthMu.Unlock()
	return status
}

// CheckHealth probes every dependency once and stores the snapshot.
func CheckHealth(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client) HealthStatus {
	return runHealthProbes(ctx, healthProbes(redisClients, mongoClient))
}

// StartHealthMonitor probes immediately, then every minute until ctx is done.
func StartHealthMonitor(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client) {
	probes := healthProbes(redisClients, mongoClient)
	go func() {
		runHealthProbes(ctx, probes)
		ticker := time.NewTicker(healthInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runHealthProbes(ctx, probes)
			}
		}
	}()
}
