package ratelimit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// Config holds the rate limiter configuration. The module is only
// registered when REDIS_ADDR is set, so there is no default address.
type Config struct {
	RedisAddr     string        `env:"REDIS_ADDR,required"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	AuthLimit     int           `env:"AUTH_RATE_LIMIT" envDefault:"10"`
	AuthWindow    time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"1m"`
	KeyPrefix     string        `env:"RATE_LIMIT_PREFIX" envDefault:"taskboard:ratelimit:"`
}

// Module provides the auth-endpoint rate limiter as a mono module.
type Module struct {
	config  Config
	client  *redis.Client
	limiter *SlidingWindowLimiter
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new rate limiter module.
func NewModule() *Module {
	return &Module{}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "ratelimit"
}

// Start connects to Redis and builds the limiter.
func (m *Module) Start(ctx context.Context) error {
	if err := env.Parse(&m.config); err != nil {
		return fmt.Errorf("failed to parse rate limit config: %w", err)
	}

	m.client = redis.NewClient(&redis.Options{
		Addr:     m.config.RedisAddr,
		Password: m.config.RedisPassword,
		DB:       m.config.RedisDB,
	})

	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", m.config.RedisAddr, err)
	}

	m.limiter = NewSlidingWindowLimiter(m.client, m.config.AuthLimit, m.config.AuthWindow, m.config.KeyPrefix)
	log.Printf("[ratelimit] Module started (redis: %s, limit: %d/%s)", m.config.RedisAddr, m.config.AuthLimit, m.config.AuthWindow)
	return nil
}

// Stop closes the Redis connection.
func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			log.Printf("[ratelimit] Error closing Redis connection: %v", err)
		}
	}
	log.Println("[ratelimit] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.client == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "redis client not initialized",
		}
	}
	if err := m.client.Ping(ctx).Err(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"redis": m.config.RedisAddr,
		},
	}
}
