package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jortega/stock-management-api/internal/application/analytics"
	"github.com/jortega/stock-management-api/pkg/config"
)

const defaultTTL = time.Minute

var _ analytics.Cache = (*RedisCache)(nil)
var _ analytics.Cache = (*NoopCache)(nil)

// RedisCache caché de respuestas de dashboard sobre Redis, valores en JSON con TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NoopCache implementación nula: se usa cuando REDIS_ADDR no está configurado.
type NoopCache struct{}

// New construye la caché según configuración. Addr vacío devuelve la
// implementación nula; con Addr hace ping antes de aceptar el cliente.
func New(cfg config.RedisConfig) (analytics.Cache, error) {
	if cfg.Addr == "" {
		return &NoopCache{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.TTLSecs) * time.Second
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

// Get recupera y decodifica el valor de una clave. False si no existe.
func (c *RedisCache) Get(ctx context.Context, key string, v any) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return false, fmt.Errorf("decode cache value: %w", err)
	}
	return true, nil
}

// Set codifica y guarda el valor con el TTL configurado.
func (c *RedisCache) Set(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (n *NoopCache) Get(ctx context.Context, key string, v any) (bool, error) { return false, nil }

func (n *NoopCache) Set(ctx context.Context, key string, v any) error { return nil }
