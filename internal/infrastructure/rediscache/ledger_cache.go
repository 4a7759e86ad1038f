// Package rediscache implementa el cache de lectura de ledger/overview sobre
// Redis. Es best-effort: un Redis caído degrada a leer siempre del store.
package rediscache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/prestamos-pro/internal/application/lending"
)

var _ lending.LedgerCache = (*LedgerCache)(nil)

// LedgerCache adaptador de LedgerCache sobre go-redis.
type LedgerCache struct {
	client *redis.Client
}

// New construye el cache y verifica la conexión.
func New(ctx context.Context, addr, password string, db int) (*LedgerCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &LedgerCache{client: client}, nil
}

// Get retorna el valor y true en hit; (nil, false) en miss o error.
func (c *LedgerCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set guarda el valor con TTL.
func (c *LedgerCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete invalida una o más claves.
func (c *LedgerCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Close cierra la conexión.
func (c *LedgerCache) Close() error {
	return c.client.Close()
}
