package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces revocation entries in a shared redis database.
const KeyPrefix = "invoicer:revoked:"

// Redis is a registry shared by every replica pointing at the same redis
// database. Entries carry a TTL so redis drops them once the token expires.
type Redis struct {
	c   *redis.Client
	now func() time.Time
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedis(cfg RedisConfig) *Redis {
	return &Redis{
		c: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		now: time.Now,
	}
}

func (r *Redis) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := retention(expiresAt, r.now())
	if err := r.c.Set(ctx, KeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revocation: redis set: %w", err)
	}
	return nil
}

func (r *Redis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.c.Exists(ctx, KeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("revocation: redis exists: %w", err)
	}
	return n > 0, nil
}

// Ping verifies the redis connection is still alive.
func (r *Redis) Ping(ctx context.Context) error {
	return r.c.Ping(ctx).Err()
}

func (r *Redis) Close() error { return r.c.Close() }
