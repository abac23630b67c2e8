package revocation

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is an in-process registry whose entries expire together with the
// token they revoke.
type Cache struct {
	c   *gocache.Cache
	now func() time.Time
}

// NewCache purges expired entries every cleanupInterval.
func NewCache(cleanupInterval time.Duration) *Cache {
	return &Cache{
		c:   gocache.New(gocache.NoExpiration, cleanupInterval),
		now: time.Now,
	}
}

func (c *Cache) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	c.c.Set(tokenID, struct{}{}, retention(expiresAt, c.now()))
	return nil
}

func (c *Cache) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := c.c.Get(tokenID)
	return ok, nil
}

// Sweep forces removal of expired entries ahead of the janitor.
func (c *Cache) Sweep(_ context.Context, _ time.Time) (int, error) {
	before := c.c.ItemCount()
	c.c.DeleteExpired()
	return before - c.c.ItemCount(), nil
}
