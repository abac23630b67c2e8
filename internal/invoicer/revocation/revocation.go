// Package revocation tracks access and refresh tokens that were logged out
// before their natural expiry.
package revocation

import (
	"context"
	"time"
)

// Registry records revoked token ids (the jti claim). Revoke is idempotent and
// every implementation is safe for concurrent use.
type Registry interface {
	// Revoke marks tokenID as unusable. expiresAt is the token's own expiry,
	// after which the entry may be forgotten.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Sweeper is implemented by registries that need to be told when to drop
// entries for tokens that have expired on their own.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// minRetention keeps entries for tokens revoked right at (or just after)
// their expiry, so clock skew between replicas cannot resurrect them.
const minRetention = time.Minute

func retention(expiresAt, now time.Time) time.Duration {
	ttl := expiresAt.Sub(now)
	if ttl < minRetention {
		return minRetention
	}
	return ttl
}
