package revocation

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Instrumented counts revocations and rejected lookups on top of another
// Registry.
type Instrumented struct {
	next     Registry
	revoked  prometheus.Counter
	rejected prometheus.Counter
}

// WithMetrics registers the revocation counters on reg and wraps next.
func WithMetrics(next Registry, reg prometheus.Registerer) *Instrumented {
	i := &Instrumented{
		next: next,
		revoked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "invoicer",
			Subsystem: "revocation",
			Name:      "revoked_total",
			Help:      "Tokens revoked through logout.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "invoicer",
			Subsystem: "revocation",
			Name:      "rejected_total",
			Help:      "Requests carrying a revoked token.",
		}),
	}
	reg.MustRegister(i.revoked, i.rejected)
	return i
}

func (i *Instrumented) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := i.next.Revoke(ctx, tokenID, expiresAt); err != nil {
		return err
	}
	i.revoked.Inc()
	return nil
}

func (i *Instrumented) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := i.next.IsRevoked(ctx, tokenID)
	if err == nil && revoked {
		i.rejected.Inc()
	}
	return revoked, err
}

// Sweep forwards to the wrapped registry when it supports sweeping.
func (i *Instrumented) Sweep(ctx context.Context, now time.Time) (int, error) {
	if s, ok := i.next.(Sweeper); ok {
		return s.Sweep(ctx, now)
	}
	return 0, nil
}

// Unwrap returns the wrapped registry.
func (i *Instrumented) Unwrap() Registry { return i.next }
