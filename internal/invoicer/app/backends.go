package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/revocation"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store/drivers/postgres"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store/drivers/sqlite"
	"github.com/prometheus/client_golang/prometheus"
)

// OpenStore connects to the configured database. Migrations are not applied.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.DBDriver {
	case DriverPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		db, err := postgres.NewStore(connectCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, nil
	case DriverSQLite:
		db, err := sqlite.NewStore(cfg.DatabaseFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database %q: %w", cfg.DatabaseFile, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// OpenRegistry builds the configured revocation backend, instrumented on reg.
// The returned close function releases the backend's connections.
func OpenRegistry(ctx context.Context, cfg Config, reg prometheus.Registerer, logger *slog.Logger) (revocation.Registry, func() error, error) {
	var (
		backend revocation.Registry
		closeFn = func() error { return nil }
	)

	switch cfg.RevocationBackend {
	case RevocationRedis:
		r := revocation.NewRedis(revocation.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := r.Ping(pingCtx); err != nil {
			_ = r.Close()
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		backend, closeFn = r, r.Close
	case RevocationCache:
		backend = revocation.NewCache(cfg.HousekeepingInterval)
	case RevocationMemory:
		backend = revocation.NewMemory()
	default:
		return nil, nil, fmt.Errorf("unsupported revocation backend %q", cfg.RevocationBackend)
	}

	logger.Info("revocation registry ready",
		"backend", cfg.RevocationBackend,
		"retain_expired", cfg.RevocationRetainExpired,
	)

	return revocation.WithMetrics(backend, reg), closeFn, nil
}
