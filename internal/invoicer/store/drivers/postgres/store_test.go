package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store/drivers/postgres"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store/storetest"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a throwaway postgres container and returns its DSN.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "invoicer",
			"POSTGRES_PASSWORD": "invoicer",
			"POSTGRES_DB":       "invoicer",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://invoicer:invoicer@%s:%s/invoicer?sslmode=disable", host, port.Port())
}

func TestStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	dsn := startPostgres(t)
	ctx := context.Background()

	// Migrations must be idempotent across restarts.
	first, err := postgres.NewStore(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, first.ApplyMigrations())
	require.NoError(t, first.ApplyMigrations())
	require.NoError(t, first.Close())

	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := postgres.NewStore(ctx, dsn)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.ApplyMigrations())
		_, err = s.Exec(ctx, `TRUNCATE invoices, clients, users RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
		return s
	})
}
