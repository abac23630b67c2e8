package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/revocation"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store/drivers/sqlite"
	"github.com/aussiebroadwan/invoicer/pkg/cryptox"
	"github.com/aussiebroadwan/invoicer/pkg/invoicesdk"
	"github.com/aussiebroadwan/invoicer/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()

	dir := t.TempDir()
	return Config{
		Issuer:                  "invoicer-app-test",
		Algorithm:               jwtx.AlgorithmEdDSA,
		NumKeys:                 2,
		AccessTTL:               time.Minute,
		RefreshTTL:              time.Hour,
		DBDriver:                DriverSQLite,
		DatabaseFile:            filepath.Join(dir, "invoicer.db"),
		PepperFile:              filepath.Join(dir, "pepper"),
		RevocationBackend:       RevocationCache,
		RevocationRetainExpired: true,
		Env:                     "test",
		LogLevel:                "error",
		LogFormat:               "text",
		Port:                    8080,
		ShutdownGracePeriod:     time.Second,
		HousekeepingInterval:    time.Hour,
	}
}

func TestApplicationServesRequests(t *testing.T) {
	cfg := testConfig(t)

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 2, app.keyManager.NumSigners())

	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	ctx := context.Background()
	sdk := invoicesdk.NewSDKClient(srv.URL)

	ready, err := sdk.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)

	require.NoError(t, sdk.Register(ctx, invoicesdk.RegisterRequest{
		Email:    "owner@example.com",
		Password: "Abcdef1!",
		Name:     "Owner",
	}))
	session, err := sdk.Login(ctx, "owner@example.com", "Abcdef1!")
	require.NoError(t, err)

	c, err := session.CreateClient(ctx, invoicesdk.CreateClientRequest{
		Name:  "Acme",
		Email: "acme@example.com",
	})
	require.NoError(t, err)
	require.Positive(t, c.ID)

	require.NoError(t, session.Logout(ctx))
	_, err = session.ListClients(ctx)
	require.True(t, invoicesdk.IsUnauthorized(err))

	require.NoError(t, app.Shutdown())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.DBDriver = "mysql"

	_, err := New(context.Background(), cfg)
	require.ErrorContains(t, err, "invalid configuration")
}

func TestMigrate(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	require.NoError(t, Migrate(context.Background(), cfg))

	// Migrations are idempotent.
	require.NoError(t, Migrate(context.Background(), cfg))

	db, err := sqlite.NewStore(cfg.DatabaseFile)
	require.NoError(t, err)
	defer db.Close()

	clients, err := db.Clients().ClientEmailTaken(context.Background(), "nobody@example.com", 0)
	require.NoError(t, err)
	require.False(t, clients)
}

func TestOpenRegistryBackends(t *testing.T) {
	t.Parallel()

	logger := NewLogger(Config{LogLevel: "error"})

	for _, backend := range []string{RevocationMemory, RevocationCache} {
		cfg := testConfig(t)
		cfg.RevocationBackend = backend

		reg, closeFn, err := OpenRegistry(context.Background(), cfg, prometheus.NewRegistry(), logger)
		require.NoError(t, err, backend)

		instrumented, ok := reg.(*revocation.Instrumented)
		require.True(t, ok)
		_, isSweeper := instrumented.Unwrap().(revocation.Sweeper)
		require.True(t, isSweeper, backend)
		require.NoError(t, closeFn())
	}

	cfg := testConfig(t)
	cfg.RevocationBackend = "etcd"
	_, _, err := OpenRegistry(context.Background(), cfg, prometheus.NewRegistry(), logger)
	require.Error(t, err)
}

func TestHandlerServesMetrics(t *testing.T) {
	cfg := testConfig(t)
	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Shutdown() })

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "invoicer_revocation")
}

func TestInitKeysFromFile(t *testing.T) {
	t.Parallel()

	logger := NewLogger(Config{LogLevel: "error"})
	cfg := testConfig(t)

	key, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	pemKey, err := cryptox.MarshalEd25519PEM(key)
	require.NoError(t, err)
	cfg.KeyFile = filepath.Join(t.TempDir(), "signing.pem")
	require.NoError(t, os.WriteFile(cfg.KeyFile, pemKey, 0o600))

	first, err := InitKeys(cfg, logger)
	require.NoError(t, err)
	require.Equal(t, 1, first.NumSigners())

	token, err := first.Sign(jwtx.NewClaims("1", jwtx.TokenUseAccess, cfg.Issuer, time.Minute, time.Now()))
	require.NoError(t, err)

	restarted, err := InitKeys(cfg, logger)
	require.NoError(t, err)
	_, err = restarted.Verifier.Verify(token)
	require.NoError(t, err)

	t.Run("missing file", func(t *testing.T) {
		missing := cfg
		missing.KeyFile = filepath.Join(t.TempDir(), "absent.pem")
		_, err := InitKeys(missing, logger)
		require.ErrorContains(t, err, "failed to read signing key")
	})
}
