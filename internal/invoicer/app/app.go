package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/invoicer/internal/invoicer/http"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/revocation"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/service"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/aussiebroadwan/invoicer/pkg/cryptox"
	"github.com/aussiebroadwan/invoicer/pkg/jwtx"
	"github.com/aussiebroadwan/invoicer/pkg/slogx"
)

// BuildVersion is overridden at build time with
// -ldflags "-X github.com/aussiebroadwan/invoicer/internal/invoicer/app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application encapsulates the invoicer service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db            store.Store
	keyManager    *jwtx.KeyManager
	registry      revocation.Registry
	closeRegistry func() error
	metrics       *httpapi.Metrics

	credentialService   *service.CredentialService
	tokenService        *service.TokenService
	clientService       *service.ClientService
	invoiceService      *service.InvoiceService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the service logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "invoicer",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates an Application with every dependency initialized and the
// database migrated.
func New(ctx context.Context, cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg:     cfg,
		logger:  NewLogger(cfg),
		metrics: httpapi.NewMetrics(),
	}

	cryptox.SetPepperPath(cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	keyManager, err := InitKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keyManager = keyManager

	registry, closeRegistry, err := OpenRegistry(ctx, cfg, app.metrics.Registry, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.registry = registry
	app.closeRegistry = closeRegistry

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until ctx is cancelled, a shutdown
// signal arrives or the server fails.
func (app *Application) Run(ctx context.Context) error {
	app.housekeepingService.Start()

	app.logger.Info("invoicer starting",
		"port", app.cfg.Port,
		"db_driver", app.cfg.DBDriver,
		"revocation_backend", app.cfg.RevocationBackend,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		_ = app.Shutdown()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		app.logger.Info("context cancelled, shutting down")
	}

	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests, stops the housekeeping worker and
// closes the backends.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down invoicer...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	var errs []error
	if err := app.closeRegistry(); err != nil {
		app.logger.Error("error closing revocation registry", "error", err)
		errs = append(errs, err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		errs = append(errs, err)
	}

	app.logger.Info("invoicer stopped")
	return errors.Join(errs...)
}

// Migrate applies the database migrations for cfg and exits.
func Migrate(ctx context.Context, cfg Config) error {
	logger := NewLogger(cfg)

	db, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied", "db_driver", cfg.DBDriver)
	return nil
}

func (app *Application) initDatabase(ctx context.Context) error {
	db, err := OpenStore(ctx, app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "db_driver", app.cfg.DBDriver)
	return nil
}

func (app *Application) initServices() {
	app.credentialService = &service.CredentialService{Store: app.db}
	app.tokenService = &service.TokenService{
		KeyManager: app.keyManager,
		Registry:   app.registry,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}
	app.clientService = &service.ClientService{Store: app.db}
	app.invoiceService = &service.InvoiceService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.registry,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.RevocationRetainExpired,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		app.registry,
		BuildVersion,
		app.db,
		app.metrics,
		app.logger,
	)

	router.CredentialService = app.credentialService
	router.TokenService = app.tokenService
	router.ClientService = app.clientService
	router.InvoiceService = app.invoiceService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
