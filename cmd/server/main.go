/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the campsite booking assistant server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env, environment, then flags)
  2. Configure logging
  3. Load the booking policy (YAML/JSON file or built-in defaults)
  4. Initialize the booking store (SQLite or in-memory)
  5. Start tracing and the availability alert sweep
  6. Configure HTTP router and start the server

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT)
  -db      SQLite database path (overrides CAMPSITE_DB_PATH)
           Use ":memory:" for an in-memory database
  -policy  Policy document path (overrides CAMPSITE_POLICY_FILE)

ENVIRONMENT:
  See config/config.go for the full list.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (CAMPSITE_SHUTDOWN_TIMEOUT)
  3. Stop the alert sweep and flush traces
  4. Close the store

EXAMPLES:
  # Run with file database
  ./server -db="./data/campsite.db"

  # Run against a custom policy with no persistence
  CAMPSITE_STORE=memory ./server -policy=./policy.yaml

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment variables
  - factory/policy.go: Policy documents
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robbyrobaz/campsite-crm/api"
	"github.com/robbyrobaz/campsite-crm/booking"
	"github.com/robbyrobaz/campsite-crm/config"
	"github.com/robbyrobaz/campsite-crm/factory"
	"github.com/robbyrobaz/campsite-crm/generic"
	"github.com/robbyrobaz/campsite-crm/store"
	"github.com/robbyrobaz/campsite-crm/store/memory"
	"github.com/robbyrobaz/campsite-crm/store/sqlite"
	"github.com/robbyrobaz/campsite-crm/telemetry"
)

const serviceName = "campsite-crm"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Flags override the environment
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.StringVar(&cfg.PolicyFile, "policy", cfg.PolicyFile, "Policy document path (YAML or JSON)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	setupLogger(cfg)

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = log.With().Str("service", serviceName).Logger()
}

func run(cfg *config.Config) error {
	catalog, policy, err := loadPolicy(cfg.PolicyFile)
	if err != nil {
		return err
	}

	st, err := openStore(cfg, catalog)
	if err != nil {
		return err
	}
	defer st.Close()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	engine := booking.NewEngine(catalog, policy, st, generic.SystemClock{Location: loc})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Options{
		Enabled:     cfg.OTelEnabled,
		Endpoint:    cfg.OTelEndpoint,
		ServiceName: serviceName,
		Environment: cfg.Environment,
	})
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	sweeper, err := api.NewAlertScheduler(engine, st, cfg.AlertSweepInterval)
	if err != nil {
		return err
	}
	sweeper.Start()

	handler := api.NewHandler(engine, st)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(handler, cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().
			Int("port", cfg.Port).
			Str("store", cfg.Store).
			Str("environment", cfg.Environment).
			Msg("Starting server")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		err := server.Shutdown(shutdownCtx)
		if serr := sweeper.Stop(); serr != nil {
			log.Warn().Err(serr).Msg("Alert sweep did not stop cleanly")
		}
		if terr := shutdownTracing(shutdownCtx); terr != nil {
			log.Warn().Err(terr).Msg("Failed to flush traces")
		}
		if err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	err = g.Wait()
	log.Info().Msg("Server stopped")
	return err
}

func loadPolicy(path string) (*booking.Catalog, booking.Policy, error) {
	if path == "" {
		log.Info().Msg("Using built-in booking policy")
		return booking.DefaultCatalog(), booking.DefaultPolicy(), nil
	}
	catalog, policy, err := factory.NewPolicyFactory().LoadFile(path)
	if err != nil {
		return nil, booking.Policy{}, fmt.Errorf("load policy %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("areas", len(catalog.Areas())).Msg("Loaded booking policy")
	return catalog, policy, nil
}

func openStore(cfg *config.Config, catalog *booking.Catalog) (store.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		log.Warn().Msg("Using in-memory store, bookings are lost on restart")
		return memory.New(catalog), nil
	default:
		s, err := sqlite.New(cfg.DBPath, catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		log.Info().Str("path", cfg.DBPath).Msg("Opened SQLite store")
		return s, nil
	}
}
