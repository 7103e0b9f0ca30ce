// Package bootstrap handles application initialization and lifecycle
// management for the problem-finder service.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jonesrussell/problem-finder/internal/catalog"
	"github.com/jonesrussell/problem-finder/internal/fixtures"
	"github.com/jonesrussell/problem-finder/internal/logger"
	"github.com/jonesrussell/problem-finder/internal/store"
)

const version = "dev"

// Start initializes and runs the service until shutdown.
func Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Phase 1: config and logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: fixture dataset (always available, optionally overridden)
	fixtureStore, err := fixtures.New(log)
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}
	if cfg.Fixtures.Path != "" {
		if watchErr := fixtureStore.Watch(ctx, cfg.Fixtures.Path); watchErr != nil {
			log.Warn("Fixture override watching disabled", logger.Error(watchErr))
		}
	}

	// Phase 3: backing store (optional; absence means fixture mode)
	var problemStore store.Store
	db, err := SetupDatabase(cfg, log)
	switch {
	case err != nil:
		// stay up on fixtures rather than refuse to start
		log.Warn("Backing store unavailable, serving fixture data", logger.Error(err))
	case db != nil:
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				log.Error("Failed to close database", logger.Error(closeErr))
			}
		}()
		problemStore = store.NewProblemStore(db.DB(), cfg.Database.QueryMode, log)
	default:
		log.Info("No backing store configured, serving fixture data")
	}

	// Phase 4: optional event publisher
	publisher := SetupEventPublisher(cfg, log)

	// Phase 5: catalog and HTTP server
	cat := catalog.New(problemStore, fixtureStore, publisher, log)

	srv, err := SetupHTTPServer(cfg, cat, publisher, log)
	if err != nil {
		return fmt.Errorf("failed to set up HTTP server: %w", err)
	}

	log.Info("Starting HTTP server",
		logger.String("host", cfg.Server.Host),
		logger.Int("port", cfg.Server.Port),
		logger.Bool("live", problemStore != nil),
	)

	if runErr := RunWithGracefulShutdown(ctx, srv, log); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
