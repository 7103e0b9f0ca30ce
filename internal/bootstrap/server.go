package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonesrussell/problem-finder/internal/api"
	"github.com/jonesrussell/problem-finder/internal/catalog"
	"github.com/jonesrussell/problem-finder/internal/config"
	"github.com/jonesrussell/problem-finder/internal/events"
	"github.com/jonesrussell/problem-finder/internal/logger"
)

const shutdownTimeout = 30 * time.Second

// SetupHTTPServer builds the router and wraps it in an http.Server.
func SetupHTTPServer(
	cfg *config.Config,
	cat *catalog.Catalog,
	publisher *events.Publisher,
	log logger.Logger,
) (*http.Server, error) {
	router, err := api.NewRouter(cat, publisher, cfg, log)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, nil
}

// RunWithGracefulShutdown runs the server and shuts it down cleanly on
// SIGINT/SIGTERM or context cancellation.
func RunWithGracefulShutdown(ctx context.Context, srv *http.Server, log logger.Logger) error {
	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		log.Info("Shutdown signal received", logger.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info("Context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
