/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the projection engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration from environment
  2. Initialize SQLite store
  3. Create API handler with dependencies
  4. Start the scenario refresher
  5. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the refresher
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  DB_PATH=./data/projections.db ./server

  # Run with in-memory database
  DB_PATH=":memory:" ./server

  # Run on different port with verbose logging
  PORT=3000 LOG_LEVEL=debug ./server

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
  - api/refresher.go: Scheduled scenario re-projection
*/
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/warp/projection-engine/api"
	"github.com/warp/projection-engine/config"
	"github.com/warp/projection-engine/store/sqlite"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.NewConfig()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}
	logger.SetLevel(cfg.LogLevel)

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()

	// Initialize handler and router
	handler := api.NewHandler(store, logger)
	router := api.NewRouter(handler)

	// Scheduled scenario refresh
	refresher := api.NewRefresher(store, handler, logger)
	refresher.Spec = cfg.RefreshCron
	refresher.Enabled = cfg.RefreshEnabled
	if err := refresher.Start(); err != nil {
		logger.WithError(err).Fatal("failed to start refresher")
	}
	defer refresher.Stop()

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.WithField("port", cfg.Port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("server forced to shutdown")
	}

	logger.Info("server stopped")
}
