package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orayew2002/rast-attendance/attendance"
	"github.com/orayew2002/rast-attendance/config"
	"github.com/orayew2002/rast-attendance/processor"
	"github.com/orayew2002/rast-attendance/server"
	"github.com/orayew2002/rast-attendance/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := server.NewLogger(os.Stdout, cfg.App)
	slog.SetDefault(logger)

	store, err := newStore(context.Background(), cfg.Storage)
	if err != nil {
		logger.Error("Failed to initialize report storage", "error", err)
		os.Exit(1)
	}

	proc := processor.New(attendance.New(), logger)
	handler := server.NewHandler(proc, store, cfg.Upload.MaxBytes, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.NewRouter(handler, cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server started", "addr", srv.Addr, "storage", cfg.Storage.Type)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("Server stopping")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exited properly")
}

// newStore returns nil when archiving is disabled.
func newStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Type {
	case config.StorageLocal:
		return storage.NewLocalStore(cfg.Dir)
	case config.StorageR2:
		return storage.NewR2Store(ctx, cfg)
	default:
		return nil, nil
	}
}
