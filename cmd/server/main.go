package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garnizeh/bectrack/api"
	dbfs "github.com/garnizeh/bectrack/db"
	"github.com/garnizeh/bectrack/internal/config"
	"github.com/garnizeh/bectrack/internal/db"
	"github.com/garnizeh/bectrack/internal/repository/memory"
	"github.com/garnizeh/bectrack/internal/repository/sqlite"
	"github.com/garnizeh/bectrack/internal/seed"
	"github.com/garnizeh/bectrack/internal/validation"
	"github.com/garnizeh/bectrack/pkg/repository"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	logger.Info("starting bectrack server",
		slog.String("version", version),
		slog.String("build_time", buildTime),
		slog.String("storage", cfg.Storage),
	)

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", slog.Any("err", err))
		os.Exit(1)
	}

	if cfg.Seed {
		empty, err := seed.Empty(ctx, store)
		if err != nil {
			logger.Error("failed to inspect store", slog.Any("err", err))
			os.Exit(1)
		}
		if empty {
			if err := seed.Load(ctx, store, time.Now().UTC()); err != nil {
				logger.Error("failed to seed store", slog.Any("err", err))
				os.Exit(1)
			}
			logger.Info("sample data loaded")
		}
	}

	validator, err := validation.New(dbfs.Schemas)
	if err != nil {
		logger.Error("failed to load schemas", slog.Any("err", err))
		os.Exit(1)
	}

	handler := api.SetupRoutes(cfg, version, buildTime, store, validator)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", slog.Any("err", err))
	}
	if err := closeStore(); err != nil {
		logger.Error("error closing store", slog.Any("err", err))
	}

	logger.Info("server exited")
}

// openStore builds the configured store and returns its release function.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Store, func() error, error) {
	if cfg.Storage != config.StorageSQLite {
		return memory.New(), func() error { return nil }, nil
	}

	conn, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx, conn, dbfs.Migrations); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return sqlite.New(conn, logger), conn.Close, nil
}
