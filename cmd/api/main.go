package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"tasklist/internal/config"
	tasklisthttp "tasklist/internal/http"
	"tasklist/internal/logging"
	"tasklist/internal/middleware"
	"tasklist/internal/persist"
	"tasklist/internal/settings"
	"tasklist/internal/storage"
	"tasklist/internal/tasklist"
)

func main() {
	printToken := flag.Bool("print-token", false, "print a signed auth token and exit")
	tokenTTL := flag.Duration("token-ttl", 30*24*time.Hour, "lifetime of the token printed by -print-token")
	flag.Parse()

	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background(), *printToken, *tokenTTL); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, printToken bool, tokenTTL time.Duration) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if printToken {
		if cfg.Auth.Secret == "" {
			return fmt.Errorf("AUTH_SECRET must be set to print a token")
		}
		token, err := middleware.SignToken(cfg.Auth.Secret, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	}

	logger, closeLogger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer closeLogger()
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"store_driver", cfg.Store.Driver,
		"auth_mode", cfg.Auth.Mode,
		"log_level", cfg.LogLevel,
	)

	// Durable store
	var store storage.KV
	switch cfg.Store.Driver {
	case "postgres":
		pg, err := storage.OpenPostgres(cfg.Store.DB.DSN())
		if err != nil {
			return err
		}
		defer pg.Close()
		store = pg
		logger.Info("database connected")
	case "memory":
		store = storage.NewMemory()
		logger.Warn("using in-memory store: state is lost on exit")
	default:
		fs, err := storage.NewFile(cfg.Store.DataDir)
		if err != nil {
			return err
		}
		store = fs
		logger.Info("file store opened", "dir", cfg.Store.DataDir)
	}

	adapter := persist.New(store, cfg.Store.Namespace, logger)
	list := tasklist.New(ctx, adapter)
	settingsStore := settings.New(adapter)

	auth, err := middleware.NewAuth(middleware.AuthConfig{
		Mode:   cfg.Auth.Mode,
		Secret: cfg.Auth.Secret,
	})
	if err != nil {
		return fmt.Errorf("failed to create auth middleware: %w", err)
	}

	srv := tasklisthttp.NewServer(cfg.ServerPort, logger, list, settingsStore, auth)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", cfg.ServerPort)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
