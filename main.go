package main

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

	"github.com/msomdec/songbook/internal/config"
	"github.com/msomdec/songbook/internal/domain"
	"github.com/msomdec/songbook/internal/handler"
	"github.com/msomdec/songbook/internal/repository/postgres"
	"github.com/msomdec/songbook/internal/repository/sqlite"
	"github.com/msomdec/songbook/internal/service"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg := config.Default()

	app := &cli.App{
		Name:  "songbook",
		Usage: "Keep a list of your favorite songs",
		Flags: config.Flags(&cfg),
		Action: func(c *cli.Context) error {
			return serve(c.Context, cfg)
		},
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Apply database migrations and exit",
				Action: func(c *cli.Context) error {
					return migrate(c.Context, cfg)
				},
			},
		},
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Error("songbook failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.Config) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)
	return nil
}

func openDatabase(ctx context.Context, cfg config.Config) (domain.Database, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
}

func openMigrated(ctx context.Context, cfg config.Config) (domain.Database, error) {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	version, err := db.SchemaVersion(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	slog.Info("database migrations applied", "driver", cfg.DBDriver, "version", version)
	return db, nil
}

func migrate(ctx context.Context, cfg config.Config) error {
	if err := cfg.ValidateStore(); err != nil {
		return err
	}
	if err := setupLogger(cfg); err != nil {
		return err
	}
	db, err := openMigrated(ctx, cfg)
	if err != nil {
		return err
	}
	return db.Close()
}

func serve(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := setupLogger(cfg); err != nil {
		return err
	}

	db, err := openMigrated(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)
	authService := service.NewAuthService(db.Users(), hasher, tokens, cfg.StoreTimeout)
	favoriteService := service.NewFavoriteService(db.Favorites(), db.Users(), cfg.StoreTimeout)

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           handler.NewRouter(authService, favoriteService, cfg.CookieSecure),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
