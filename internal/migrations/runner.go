// Package migrations applies versioned SQL schema migrations with goose.
// Each store package embeds its own dialect-specific migration files and
// hands them to Run.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// Run applies all unapplied migrations found at the root of fsys.
// Applied versions are tracked by goose in its own version table, so
// running it again is a no-op.
func Run(ctx context.Context, db *sql.DB, dialect goose.Dialect, fsys fs.FS) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	if len(results) == 0 {
		slog.Debug("schema up to date", "dialect", dialect)
		return nil
	}
	for _, r := range results {
		slog.Info("migration applied", "version", r.Source.Version, "file", r.Source.Path, "duration", r.Duration)
	}
	return nil
}

// Version reports the highest applied migration version.
func Version(ctx context.Context, db *sql.DB, dialect goose.Dialect, fsys fs.FS) (int64, error) {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("create migration provider: %w", err)
	}
	return provider.GetDBVersion(ctx)
}
