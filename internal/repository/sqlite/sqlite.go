package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/songbook/internal/domain"
	"github.com/msomdec/songbook/internal/migrations"
	sqlitemigrations "github.com/msomdec/songbook/internal/repository/sqlite/migrations"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DB wraps a SQLite connection and vends repositories backed by it.
type DB struct {
	SqlDB *sql.DB
}

var _ domain.Database = (*DB)(nil)

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Pragmas are per connection, so the pool is pinned to one.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(context.Background(), p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies the embedded SQLite schema.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB, goose.DialectSQLite3, sqlitemigrations.FS)
}

// SchemaVersion reports the highest applied migration.
func (d *DB) SchemaVersion(ctx context.Context) (int64, error) {
	return migrations.Version(ctx, d.SqlDB, goose.DialectSQLite3, sqlitemigrations.FS)
}

func (d *DB) Users() domain.UserRepository {
	return NewUserRepository(d)
}

func (d *DB) Favorites() domain.FavoriteRepository {
	return NewFavoriteRepository(d)
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

// isUniqueConstraintError reports whether err is a SQLite unique or primary
// key constraint violation.
func isUniqueConstraintError(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
