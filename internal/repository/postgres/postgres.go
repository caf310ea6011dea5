// Package postgres provides PostgreSQL-backed repositories using the pgx
// database/sql driver, with schema migrations applied by goose.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/msomdec/songbook/internal/domain"
	"github.com/msomdec/songbook/internal/migrations"
	pgmigrations "github.com/msomdec/songbook/internal/repository/postgres/migrations"
	"github.com/pressly/goose/v3"
)

const uniqueViolation = "23505"

// DB wraps a PostgreSQL connection pool and vends repositories backed by it.
type DB struct {
	SqlDB *sql.DB
}

var _ domain.Database = (*DB)(nil)

// New opens a connection pool for dsn and verifies it is reachable.
func New(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Wrap adopts an already opened *sql.DB.
func Wrap(db *sql.DB) *DB {
	return &DB{SqlDB: db}
}

// Migrate applies the embedded PostgreSQL schema.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB, goose.DialectPostgres, pgmigrations.FS)
}

// SchemaVersion reports the highest applied migration.
func (d *DB) SchemaVersion(ctx context.Context) (int64, error) {
	return migrations.Version(ctx, d.SqlDB, goose.DialectPostgres, pgmigrations.FS)
}

func (d *DB) Users() domain.UserRepository {
	return &UserRepository{db: d.SqlDB}
}

func (d *DB) Favorites() domain.FavoriteRepository {
	return &FavoriteRepository{db: d.SqlDB}
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
