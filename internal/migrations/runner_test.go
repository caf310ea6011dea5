package migrations_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/msomdec/songbook/internal/migrations"
	sqlitemigrations "github.com/msomdec/songbook/internal/repository/sqlite/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// A second pooled connection would see a different in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	// Enable foreign keys for consistency with production.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	return db
}

func TestRunMigrations(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db, goose.DialectSQLite3, sqlitemigrations.FS); err != nil {
		t.Fatalf("first migration run: %v", err)
	}

	// Verify the users table exists by inserting a row.
	_, err := db.ExecContext(ctx,
		"INSERT INTO users (id, email, display_name, password_hash) VALUES (?, ?, ?, ?)",
		"u-1", "test@example.com", "Test User", "hash123",
	)
	if err != nil {
		t.Fatalf("insert into users: %v", err)
	}

	// Favorites must reference an existing user.
	_, err = db.ExecContext(ctx,
		"INSERT INTO favorites (id, user_id, song) VALUES (?, ?, ?)",
		"f-1", "missing-user", "Song",
	)
	if err == nil {
		t.Fatal("expected foreign key violation for unknown user")
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	// Run migrations twice; second run should be a no-op.
	if err := migrations.Run(ctx, db, goose.DialectSQLite3, sqlitemigrations.FS); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := migrations.Run(ctx, db, goose.DialectSQLite3, sqlitemigrations.FS); err != nil {
		t.Fatalf("second run (idempotent): %v", err)
	}

	version, err := migrations.Version(ctx, db, goose.DialectSQLite3, sqlitemigrations.FS)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if version != 2 {
		t.Fatalf("expected schema version 2, got %d", version)
	}
}
