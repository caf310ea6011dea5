package domain

import "context"

// Database defines lifecycle operations for the underlying database and
// vends its repositories. Each implementation (SQLite, Postgres) owns its
// own migration files, so the whole backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int64, error)
	Users() UserRepository
	Favorites() FavoriteRepository
	Close() error
}
