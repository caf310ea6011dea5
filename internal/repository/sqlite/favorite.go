package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/songbook/internal/domain"
)

// FavoriteRepository implements domain.FavoriteRepository using SQLite.
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new SQLite-backed FavoriteRepository.
func NewFavoriteRepository(db *DB) *FavoriteRepository {
	return &FavoriteRepository{db: db.SqlDB}
}

// Create inserts fav, assigning its ID. CreatedAt is kept when already set.
func (r *FavoriteRepository) Create(ctx context.Context, fav *domain.Favorite) error {
	id := uuid.NewString()
	createdAt := fav.CreatedAt.UTC()
	if fav.CreatedAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (id, user_id, song, created_at) VALUES (?, ?, ?, ?)`,
		id, fav.UserID, fav.Song, createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}

	fav.ID = id
	fav.CreatedAt = createdAt
	return nil
}

func (r *FavoriteRepository) GetByID(ctx context.Context, id string) (*domain.Favorite, error) {
	fav := &domain.Favorite{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, song, created_at FROM favorites WHERE id = ?`, id,
	).Scan(&fav.ID, &fav.UserID, &fav.Song, &fav.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query favorite: %w", err)
	}
	return fav, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, song, created_at FROM favorites
		 WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favs := []domain.Favorite{}
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.Song, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}

func (r *FavoriteRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
