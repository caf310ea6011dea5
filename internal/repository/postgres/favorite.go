package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/songbook/internal/domain"
)

// FavoriteRepository implements domain.FavoriteRepository using PostgreSQL.
type FavoriteRepository struct {
	db *sql.DB
}

func (r *FavoriteRepository) Create(ctx context.Context, fav *domain.Favorite) error {
	id := uuid.NewString()
	createdAt := fav.CreatedAt.UTC()
	if fav.CreatedAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (id, user_id, song, created_at) VALUES ($1, $2, $3, $4)`,
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
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	fav := &domain.Favorite{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, song, created_at FROM favorites WHERE id = $1`, id,
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
	favs := []domain.Favorite{}
	if _, err := uuid.Parse(userID); err != nil {
		return favs, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, song, created_at FROM favorites
		 WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

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
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE id = $1 AND user_id = $2`, id, userID)
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
