package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/msomdec/songbook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return Wrap(db), mock
}

var userColumns = []string{"id", "email", "display_name", "password_hash", "created_at"}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*display_name,\s*password_hash\).*RETURNING\s+created_at$`).
		WithArgs(sqlmock.AnyArg(), "alice@example.com", "Alice", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	u := &domain.User{Email: "alice@example.com", DisplayName: "Alice", PasswordHash: "hash"}
	require.NoError(t, db.Users().Create(context.Background(), u))

	_, err := uuid.Parse(u.ID)
	assert.NoError(t, err, "id should be a UUID")
	assert.Equal(t, created, u.CreatedAt)
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, Message: "duplicate key value violates unique constraint"})

	err := db.Users().Create(context.Background(), &domain.User{Email: "dup@example.com", DisplayName: "Dup", PasswordHash: "h"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserRepository_Create_DBError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).WillReturnError(errors.New("db down"))

	err := db.Users().Create(context.Background(), &domain.User{Email: "x@example.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.Contains(t, err.Error(), "db down")
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.NewString()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*email,\s*display_name,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id, "alice@example.com", "Alice", "hash", time.Now()))

	u, err := db.Users().GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "Alice", u.DisplayName)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+email`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := db.Users().GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_GetByID_NotAUUID(t *testing.T) {
	db, _ := newMockDB(t)

	// No query is expected: a malformed id short-circuits.
	_, err := db.Users().GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFavoriteRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	owner := uuid.NewString()

	mock.ExpectExec(`INSERT\s+INTO\s+favorites\s*\(id,\s*user_id,\s*song,\s*created_at\)`).
		WithArgs(sqlmock.AnyArg(), owner, "Autumn Leaves", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	fav := &domain.Favorite{UserID: owner, Song: "Autumn Leaves"}
	require.NoError(t, db.Favorites().Create(context.Background(), fav))
	assert.NotEmpty(t, fav.ID)
	assert.False(t, fav.CreatedAt.IsZero())
}

func TestFavoriteRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	owner := uuid.NewString()
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)FROM\s+favorites\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC`).
		WithArgs(owner).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "song", "created_at"}).
			AddRow("f2", owner, "newer", now).
			AddRow("f1", owner, "older", now.Add(-time.Hour)))

	favs, err := db.Favorites().ListByUser(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, "newer", favs[0].Song)
	assert.Equal(t, "older", favs[1].Song)
}

func TestFavoriteRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.NewString()

	mock.ExpectQuery(`FROM\s+favorites\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := db.Favorites().GetByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFavoriteRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	id, owner := uuid.NewString(), uuid.NewString()

	mock.ExpectExec(`DELETE\s+FROM\s+favorites\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs(id, owner).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+favorites`).
		WithArgs(id, owner).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, db.Favorites().Delete(context.Background(), id, owner))
	assert.ErrorIs(t, db.Favorites().Delete(context.Background(), id, owner), domain.ErrNotFound)
}
