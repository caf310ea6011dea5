package sqlite_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/msomdec/songbook/internal/domain"
	"github.com/msomdec/songbook/internal/repository/sqlite"
)

func TestUserRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		Email:        "test@example.com",
		DisplayName:  "Test User",
		PasswordHash: "hashedpw",
	}

	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == "" {
		t.Fatal("expected user ID to be set after create")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user1 := &domain.User{Email: "dup@example.com", DisplayName: "User 1", PasswordHash: "hash1"}
	if err := repo.Create(ctx, user1); err != nil {
		t.Fatalf("Create user1: %v", err)
	}

	user2 := &domain.User{Email: "dup@example.com", DisplayName: "User 2", PasswordHash: "hash2"}
	err := repo.Create(ctx, user2)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrDuplicateEmail to be a conflict, got %v", err)
	}
}

func TestUserRepository_Create_EmailIsCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Email: "case@example.com", DisplayName: "a", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create lower: %v", err)
	}
	if err := repo.Create(ctx, &domain.User{Email: "Case@example.com", DisplayName: "b", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create mixed case: %v", err)
	}

	if _, err := repo.GetByEmail(ctx, "CASE@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unmatched case, got %v", err)
	}
}

func TestUserRepository_Create_ConcurrentDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = repo.Create(ctx, &domain.User{Email: "race@example.com", DisplayName: "Racer", PasswordHash: "h"})
		}()
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrDuplicateEmail):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != workers-1 {
		t.Fatalf("expected 1 success and %d duplicates, got %d and %d", workers-1, ok, dup)
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Email: "byid@example.com", DisplayName: "By ID", PasswordHash: "hash"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if found.Email != user.Email {
		t.Fatalf("expected email %q, got %q", user.Email, found.Email)
	}
	if found.DisplayName != user.DisplayName {
		t.Fatalf("expected display name %q, got %q", user.DisplayName, found.DisplayName)
	}
	if found.PasswordHash != "hash" {
		t.Fatalf("expected password hash to round-trip, got %q", found.PasswordHash)
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), "no-such-user")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Email: "byemail@example.com", DisplayName: "By Email", PasswordHash: "hash"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.GetByEmail(ctx, "byemail@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}

	if found.ID != user.ID {
		t.Fatalf("expected id %s, got %s", user.ID, found.ID)
	}
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)

	_, err := repo.GetByEmail(context.Background(), "nonexistent@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
