package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/avolkova/reviewhub/internal/domain"
)

func TestUserRepository_Create(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := &domain.User{Username: "alice", Email: "alice@example.com"}
	if err := db.Users().Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected user ID to be set after create")
	}
	if u.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %q", u.Role)
	}
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedUser(t, db, "alice")
	err := db.Users().Create(ctx, &domain.User{Username: "alice", Email: "other@example.com"})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedUser(t, db, "alice")
	err := db.Users().Create(ctx, &domain.User{Username: "bob", Email: "alice@example.com"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Users().GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_Update(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	u.Bio = "reads a lot"
	u.Role = domain.RoleModerator
	if err := db.Users().Update(ctx, u); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := db.Users().GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.Bio != "reads a lot" || got.Role != domain.RoleModerator {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestUserRepository_SetConfirmationHash(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "alice")
	if err := db.Users().SetConfirmationHash(ctx, u.ID, "hash-one"); err != nil {
		t.Fatalf("SetConfirmationHash: %v", err)
	}
	got, err := db.Users().GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ConfirmationHash != "hash-one" {
		t.Fatalf("expected stored hash, got %q", got.ConfirmationHash)
	}

	if err := db.Users().SetConfirmationHash(ctx, 9999, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestUserRepository_Delete_CascadesContent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := seedUser(t, db, "alice")
	title := seedTitle(t, db, "Dune", 1965)
	review := seedReview(t, db, title.ID, author, 8)
	seedComment(t, db, review.ID, author)

	if err := db.Users().Delete(ctx, "alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := db.Reviews().GetByID(ctx, title.ID, review.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected review to be cascade-deleted, got %v", err)
	}
	comments, err := db.Comments().ListByReview(ctx, review.ID)
	if err != nil {
		t.Fatalf("ListByReview: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("expected comments to be cascade-deleted, got %d", len(comments))
	}
}
