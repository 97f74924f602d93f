package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/avolkova/reviewhub/internal/domain"
	"github.com/avolkova/reviewhub/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *sqlite.DB, username string) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Email: username + "@example.com", Role: domain.RoleUser}
	if err := db.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedCategory(t *testing.T, db *sqlite.DB, name, slug string) *domain.Category {
	t.Helper()
	c := &domain.Category{Name: name, Slug: slug}
	if err := db.Categories().Create(context.Background(), c); err != nil {
		t.Fatalf("seed category %s: %v", slug, err)
	}
	return c
}

func seedGenre(t *testing.T, db *sqlite.DB, name, slug string) *domain.Genre {
	t.Helper()
	g := &domain.Genre{Name: name, Slug: slug}
	if err := db.Genres().Create(context.Background(), g); err != nil {
		t.Fatalf("seed genre %s: %v", slug, err)
	}
	return g
}

func seedTitle(t *testing.T, db *sqlite.DB, name string, year int) *domain.Title {
	t.Helper()
	title := &domain.Title{Name: name, Year: year}
	if err := db.Titles().Create(context.Background(), title); err != nil {
		t.Fatalf("seed title %s: %v", name, err)
	}
	return title
}

func seedReview(t *testing.T, db *sqlite.DB, titleID int64, author *domain.User, score int) *domain.Review {
	t.Helper()
	rv := &domain.Review{TitleID: titleID, Score: score}
	rv.AuthorID = author.ID
	rv.Text = "seed review"
	if err := db.Reviews().Create(context.Background(), rv); err != nil {
		t.Fatalf("seed review by %s: %v", author.Username, err)
	}
	return rv
}

func seedComment(t *testing.T, db *sqlite.DB, reviewID int64, author *domain.User) *domain.Comment {
	t.Helper()
	c := &domain.Comment{ReviewID: reviewID}
	c.AuthorID = author.ID
	c.Text = "seed comment"
	if err := db.Comments().Create(context.Background(), c); err != nil {
		t.Fatalf("seed comment by %s: %v", author.Username, err)
	}
	return c
}
