package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avolkova/reviewhub/internal/domain"
)

// Importer performs explicit-ID inserts for offline bulk loading. It
// bypasses API-level authorization but not the schema: every row passes
// through the same uniqueness, foreign-key and check constraints as API
// writes, and a violation fails the insert with a domain error.
type Importer struct {
	db *sql.DB
}

func (im *Importer) InsertUser(ctx context.Context, id int64, username, email string, role domain.Role, bio, firstName, lastName string) error {
	now := time.Now().UTC()
	_, err := im.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, first_name, last_name, bio, role,
		 is_superuser, confirmation_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0, '', ?, ?)`,
		id, username, email, firstName, lastName, bio, role, now, now)
	return im.mapErr("user", err)
}

func (im *Importer) InsertCategory(ctx context.Context, id int64, name, slug string) error {
	_, err := im.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, slug) VALUES (?, ?, ?)`, id, name, slug)
	return im.mapErr("category", err)
}

func (im *Importer) InsertGenre(ctx context.Context, id int64, name, slug string) error {
	_, err := im.db.ExecContext(ctx,
		`INSERT INTO genres (id, name, slug) VALUES (?, ?, ?)`, id, name, slug)
	return im.mapErr("genre", err)
}

func (im *Importer) InsertTitle(ctx context.Context, id int64, name string, year int, categoryID *int64) error {
	var cat any
	if categoryID != nil {
		cat = *categoryID
	}
	_, err := im.db.ExecContext(ctx,
		`INSERT INTO titles (id, name, year, category_id) VALUES (?, ?, ?, ?)`,
		id, name, year, cat)
	return im.mapErr("title", err)
}

func (im *Importer) InsertTitleGenre(ctx context.Context, titleID, genreID int64) error {
	_, err := im.db.ExecContext(ctx,
		`INSERT INTO title_genres (title_id, genre_id) VALUES (?, ?)`, titleID, genreID)
	return im.mapErr("title genre", err)
}

func (im *Importer) InsertReview(ctx context.Context, id, titleID, authorID int64, text string, score int, pubDate time.Time) error {
	_, err := im.db.ExecContext(ctx,
		`INSERT INTO reviews (id, title_id, author_id, text, score, pub_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, titleID, authorID, text, score, pubDate.UTC())
	return im.mapErr("review", err)
}

func (im *Importer) InsertComment(ctx context.Context, id, reviewID, authorID int64, text string, pubDate time.Time) error {
	_, err := im.db.ExecContext(ctx,
		`INSERT INTO comments (id, review_id, author_id, text, pub_date)
		 VALUES (?, ?, ?, ?, ?)`,
		id, reviewID, authorID, text, pubDate.UTC())
	return im.mapErr("comment", err)
}

func (im *Importer) mapErr(entity string, err error) error {
	if err == nil {
		return nil
	}
	if isConstraintError(err) {
		return fmt.Errorf("%w: import %s: %v", domain.ErrConstraint, entity, err)
	}
	return fmt.Errorf("import %s: %w", entity, err)
}
