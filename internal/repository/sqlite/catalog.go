package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/avolkova/reviewhub/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using SQLite.
type CategoryRepository struct {
	db *sql.DB
}

// GenreRepository implements domain.GenreRepository using SQLite.
type GenreRepository struct {
	db *sql.DB
}

// Categories and genres share the same named-slug shape, so both
// repositories delegate the SQL to table-parameterized helpers. The table
// name is always one of the two compile-time constants below, never input.

func insertTag(ctx context.Context, db *sql.DB, table, name, slug string) (int64, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO `+table+` (name, slug) VALUES (?, ?)`, name, slug)
	if err != nil {
		if isUniqueViolation(err, table+".slug") {
			return 0, domain.ErrSlugTaken
		}
		if isConstraintError(err) {
			return 0, fmt.Errorf("%w: %v", domain.ErrConstraint, err)
		}
		return 0, fmt.Errorf("insert into %s: %w", table, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	return id, nil
}

func getTagBySlug(ctx context.Context, db *sql.DB, table, slug string) (int64, string, error) {
	var id int64
	var name string
	err := db.QueryRowContext(ctx,
		`SELECT id, name FROM `+table+` WHERE slug = ?`, slug).Scan(&id, &name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", domain.ErrNotFound
		}
		return 0, "", fmt.Errorf("query %s by slug: %w", table, err)
	}
	return id, name, nil
}

func deleteTagBySlug(ctx context.Context, db *sql.DB, table, slug string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
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

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	id, err := insertTag(ctx, r.db, "categories", c.Name, c.Slug)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	id, name, err := getTagBySlug(ctx, r.db, "categories", slug)
	if err != nil {
		return nil, err
	}
	return &domain.Category{ID: id, Name: name, Slug: slug}, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Delete(ctx context.Context, slug string) error {
	return deleteTagBySlug(ctx, r.db, "categories", slug)
}

func (r *GenreRepository) Create(ctx context.Context, g *domain.Genre) error {
	id, err := insertTag(ctx, r.db, "genres", g.Name, g.Slug)
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (r *GenreRepository) GetBySlugs(ctx context.Context, slugs []string) ([]domain.Genre, error) {
	genres := make([]domain.Genre, 0, len(slugs))
	for _, slug := range slugs {
		id, name, err := getTagBySlug(ctx, r.db, "genres", slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("genre %q: %w", slug, domain.ErrNotFound)
			}
			return nil, err
		}
		genres = append(genres, domain.Genre{ID: id, Name: name, Slug: slug})
	}
	return genres, nil
}

func (r *GenreRepository) List(ctx context.Context) ([]domain.Genre, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug FROM genres ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	var genres []domain.Genre
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func (r *GenreRepository) Delete(ctx context.Context, slug string) error {
	return deleteTagBySlug(ctx, r.db, "genres", slug)
}

// loadGenresForTitles fills the Genres slice of each title in one query.
func loadGenresForTitles(ctx context.Context, db *sql.DB, titles []domain.Title) error {
	if len(titles) == 0 {
		return nil
	}

	index := make(map[int64]*domain.Title, len(titles))
	ids := make([]string, 0, len(titles))
	args := make([]any, 0, len(titles))
	for i := range titles {
		index[titles[i].ID] = &titles[i]
		ids = append(ids, "?")
		args = append(args, titles[i].ID)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT tg.title_id, g.id, g.name, g.slug
		 FROM title_genres tg
		 JOIN genres g ON g.id = tg.genre_id
		 WHERE tg.title_id IN (`+strings.Join(ids, ",")+`)
		 ORDER BY g.name`, args...)
	if err != nil {
		return fmt.Errorf("load title genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int64
		var g domain.Genre
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return fmt.Errorf("scan title genre: %w", err)
		}
		if t, ok := index[titleID]; ok {
			t.Genres = append(t.Genres, g)
		}
	}
	return rows.Err()
}
