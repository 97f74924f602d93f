package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkova/reviewhub/internal/domain"
)

// TitleRepository implements domain.TitleRepository using SQLite.
type TitleRepository struct {
	db *sql.DB
}

// The rating column is computed on every read: the mean of the title's
// review scores, NULL when it has none.
const titleSelect = `
	SELECT t.id, t.name, t.year, t.description,
	       c.id, c.name, c.slug,
	       (SELECT AVG(r.score) FROM reviews r WHERE r.title_id = t.id) AS rating
	FROM titles t
	LEFT JOIN categories c ON c.id = t.category_id`

func (r *TitleRepository) Create(ctx context.Context, title *domain.Title) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var categoryID any
	if title.Category != nil {
		categoryID = title.Category.ID
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO titles (name, year, description, category_id) VALUES (?, ?, ?, ?)`,
		title.Name, title.Year, title.Description, categoryID,
	)
	if err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("%w: %v", domain.ErrConstraint, err)
		}
		return fmt.Errorf("insert title: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	if err := insertTitleGenres(ctx, tx, id, title.Genres); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	title.ID = id
	return nil
}

func (r *TitleRepository) GetByID(ctx context.Context, id int64) (*domain.Title, error) {
	row := r.db.QueryRowContext(ctx, titleSelect+` WHERE t.id = ?`, id)

	title, err := scanTitle(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query title by id: %w", err)
	}

	titles := []domain.Title{*title}
	if err := loadGenresForTitles(ctx, r.db, titles); err != nil {
		return nil, err
	}
	return &titles[0], nil
}

func (r *TitleRepository) List(ctx context.Context, filter domain.TitleFilter) ([]domain.Title, error) {
	query := titleSelect
	var where []string
	var args []any

	if filter.CategorySlug != "" {
		where = append(where, "c.slug = ?")
		args = append(args, filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		where = append(where, `EXISTS (
			SELECT 1 FROM title_genres tg
			JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = ?)`)
		args = append(args, filter.GenreSlug)
	}
	if filter.Year != nil {
		where = append(where, "t.year = ?")
		args = append(args, *filter.Year)
	}
	if filter.Name != "" {
		where = append(where, "t.name LIKE '%' || ? || '%'")
		args = append(args, filter.Name)
	}

	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY t.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	var titles []domain.Title
	for rows.Next() {
		title, err := scanTitle(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		titles = append(titles, *title)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := loadGenresForTitles(ctx, r.db, titles); err != nil {
		return nil, err
	}
	return titles, nil
}

func (r *TitleRepository) Update(ctx context.Context, title *domain.Title) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var categoryID any
	if title.Category != nil {
		categoryID = title.Category.ID
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE titles SET name = ?, year = ?, description = ?, category_id = ? WHERE id = ?`,
		title.Name, title.Year, title.Description, categoryID, title.ID,
	)
	if err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("%w: %v", domain.ErrConstraint, err)
		}
		return fmt.Errorf("update title: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM title_genres WHERE title_id = ?`, title.ID); err != nil {
		return fmt.Errorf("clear title genres: %w", err)
	}
	if err := insertTitleGenres(ctx, tx, title.ID, title.Genres); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TitleRepository) Delete(ctx context.Context, id int64) error {
	// Reviews and their comments go with the title via FK cascades, inside
	// the same implicit transaction.
	result, err := r.db.ExecContext(ctx, `DELETE FROM titles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete title: %w", err)
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

func insertTitleGenres(ctx context.Context, tx *sql.Tx, titleID int64, genres []domain.Genre) error {
	for _, g := range genres {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO title_genres (title_id, genre_id) VALUES (?, ?)`,
			titleID, g.ID,
		); err != nil {
			if isConstraintError(err) {
				return fmt.Errorf("%w: %v", domain.ErrConstraint, err)
			}
			return fmt.Errorf("insert title genre: %w", err)
		}
	}
	return nil
}

func scanTitle(scan func(...any) error) (*domain.Title, error) {
	var t domain.Title
	var catID sql.NullInt64
	var catName, catSlug sql.NullString
	var rating sql.NullFloat64

	if err := scan(&t.ID, &t.Name, &t.Year, &t.Description,
		&catID, &catName, &catSlug, &rating); err != nil {
		return nil, err
	}
	if catID.Valid {
		t.Category = &domain.Category{ID: catID.Int64, Name: catName.String, Slug: catSlug.String}
	}
	if rating.Valid {
		t.Rating = &rating.Float64
	}
	return &t, nil
}
