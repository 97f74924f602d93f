package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avolkova/reviewhub/internal/domain"
)

// ReviewRepository implements domain.ReviewRepository using SQLite.
type ReviewRepository struct {
	db *sql.DB
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (title_id, author_id, text, score, pub_date)
		 VALUES (?, ?, ?, ?, ?)`,
		review.TitleID, review.AuthorID, review.Text, review.Score, now,
	)
	if err != nil {
		// The unique index on (title_id, author_id) is the arbiter under
		// concurrent creation: losers land here.
		if isUniqueViolation(err, "reviews.title_id") {
			return domain.ErrDuplicateReview
		}
		if isConstraintError(err) {
			return fmt.Errorf("%w: %v", domain.ErrConstraint, err)
		}
		return fmt.Errorf("insert review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	review.ID = id
	review.PubDate = now
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, titleID, id int64) (*domain.Review, error) {
	review := &domain.Review{}
	err := r.db.QueryRowContext(ctx,
		`SELECT r.id, r.title_id, r.author_id, u.username, r.text, r.score, r.pub_date
		 FROM reviews r
		 JOIN users u ON u.id = r.author_id
		 WHERE r.id = ? AND r.title_id = ?`, id, titleID,
	).Scan(&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.PubDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query review by id: %w", err)
	}
	return review, nil
}

func (r *ReviewRepository) ListByTitle(ctx context.Context, titleID int64) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.title_id, r.author_id, u.username, r.text, r.score, r.pub_date
		 FROM reviews r
		 JOIN users u ON u.id = r.author_id
		 WHERE r.title_id = ?
		 ORDER BY r.pub_date, r.id`, titleID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.TitleID, &rv.AuthorID, &rv.Author,
			&rv.Text, &rv.Score, &rv.PubDate); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) ExistsByAuthor(ctx context.Context, titleID, authorID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE title_id = ? AND author_id = ?)`,
		titleID, authorID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check review existence: %w", err)
	}
	return exists, nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET text = ?, score = ? WHERE id = ?`,
		review.Text, review.Score, review.ID,
	)
	if err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("%w: %v", domain.ErrConstraint, err)
		}
		return fmt.Errorf("update review: %w", err)
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

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	// Comments on the review go with it via the FK cascade.
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
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
