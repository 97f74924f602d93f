package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avolkova/reviewhub/internal/domain"
)

// CommentRepository implements domain.CommentRepository using SQLite.
type CommentRepository struct {
	db *sql.DB
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (review_id, author_id, text, pub_date)
		 VALUES (?, ?, ?, ?)`,
		comment.ReviewID, comment.AuthorID, comment.Text, now,
	)
	if err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("%w: %v", domain.ErrConstraint, err)
		}
		return fmt.Errorf("insert comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	comment.ID = id
	comment.PubDate = now
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, reviewID, id int64) (*domain.Comment, error) {
	comment := &domain.Comment{}
	err := r.db.QueryRowContext(ctx,
		`SELECT c.id, c.review_id, c.author_id, u.username, c.text, c.pub_date
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.id = ? AND c.review_id = ?`, id, reviewID,
	).Scan(&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.PubDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query comment by id: %w", err)
	}
	return comment, nil
}

func (r *CommentRepository) ListByReview(ctx context.Context, reviewID int64) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.review_id, c.author_id, u.username, c.text, c.pub_date
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.review_id = ?
		 ORDER BY c.pub_date, c.id`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author,
			&c.Text, &c.PubDate); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE comments SET text = ? WHERE id = ?`, comment.Text, comment.ID)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
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

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
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
