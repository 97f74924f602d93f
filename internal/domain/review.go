package domain

import (
	"context"
	"time"
)

// Score bounds for reviews.
const (
	MinScore = 1
	MaxScore = 10
)

// Content is the authored, timestamped core shared by reviews and comments.
// Author carries the author's username for display; AuthorID is the stored
// foreign key. PubDate is set once at creation and never changes.
type Content struct {
	ID       int64
	AuthorID int64
	Author   string
	Text     string
	PubDate  time.Time
}

// Review is an authored opinion on a title with a score. An author may hold
// at most one review per title.
type Review struct {
	Content
	TitleID int64
	Score   int
}

// Comment is an authored remark on a review.
type Comment struct {
	Content
	ReviewID int64
}

// ReviewRepository defines persistence operations for reviews. Lookups are
// scoped to a title so that a review is only reachable through its parent.
type ReviewRepository interface {
	// Create inserts the review. A second review by the same author on the
	// same title fails with ErrDuplicateReview, including under concurrent
	// creation: the unique index decides the winner.
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, titleID, id int64) (*Review, error)
	ListByTitle(ctx context.Context, titleID int64) ([]Review, error)
	ExistsByAuthor(ctx context.Context, titleID, authorID int64) (bool, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id int64) error
}

// CommentRepository defines persistence operations for comments, scoped to
// their parent review.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, reviewID, id int64) (*Comment, error)
	ListByReview(ctx context.Context, reviewID int64) ([]Comment, error)
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id int64) error
}
