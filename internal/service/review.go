package service

import (
	"context"
	"fmt"

	"github.com/avolkova/reviewhub/internal/domain"
	"github.com/avolkova/reviewhub/internal/validate"
)

// ReviewService orchestrates the review and comment lifecycle: parent
// resolution, the one-review-per-author-per-title rule, and author/pub_date
// stamping at creation.
type ReviewService struct {
	titles   domain.TitleRepository
	reviews  domain.ReviewRepository
	comments domain.CommentRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(titles domain.TitleRepository, reviews domain.ReviewRepository, comments domain.CommentRepository) *ReviewService {
	return &ReviewService{titles: titles, reviews: reviews, comments: comments}
}

type reviewInput struct {
	Text string `validate:"required"`
}

type commentInput struct {
	Text string `validate:"required"`
}

// ReviewPatch is a partial review update; nil fields are left unchanged.
type ReviewPatch struct {
	Text  *string `validate:"omitempty,min=1"`
	Score *int
}

// CreateReview adds the author's review of a title. The pre-check gives a
// friendly failure on an obvious duplicate; concurrent duplicates are
// decided by the repository's unique constraint, so at most one creation
// per (author, title) ever succeeds.
func (s *ReviewService) CreateReview(ctx context.Context, titleID int64, author *domain.User, text string, score int) (*domain.Review, error) {
	if err := validate.Struct(reviewInput{Text: text}); err != nil {
		return nil, err
	}
	if score < domain.MinScore || score > domain.MaxScore {
		return nil, fmt.Errorf("%w: score %d is out of range", domain.ErrConstraint, score)
	}

	title, err := s.titles.GetByID(ctx, titleID)
	if err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsByAuthor(ctx, title.ID, author.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateReview
	}

	review := &domain.Review{TitleID: title.ID, Score: score}
	review.AuthorID = author.ID
	review.Author = author.Username
	review.Text = text
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// GetReview returns one review, addressed through its title.
func (s *ReviewService) GetReview(ctx context.Context, titleID, reviewID int64) (*domain.Review, error) {
	return s.reviews.GetByID(ctx, titleID, reviewID)
}

// ListReviews returns all reviews of a title; the title must exist.
func (s *ReviewService) ListReviews(ctx context.Context, titleID int64) ([]domain.Review, error) {
	if _, err := s.titles.GetByID(ctx, titleID); err != nil {
		return nil, err
	}
	return s.reviews.ListByTitle(ctx, titleID)
}

// UpdateReview applies a partial update to text and score. pub_date and
// authorship never change.
func (s *ReviewService) UpdateReview(ctx context.Context, titleID, reviewID int64, patch ReviewPatch) (*domain.Review, error) {
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}

	review, err := s.reviews.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if patch.Text != nil {
		review.Text = *patch.Text
	}
	if patch.Score != nil {
		if *patch.Score < domain.MinScore || *patch.Score > domain.MaxScore {
			return nil, fmt.Errorf("%w: score %d is out of range", domain.ErrConstraint, *patch.Score)
		}
		review.Score = *patch.Score
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes a review and, via cascade, its comments.
func (s *ReviewService) DeleteReview(ctx context.Context, titleID, reviewID int64) error {
	review, err := s.reviews.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	return s.reviews.Delete(ctx, review.ID)
}

// CreateComment adds the author's comment on a review. There is no
// duplicate restriction for comments.
func (s *ReviewService) CreateComment(ctx context.Context, titleID, reviewID int64, author *domain.User, text string) (*domain.Comment, error) {
	if err := validate.Struct(commentInput{Text: text}); err != nil {
		return nil, err
	}

	review, err := s.reviews.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{ReviewID: review.ID}
	comment.AuthorID = author.ID
	comment.Author = author.Username
	comment.Text = text
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComment returns one comment, addressed through its review and title.
func (s *ReviewService) GetComment(ctx context.Context, titleID, reviewID, commentID int64) (*domain.Comment, error) {
	if _, err := s.reviews.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, reviewID, commentID)
}

// ListComments returns all comments on a review; the review must exist
// under the given title.
func (s *ReviewService) ListComments(ctx context.Context, titleID, reviewID int64) ([]domain.Comment, error) {
	if _, err := s.reviews.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.comments.ListByReview(ctx, reviewID)
}

// UpdateComment replaces a comment's text.
func (s *ReviewService) UpdateComment(ctx context.Context, titleID, reviewID, commentID int64, text string) (*domain.Comment, error) {
	if err := validate.Struct(commentInput{Text: text}); err != nil {
		return nil, err
	}

	comment, err := s.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	comment.Text = text
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment.
func (s *ReviewService) DeleteComment(ctx context.Context, titleID, reviewID, commentID int64) error {
	comment, err := s.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	return s.comments.Delete(ctx, comment.ID)
}
