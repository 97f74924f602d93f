package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/avolkova/reviewhub/internal/domain"
	"github.com/avolkova/reviewhub/internal/repository/sqlite"
	"github.com/avolkova/reviewhub/internal/service"
)

func newTestReviewService(t *testing.T) (*service.ReviewService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	return service.NewReviewService(db.Titles(), db.Reviews(), db.Comments()), db
}

func seedServiceUser(t *testing.T, db *sqlite.DB, username string) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Email: username + "@example.com", Role: domain.RoleUser}
	if err := db.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedServiceTitle(t *testing.T, db *sqlite.DB, name string) *domain.Title {
	t.Helper()
	title := &domain.Title{Name: name, Year: 2000}
	if err := db.Titles().Create(context.Background(), title); err != nil {
		t.Fatalf("seed title: %v", err)
	}
	return title
}

func TestReviewService_CreateReview(t *testing.T) {
	svc, db := newTestReviewService(t)
	ctx := context.Background()

	alice := seedServiceUser(t, db, "alice")
	title := seedServiceTitle(t, db, "Dune")

	review, err := svc.CreateReview(ctx, title.ID, alice, "a classic", 9)
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if review.ID == 0 || review.PubDate.IsZero() {
		t.Fatal("expected id and pub_date stamped at creation")
	}
	if review.Author != "alice" {
		t.Fatalf("expected author stamped from requester, got %q", review.Author)
	}
}

func TestReviewService_CreateReview_TitleNotFound(t *testing.T) {
	svc, db := newTestReviewService(t)

	alice := seedServiceUser(t, db, "alice")
	_, err := svc.CreateReview(context.Background(), 42, alice, "where?", 5)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReviewService_CreateReview_Duplicate(t *testing.T) {
	svc, db := newTestReviewService(t)
	ctx := context.Background()

	alice := seedServiceUser(t, db, "alice")
	title := seedServiceTitle(t, db, "Dune")

	if _, err := svc.CreateReview(ctx, title.ID, alice, "a classic", 9); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := svc.CreateReview(ctx, title.ID, alice, "on reflection", 4)
	if !errors.Is(err, domain.ErrDuplicateReview) {
		t.Fatalf("expected ErrDuplicateReview, got %v", err)
	}
}

func TestReviewService_CreateReview_ScoreOutOfRange(t *testing.T) {
	svc, db := newTestReviewService(t)
	ctx := context.Background()

	alice := seedServiceUser(t, db, "alice")
	title := seedServiceTitle(t, db, "Dune")

	for _, score := range []int{0, 11} {
		if _, err := svc.CreateReview(ctx, title.ID, alice, "text", score); !errors.Is(err, domain.ErrConstraint) {
			t.Fatalf("score %d: expected ErrConstraint, got %v", score, err)
		}
	}
}

func TestReviewService_UpdateReview_Partial(t *testing.T) {
	svc, db := newTestReviewService(t)
	ctx := context.Background()

	alice := seedServiceUser(t, db, "alice")
	title := seedServiceTitle(t, db, "Dune")
	review, err := svc.CreateReview(ctx, title.ID, alice, "a classic", 9)
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	score := 7
	updated, err := svc.UpdateReview(ctx, title.ID, review.ID, service.ReviewPatch{Score: &score})
	if err != nil {
		t.Fatalf("UpdateReview: %v", err)
	}
	if updated.Score != 7 || updated.Text != "a classic" {
		t.Fatalf("partial update wrong: %+v", updated)
	}

	bad := 0
	if _, err := svc.UpdateReview(ctx, title.ID, review.ID, service.ReviewPatch{Score: &bad}); !errors.Is(err, domain.ErrConstraint) {
		t.Fatalf("expected ErrConstraint for score 0, got %v", err)
	}
}

func TestReviewService_Comments(t *testing.T) {
	svc, db := newTestReviewService(t)
	ctx := context.Background()

	alice := seedServiceUser(t, db, "alice")
	bob := seedServiceUser(t, db, "bob")
	title := seedServiceTitle(t, db, "Dune")
	review, err := svc.CreateReview(ctx, title.ID, alice, "a classic", 9)
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	// No duplicate restriction on comments: the same author may comment twice.
	for i := 0; i < 2; i++ {
		if _, err := svc.CreateComment(ctx, title.ID, review.ID, bob, "agreed"); err != nil {
			t.Fatalf("CreateComment %d: %v", i, err)
		}
	}

	comments, err := svc.ListComments(ctx, title.ID, review.ID)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}

	// Commenting on a review that does not exist fails up front.
	if _, err := svc.CreateComment(ctx, title.ID, 999, bob, "void"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReviewService_DeleteReview_RemovesComments(t *testing.T) {
	svc, db := newTestReviewService(t)
	ctx := context.Background()

	alice := seedServiceUser(t, db, "alice")
	title := seedServiceTitle(t, db, "Dune")
	review, err := svc.CreateReview(ctx, title.ID, alice, "a classic", 9)
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if _, err := svc.CreateComment(ctx, title.ID, review.ID, alice, "self-reply"); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if err := svc.DeleteReview(ctx, title.ID, review.ID); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	if _, err := svc.ListComments(ctx, title.ID, review.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected comments unreachable after review delete, got %v", err)
	}
}

func TestReviewService_ListReviews_ScopedToTitle(t *testing.T) {
	svc, db := newTestReviewService(t)
	ctx := context.Background()

	alice := seedServiceUser(t, db, "alice")
	dune := seedServiceTitle(t, db, "Dune")
	heat := seedServiceTitle(t, db, "Heat")

	if _, err := svc.CreateReview(ctx, dune.ID, alice, "a classic", 9); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	reviews, err := svc.ListReviews(ctx, heat.ID)
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if len(reviews) != 0 {
		t.Fatalf("expected no reviews on other title, got %d", len(reviews))
	}

	if _, err := svc.ListReviews(ctx, 404); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown title, got %v", err)
	}
}
