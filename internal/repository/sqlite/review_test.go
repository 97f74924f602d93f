package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/avolkova/reviewhub/internal/domain"
)

func TestReviewRepository_Create_DuplicatePerAuthorAndTitle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	title := seedTitle(t, db, "Dune", 1965)
	seedReview(t, db, title.ID, alice, 8)

	second := &domain.Review{TitleID: title.ID, Score: 3}
	second.AuthorID = alice.ID
	second.Text = "changed my mind"
	if err := db.Reviews().Create(ctx, second); !errors.Is(err, domain.ErrDuplicateReview) {
		t.Fatalf("expected ErrDuplicateReview, got %v", err)
	}

	// A different author on the same title is fine.
	bob := seedUser(t, db, "bob")
	other := &domain.Review{TitleID: title.ID, Score: 5}
	other.AuthorID = bob.ID
	other.Text = "fine"
	if err := db.Reviews().Create(ctx, other); err != nil {
		t.Fatalf("Create by other author: %v", err)
	}

	// And the same author on a different title is fine too.
	heat := seedTitle(t, db, "Heat", 1995)
	another := &domain.Review{TitleID: heat.ID, Score: 9}
	another.AuthorID = alice.ID
	another.Text = "great"
	if err := db.Reviews().Create(ctx, another); err != nil {
		t.Fatalf("Create on other title: %v", err)
	}
}

func TestReviewRepository_ScoreCheckConstraint(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	title := seedTitle(t, db, "Dune", 1965)

	rv := &domain.Review{TitleID: title.ID, Score: 11}
	rv.AuthorID = alice.ID
	rv.Text = "off the scale"
	if err := db.Reviews().Create(ctx, rv); !errors.Is(err, domain.ErrConstraint) {
		t.Fatalf("expected ErrConstraint for score 11, got %v", err)
	}
}

func TestReviewRepository_GetByID_ScopedToTitle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	dune := seedTitle(t, db, "Dune", 1965)
	heat := seedTitle(t, db, "Heat", 1995)
	review := seedReview(t, db, dune.ID, alice, 8)

	got, err := db.Reviews().GetByID(ctx, dune.ID, review.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Author != "alice" {
		t.Fatalf("expected author username joined, got %q", got.Author)
	}

	// The same review is unreachable through another title.
	if _, err := db.Reviews().GetByID(ctx, heat.ID, review.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound under wrong title, got %v", err)
	}
}

func TestReviewRepository_Delete_CascadesComments(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	title := seedTitle(t, db, "Dune", 1965)
	review := seedReview(t, db, title.ID, alice, 8)
	comment := seedComment(t, db, review.ID, alice)

	if err := db.Reviews().Delete(ctx, review.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Comments().GetByID(ctx, review.ID, comment.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected comment cascade-deleted, got %v", err)
	}
}

func TestCommentRepository_ListByReview(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	title := seedTitle(t, db, "Dune", 1965)
	review := seedReview(t, db, title.ID, alice, 8)
	otherReview := seedReview(t, db, title.ID, bob, 6)

	seedComment(t, db, review.ID, bob)
	seedComment(t, db, otherReview.ID, alice)

	comments, err := db.Comments().ListByReview(ctx, review.ID)
	if err != nil {
		t.Fatalf("ListByReview: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment scoped to review, got %d", len(comments))
	}
	if comments[0].Author != "bob" {
		t.Fatalf("expected author bob, got %q", comments[0].Author)
	}
}

func TestReviewRepository_ExistsByAuthor(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	title := seedTitle(t, db, "Dune", 1965)

	exists, err := db.Reviews().ExistsByAuthor(ctx, title.ID, alice.ID)
	if err != nil {
		t.Fatalf("ExistsByAuthor: %v", err)
	}
	if exists {
		t.Fatal("expected no review yet")
	}

	seedReview(t, db, title.ID, alice, 8)
	exists, err = db.Reviews().ExistsByAuthor(ctx, title.ID, alice.ID)
	if err != nil {
		t.Fatalf("ExistsByAuthor: %v", err)
	}
	if !exists {
		t.Fatal("expected review to exist")
	}
}
