package handler

import (
	"net/http"

	"github.com/avolkova/reviewhub/internal/authz"
	"github.com/avolkova/reviewhub/internal/service"
)

// ReviewHandler handles review HTTP requests, always scoped to a title.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// HandleList lists a title's reviews.
// GET /api/v1/titles/{titleID}/reviews
func (h *ReviewHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathID(r, "titleID")
	if !ok {
		handleNotFound(w, r)
		return
	}
	reviews, err := h.reviews.ListReviews(r.Context(), titleID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewDTOs(reviews))
}

// HandleGet returns one review.
// GET /api/v1/titles/{titleID}/reviews/{reviewID}
func (h *ReviewHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	titleID, ok1 := pathID(r, "titleID")
	reviewID, ok2 := pathID(r, "reviewID")
	if !ok1 || !ok2 {
		handleNotFound(w, r)
		return
	}
	review, err := h.reviews.GetReview(r.Context(), titleID, reviewID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewDTO(review))
}

// HandleCreate posts the caller's review of the title. A second review by
// the same author is rejected with 409.
// POST /api/v1/titles/{titleID}/reviews
func (h *ReviewHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(requesterFrom(r.Context()), authz.CapCreate, authz.ResourceReview) {
		denyMutation(w, r)
		return
	}

	titleID, ok := pathID(r, "titleID")
	if !ok {
		handleNotFound(w, r)
		return
	}

	var req struct {
		Text  string `json:"text"`
		Score int    `json:"score"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), titleID, UserFromContext(r.Context()), req.Text, req.Score)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewDTO(review))
}

// HandleUpdate partially updates a review: its author, a moderator or an
// admin only.
// PATCH /api/v1/titles/{titleID}/reviews/{reviewID}
func (h *ReviewHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	titleID, ok1 := pathID(r, "titleID")
	reviewID, ok2 := pathID(r, "reviewID")
	if !ok1 || !ok2 {
		handleNotFound(w, r)
		return
	}

	review, err := h.reviews.GetReview(r.Context(), titleID, reviewID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !authz.CanOnObject(requesterFrom(r.Context()), authz.CapUpdate, authz.ResourceReview, review.Author) {
		denyMutation(w, r)
		return
	}

	var req struct {
		Text  *string `json:"text"`
		Score *int    `json:"score"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	updated, err := h.reviews.UpdateReview(r.Context(), titleID, reviewID, service.ReviewPatch{Text: req.Text, Score: req.Score})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewDTO(updated))
}

// HandleDelete deletes a review: its author, a moderator or an admin only.
// DELETE /api/v1/titles/{titleID}/reviews/{reviewID}
func (h *ReviewHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	titleID, ok1 := pathID(r, "titleID")
	reviewID, ok2 := pathID(r, "reviewID")
	if !ok1 || !ok2 {
		handleNotFound(w, r)
		return
	}

	review, err := h.reviews.GetReview(r.Context(), titleID, reviewID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !authz.CanOnObject(requesterFrom(r.Context()), authz.CapDelete, authz.ResourceReview, review.Author) {
		denyMutation(w, r)
		return
	}

	if err := h.reviews.DeleteReview(r.Context(), titleID, reviewID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
