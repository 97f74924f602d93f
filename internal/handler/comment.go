package handler

import (
	"net/http"

	"github.com/avolkova/reviewhub/internal/authz"
	"github.com/avolkova/reviewhub/internal/service"
)

// CommentHandler handles comment HTTP requests, scoped to a review under a
// title.
type CommentHandler struct {
	reviews *service.ReviewService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(reviews *service.ReviewService) *CommentHandler {
	return &CommentHandler{reviews: reviews}
}

func commentPath(r *http.Request) (titleID, reviewID int64, ok bool) {
	titleID, ok1 := pathID(r, "titleID")
	reviewID, ok2 := pathID(r, "reviewID")
	return titleID, reviewID, ok1 && ok2
}

// HandleList lists a review's comments.
// GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := commentPath(r)
	if !ok {
		handleNotFound(w, r)
		return
	}
	comments, err := h.reviews.ListComments(r.Context(), titleID, reviewID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentDTOs(comments))
}

// HandleGet returns one comment.
// GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}
func (h *CommentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := commentPath(r)
	commentID, ok2 := pathID(r, "commentID")
	if !ok || !ok2 {
		handleNotFound(w, r)
		return
	}
	comment, err := h.reviews.GetComment(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentDTO(comment))
}

// HandleCreate posts a comment on a review; any authenticated user may
// comment, any number of times.
// POST /api/v1/titles/{titleID}/reviews/{reviewID}/comments
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(requesterFrom(r.Context()), authz.CapCreate, authz.ResourceComment) {
		denyMutation(w, r)
		return
	}

	titleID, reviewID, ok := commentPath(r)
	if !ok {
		handleNotFound(w, r)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	comment, err := h.reviews.CreateComment(r.Context(), titleID, reviewID, UserFromContext(r.Context()), req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentDTO(comment))
}

// HandleUpdate replaces a comment's text: its author, a moderator or an
// admin only.
// PATCH /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}
func (h *CommentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := commentPath(r)
	commentID, ok2 := pathID(r, "commentID")
	if !ok || !ok2 {
		handleNotFound(w, r)
		return
	}

	comment, err := h.reviews.GetComment(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !authz.CanOnObject(requesterFrom(r.Context()), authz.CapUpdate, authz.ResourceComment, comment.Author) {
		denyMutation(w, r)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	updated, err := h.reviews.UpdateComment(r.Context(), titleID, reviewID, commentID, req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentDTO(updated))
}

// HandleDelete deletes a comment: its author, a moderator or an admin only.
// DELETE /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := commentPath(r)
	commentID, ok2 := pathID(r, "commentID")
	if !ok || !ok2 {
		handleNotFound(w, r)
		return
	}

	comment, err := h.reviews.GetComment(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !authz.CanOnObject(requesterFrom(r.Context()), authz.CapDelete, authz.ResourceComment, comment.Author) {
		denyMutation(w, r)
		return
	}

	if err := h.reviews.DeleteComment(r.Context(), titleID, reviewID, commentID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
