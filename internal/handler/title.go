package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avolkova/reviewhub/internal/authz"
	"github.com/avolkova/reviewhub/internal/domain"
	"github.com/avolkova/reviewhub/internal/service"
)

// TitleHandler handles title HTTP requests.
type TitleHandler struct {
	titles *service.TitleService
}

// NewTitleHandler creates a new TitleHandler.
func NewTitleHandler(titles *service.TitleService) *TitleHandler {
	return &TitleHandler{titles: titles}
}

// pathID parses a numeric path parameter. A non-numeric value means the
// resource cannot exist, so callers treat the false return as a 404.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

type titleRequest struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// HandleList lists titles, optionally filtered by category, genre, year or
// a name substring.
// GET /api/v1/titles?category=&genre=&year=&name=
func (h *TitleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := domain.TitleFilter{
		CategorySlug: r.URL.Query().Get("category"),
		GenreSlug:    r.URL.Query().Get("genre"),
		Name:         r.URL.Query().Get("name"),
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year filter.")
			return
		}
		filter.Year = &year
	}

	titles, err := h.titles.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTitleDTOs(titles))
}

// HandleGet returns one title with its computed rating.
// GET /api/v1/titles/{titleID}
func (h *TitleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "titleID")
	if !ok {
		handleNotFound(w, r)
		return
	}
	title, err := h.titles.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTitleDTO(title))
}

// HandleCreate creates a title (admin or superuser).
// POST /api/v1/titles
func (h *TitleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(requesterFrom(r.Context()), authz.CapCreate, authz.ResourceTitle) {
		denyMutation(w, r)
		return
	}

	var req titleRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	in := service.TitleInput{Genres: req.Genre}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Year != nil {
		in.Year = *req.Year
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Category != nil {
		in.Category = *req.Category
	}

	title, err := h.titles.Create(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTitleDTO(title))
}

// HandleUpdate partially updates a title (admin or superuser).
// PATCH /api/v1/titles/{titleID}
func (h *TitleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(requesterFrom(r.Context()), authz.CapUpdate, authz.ResourceTitle) {
		denyMutation(w, r)
		return
	}

	id, ok := pathID(r, "titleID")
	if !ok {
		handleNotFound(w, r)
		return
	}

	var req titleRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	patch := service.TitlePatch{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.Genre != nil {
		patch.Genres = &req.Genre
	}

	title, err := h.titles.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTitleDTO(title))
}

// HandleDelete deletes a title and, via cascade, its reviews and comments
// (admin or superuser).
// DELETE /api/v1/titles/{titleID}
func (h *TitleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(requesterFrom(r.Context()), authz.CapDelete, authz.ResourceTitle) {
		denyMutation(w, r)
		return
	}

	id, ok := pathID(r, "titleID")
	if !ok {
		handleNotFound(w, r)
		return
	}
	if err := h.titles.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
