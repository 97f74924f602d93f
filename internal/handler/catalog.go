package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avolkova/reviewhub/internal/authz"
	"github.com/avolkova/reviewhub/internal/service"
)

// CatalogHandler handles category and genre HTTP requests. Both resources
// support list, create and delete-by-slug only; retrieving or updating a
// single tag is met with 405 at the router.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// HandleListCategories lists all categories.
// GET /api/v1/categories
func (h *CatalogHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryDTOs(categories))
}

// HandleCreateCategory creates a category (admin only).
// POST /api/v1/categories
func (h *CatalogHandler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(requesterFrom(r.Context()), authz.CapCreate, authz.ResourceCategory) {
		denyMutation(w, r)
		return
	}

	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), req.Name, req.Slug)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, TagDTO{Name: category.Name, Slug: category.Slug})
}

// HandleDeleteCategory deletes a category by slug (admin only). Titles in
// the category survive with the reference cleared.
// DELETE /api/v1/categories/{slug}
func (h *CatalogHandler) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(requesterFrom(r.Context()), authz.CapDelete, authz.ResourceCategory) {
		denyMutation(w, r)
		return
	}

	if err := h.catalog.DeleteCategory(r.Context(), chi.URLParam(r, "slug")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListGenres lists all genres.
// GET /api/v1/genres
func (h *CatalogHandler) HandleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalog.ListGenres(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGenreDTOs(genres))
}

// HandleCreateGenre creates a genre (admin only).
// POST /api/v1/genres
func (h *CatalogHandler) HandleCreateGenre(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(requesterFrom(r.Context()), authz.CapCreate, authz.ResourceGenre) {
		denyMutation(w, r)
		return
	}

	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	genre, err := h.catalog.CreateGenre(r.Context(), req.Name, req.Slug)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, TagDTO{Name: genre.Name, Slug: genre.Slug})
}

// HandleDeleteGenre deletes a genre by slug (admin only). Tagged titles
// merely lose the tag.
// DELETE /api/v1/genres/{slug}
func (h *CatalogHandler) HandleDeleteGenre(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(requesterFrom(r.Context()), authz.CapDelete, authz.ResourceGenre) {
		denyMutation(w, r)
		return
	}

	if err := h.catalog.DeleteGenre(r.Context(), chi.URLParam(r, "slug")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
