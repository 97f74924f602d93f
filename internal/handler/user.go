package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avolkova/reviewhub/internal/authz"
	"github.com/avolkova/reviewhub/internal/domain"
	"github.com/avolkova/reviewhub/internal/service"
)

// UserHandler handles the admin-managed user collection and the
// self-service profile routes.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type userRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

func (req userRequest) patch() service.UserPatch {
	p := service.UserPatch{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		p.Role = &role
	}
	return p
}

// HandleList lists all users (admin or superuser).
// GET /api/v1/users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(requesterFrom(r.Context()), authz.CapRead, authz.ResourceUser) {
		denyMutation(w, r)
		return
	}
	users, err := h.users.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTOs(users))
}

// HandleCreate creates a user with an explicit role (admin or superuser).
// POST /api/v1/users
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(requesterFrom(r.Context()), authz.CapCreate, authz.ResourceUser) {
		denyMutation(w, r)
		return
	}

	var req userRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	in := service.UserInput{}
	if req.Username != nil {
		in.Username = *req.Username
	}
	if req.Email != nil {
		in.Email = *req.Email
	}
	if req.FirstName != nil {
		in.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		in.LastName = *req.LastName
	}
	if req.Bio != nil {
		in.Bio = *req.Bio
	}
	if req.Role != nil {
		in.Role = domain.Role(*req.Role)
	}

	user, err := h.users.Create(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserDTO(user))
}

// HandleGet returns one user by username (admin or superuser).
// GET /api/v1/users/{username}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(requesterFrom(r.Context()), authz.CapRead, authz.ResourceUser) {
		denyMutation(w, r)
		return
	}
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// HandleUpdate partially updates a user, role included (admin or superuser).
// PATCH /api/v1/users/{username}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(requesterFrom(r.Context()), authz.CapUpdate, authz.ResourceUser) {
		denyMutation(w, r)
		return
	}

	var req userRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.users.Update(r.Context(), chi.URLParam(r, "username"), req.patch())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// HandleDelete removes a user and cascades their reviews and comments
// (admin or superuser).
// DELETE /api/v1/users/{username}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(requesterFrom(r.Context()), authz.CapDelete, authz.ResourceUser) {
		denyMutation(w, r)
		return
	}
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "username")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the caller's own profile.
// GET /api/v1/users/me
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// HandleUpdateMe partially updates the caller's own profile. A submitted
// role is not honored: the stored role is reset to user on this path.
// PATCH /api/v1/users/me
func (h *UserHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req userRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	updated, err := h.users.UpdateSelf(r.Context(), user.Username, req.patch())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(updated))
}
