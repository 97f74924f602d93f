package handler

import (
	"net/http"

	"github.com/avolkova/reviewhub/internal/service"
)

// AuthHandler handles the signup and token-exchange endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleSignup registers (or re-registers) a username/email pair and mails
// a confirmation code.
// POST /api/v1/auth/signup
// Request:  {"username":"...","email":"..."}
// Response: {"username":"...","email":"..."}
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.auth.Signup(r.Context(), req.Username, req.Email); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"username": req.Username,
		"email":    req.Email,
	})
}

// HandleToken exchanges a confirmation code for a bearer token.
// POST /api/v1/auth/token
// Request:  {"username":"...","confirmation_code":"..."}
// Response: {"token":"..."}
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username         string `json:"username"`
		ConfirmationCode string `json:"confirmation_code"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	token, err := h.auth.ExchangeToken(r.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
