package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/avolkova/reviewhub/internal/domain"
)

// writeDomainError maps a domain error onto the HTTP taxonomy. Anything not
// recognized is a server fault: logged and returned as a generic 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, domain.ErrDuplicateReview):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrConstraint),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrSlugTaken),
		errors.Is(err, domain.ErrReservedName),
		errors.Is(err, domain.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Authentication required.")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "You do not have permission to perform this action.")
	case errors.Is(err, domain.ErrDelivery):
		writeError(w, http.StatusBadGateway, "Could not deliver the confirmation mail. Please try again.")
	default:
		slog.Error("unhandled error", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
	}
}

// denyMutation reports an authorization failure: 401 for anonymous callers
// (only safe methods are open to them), 403 for authenticated ones.
func denyMutation(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}
	writeError(w, http.StatusForbidden, "You do not have permission to perform this action.")
}

// handleNotFound is the router-level JSON 404.
func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Not found.")
}

// handleMethodNotAllowed is the router-level JSON 405, distinct from 403:
// the route exists but does not define this operation.
func handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
}
