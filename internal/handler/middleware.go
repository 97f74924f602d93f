package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/avolkova/reviewhub/internal/authz"
	"github.com/avolkova/reviewhub/internal/domain"
	"github.com/avolkova/reviewhub/internal/service"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext extracts the authenticated user from the request context.
// Returns nil if no user is authenticated.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// requesterFrom builds the authorization-engine view of the caller.
func requesterFrom(ctx context.Context) authz.Requester {
	return authz.RequesterFor(UserFromContext(ctx))
}

// Authenticate resolves an optional Bearer token. Requests without an
// Authorization header proceed anonymously; a header that is present but
// malformed or invalid is rejected outright.
func Authenticate(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "Invalid authorization header format.")
				return
			}

			username, err := auth.VerifyToken(parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid or expired token.")
				return
			}

			user, err := auth.GetUserByUsername(r.Context(), username)
			if err != nil {
				// The token subject no longer exists (user deleted).
				writeError(w, http.StatusUnauthorized, "Invalid or expired token.")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser guards routes that need any authenticated caller.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
