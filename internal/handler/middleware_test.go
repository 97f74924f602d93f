package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avolkova/reviewhub/internal/handler"
)

func TestAuthenticate_NoHeaderIsAnonymous(t *testing.T) {
	env := newTestEnv(t)

	var sawUser bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawUser = handler.UserFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusOK)
	})

	mw := handler.Authenticate(env.auth)(next)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous request, got %d", rec.Code)
	}
	if sawUser {
		t.Fatal("expected no user in context")
	}
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	env := newTestEnv(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})
	mw := handler.Authenticate(env.auth)(next)

	for _, header := range []string{"Bearer", "Token abc", "Bearer bad.token.here"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupAndToken(t, "alice")

	var username string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := handler.UserFromContext(r.Context()); u != nil {
			username = u.Username
		}
		w.WriteHeader(http.StatusOK)
	})
	mw := handler.Authenticate(env.auth)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if username != "alice" {
		t.Fatalf("expected user alice in context, got %q", username)
	}
}

func TestAuthenticate_DeletedUserTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupAndToken(t, "alice")

	if err := env.db.Users().Delete(context.Background(), "alice"); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})
	mw := handler.Authenticate(env.auth)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted user, got %d", rec.Code)
	}
}
