package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/avolkova/reviewhub/internal/service"
)

// NewRouter assembles the full API surface. Routes that deliberately define
// only a subset of methods (category/genre detail routes support DELETE
// only) answer 405 for the rest via the router-level handler.
func NewRouter(
	auth *service.AuthService,
	users *service.UserService,
	catalog *service.CatalogService,
	titles *service.TitleService,
	reviews *service.ReviewService,
) http.Handler {
	authHandler := NewAuthHandler(auth)
	userHandler := NewUserHandler(users)
	catalogHandler := NewCatalogHandler(catalog)
	titleHandler := NewTitleHandler(titles)
	reviewHandler := NewReviewHandler(reviews)
	commentHandler := NewCommentHandler(reviews)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	r.Get("/healthz", HandleHealthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Authenticate(auth))

		r.Post("/auth/signup", authHandler.HandleSignup)
		r.Post("/auth/token", authHandler.HandleToken)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", catalogHandler.HandleListCategories)
			r.Post("/", catalogHandler.HandleCreateCategory)
			r.Delete("/{slug}", catalogHandler.HandleDeleteCategory)
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", catalogHandler.HandleListGenres)
			r.Post("/", catalogHandler.HandleCreateGenre)
			r.Delete("/{slug}", catalogHandler.HandleDeleteGenre)
		})

		r.Route("/titles", func(r chi.Router) {
			r.Get("/", titleHandler.HandleList)
			r.Post("/", titleHandler.HandleCreate)

			r.Route("/{titleID}", func(r chi.Router) {
				r.Get("/", titleHandler.HandleGet)
				r.Patch("/", titleHandler.HandleUpdate)
				r.Delete("/", titleHandler.HandleDelete)

				r.Route("/reviews", func(r chi.Router) {
					r.Get("/", reviewHandler.HandleList)
					r.Post("/", reviewHandler.HandleCreate)

					r.Route("/{reviewID}", func(r chi.Router) {
						r.Get("/", reviewHandler.HandleGet)
						r.Patch("/", reviewHandler.HandleUpdate)
						r.Delete("/", reviewHandler.HandleDelete)

						r.Route("/comments", func(r chi.Router) {
							r.Get("/", commentHandler.HandleList)
							r.Post("/", commentHandler.HandleCreate)
							r.Get("/{commentID}", commentHandler.HandleGet)
							r.Patch("/{commentID}", commentHandler.HandleUpdate)
							r.Delete("/{commentID}", commentHandler.HandleDelete)
						})
					})
				})
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.HandleList)
			r.Post("/", userHandler.HandleCreate)

			// "me" must win over the {username} wildcard.
			r.With(RequireUser).Get("/me", userHandler.HandleMe)
			r.With(RequireUser).Patch("/me", userHandler.HandleUpdateMe)

			r.Get("/{username}", userHandler.HandleGet)
			r.Patch("/{username}", userHandler.HandleUpdate)
			r.Delete("/{username}", userHandler.HandleDelete)
		})
	})

	return r
}
