package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"bugtrack-backend/internal/api/handlers"
	"bugtrack-backend/internal/auth"
	"bugtrack-backend/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	authenticator *auth.Authenticator,
	bugService services.BugServiceProvider,
	postService services.PostServiceProvider,
	userService services.UserServiceProvider,
	allowedOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	bugHandler := handlers.NewBugHandler(bugService)
	postHandler := handlers.NewPostHandler(postService)
	userHandler := handlers.NewUserHandler(userService, authenticator)

	requireAuth := authenticator.Middleware()

	r.Route("/api", func(r chi.Router) {
		r.Route("/bugs", func(r chi.Router) {
			r.Get("/", bugHandler.GetAll)
			r.Post("/", bugHandler.Create)
			r.Put("/{id}", bugHandler.Update)
			r.Delete("/{id}", bugHandler.Delete)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.GetAll)
			r.Get("/{id}", postHandler.Get)
			r.With(requireAuth).Post("/", postHandler.Create)
			r.With(requireAuth).Put("/{id}", postHandler.Update)
			r.With(requireAuth).Delete("/{id}", postHandler.Delete)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
		})
	})

	return r
}
