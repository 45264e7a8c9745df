package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bloglist/internal/handler"
	"bloglist/internal/httputil"
	authmw "bloglist/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler
	BlogHandler *handler.BlogHandler
	JWTSecret   string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Post("/api/login", cfg.AuthHandler.Login)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", cfg.UserHandler.Register)
		r.Get("/", cfg.UserHandler.List)
	})

	r.Route("/api/blogs", func(r chi.Router) {
		// Public reads; a token is resolved when present but never required
		r.With(authmw.OptionalAuthMiddleware(cfg.JWTSecret)).Get("/", cfg.BlogHandler.List)
		r.Get("/stats", cfg.BlogHandler.Stats)
		r.With(authmw.OptionalAuthMiddleware(cfg.JWTSecret)).Get("/{id}", cfg.BlogHandler.GetByID)

		// Update consumes no auth header; like counts stay writable anonymously
		r.Put("/{id}", cfg.BlogHandler.Update)

		// Mutations that require a resolved identity
		r.Group(func(r chi.Router) {
			r.Use(authmw.AuthMiddleware(cfg.JWTSecret))
			r.Post("/", cfg.BlogHandler.Create)
			r.Delete("/{id}", cfg.BlogHandler.Delete)
		})
	})

	return r
}
