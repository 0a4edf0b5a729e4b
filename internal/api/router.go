package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/luthfir/posts-api/internal/api/handlers"
	"github.com/luthfir/posts-api/internal/api/middleware"
	"github.com/luthfir/posts-api/internal/service"
	"github.com/luthfir/posts-api/internal/token"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, tokens *token.Store, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth, logger)
	postHandler := handlers.NewPostHandler(services.Post, logger)

	requireAuth := middleware.Auth(tokens, logger)

	// Public auth routes
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	// Protected auth routes
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/logout", authHandler.Logout)
		r.Get("/user", authHandler.Me)
	})

	r.Route("/v1/posts", func(r chi.Router) {
		r.Get("/", postHandler.List)
		r.Get("/{id}", postHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", postHandler.Create)
			r.Put("/{id}", postHandler.Update)
			r.Patch("/{id}", postHandler.Update)
			r.Delete("/{id}", postHandler.Delete)
		})
	})

	return r
}
