package api

import (
	"net/http"

	"github.com/dom/account-service/internal/api/handlers"
	"github.com/dom/account-service/internal/api/middleware"
	"github.com/dom/account-service/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.User)

	// Route shape is fixed; existing clients depend on these exact paths.
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Get("/onlineusers", authHandler.OnlineUsers)

	r.Route("/user", func(r chi.Router) {
		r.Get("/list", userHandler.List)
		r.Post("/create", userHandler.Create)
		r.Post("/delete/{id}", userHandler.Delete)
		r.Post("/update/{id}", userHandler.Update)
	})

	return r
}
