package authrouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authhandlers "github.com/snake-playground/backend/app/modules/auth/infrastructure/handlers"
)

// Routes mounts the auth endpoints. Signup and login are rate limited per IP.
func Routes(handlers *authhandlers.Handlers, limiter *authhandlers.IPRateLimiter, requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RateLimitMiddleware(limiter))
		r.Post("/signup", handlers.Signup)
		r.Post("/login", handlers.Login)
	})

	r.Post("/logout", handlers.Logout)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/me", handlers.Me)
	})

	return r
}
