package userrouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	userhandlers "github.com/snake-playground/backend/app/modules/user/infrastructure/handlers"
)

// Routes mounts the user profile endpoints. Profile updates require the
// caller to be authenticated.
func Routes(handlers *userhandlers.Handlers, requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{userID}", handlers.GetUser)
	r.Get("/{userID}/stats", handlers.GetStats)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Patch("/{userID}", handlers.UpdateProfile)
	})

	return r
}
