package leaderboardrouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	leaderboardhandlers "github.com/snake-playground/backend/app/modules/leaderboard/infrastructure/handlers"
)

// Routes mounts the leaderboard endpoints. Reads are public; score submission
// requires the caller to be authenticated.
func Routes(handlers *leaderboardhandlers.Handlers, requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", handlers.GetLeaderboard)
	r.Get("/rank/{userID}", handlers.GetRank)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/scores", handlers.SubmitScore)
	})

	return r
}
