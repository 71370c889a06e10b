package liverouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	livehandlers "github.com/snake-playground/backend/app/modules/live/infrastructure/handlers"
	livews "github.com/snake-playground/backend/app/modules/live/infrastructure/ws"
)

// Routes mounts the live session endpoints. Spectating is public; playing
// requires the caller to be authenticated.
func Routes(handlers *livehandlers.Handlers, stream *livews.Stream, requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/players", handlers.ListPlayers)
	r.Get("/players/{userID}", handlers.GetPlayer)
	r.Post("/players/{userID}/watch", handlers.WatchPlayer)
	r.Delete("/players/{userID}/watch", handlers.UnwatchPlayer)
	r.Get("/players/{userID}/stream", stream.Watch)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/players", handlers.StartSession)
		r.Put("/players/{userID}/state", handlers.UpdateState)
		r.Post("/players/{userID}/end", handlers.EndSession)
	})

	return r
}
