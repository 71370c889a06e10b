package userhandlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	userservice "github.com/snake-playground/backend/app/modules/user/application"
	sharedtypes "github.com/snake-playground/backend/app/shared"
	"github.com/snake-playground/backend/internal/httpx"
	"github.com/snake-playground/backend/internal/results"
)

// Ranker is the slice of the leaderboard service the stats endpoint needs.
type Ranker interface {
	RankOf(ctx context.Context, userID sharedtypes.UserID) (results.Operation[int], error)
}

// Handlers exposes user profiles over HTTP.
type Handlers struct {
	service userservice.Service
	ranker  Ranker
	logger  *slog.Logger
}

// NewHandlers creates user handlers.
func NewHandlers(service userservice.Service, ranker Ranker, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, ranker: ranker, logger: logger}
}

type updateProfileRequest struct {
	Username *string `json:"username"`
}

type statsResponse struct {
	UserID      sharedtypes.UserID `json:"userId"`
	Username    string             `json:"username"`
	HighScore   int                `json:"highScore"`
	GamesPlayed int                `json:"gamesPlayed"`
	Rank        int                `json:"rank"`
}

// GetUser handles GET /users/{userID}.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	op, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get user", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !op.OK() {
		httpx.Error(w, httpx.StatusOf(op.Status), op.Code, op.Message)
		return
	}

	httpx.Respond(w, http.StatusOK, op.Value)
}

// UpdateProfile handles PATCH /users/{userID} for the authenticated user.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := httpx.UserFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}
	targetID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid request body")
		return
	}

	op, err := h.service.UpdateProfile(r.Context(), caller.ID, targetID, req.Username)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to update profile", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !op.OK() {
		httpx.Error(w, httpx.StatusOf(op.Status), op.Code, op.Message)
		return
	}

	httpx.Respond(w, http.StatusOK, op.Value)
}

// GetStats handles GET /users/{userID}/stats.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	userOp, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get user", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !userOp.OK() {
		httpx.Error(w, httpx.StatusOf(userOp.Status), userOp.Code, userOp.Message)
		return
	}

	rankOp, err := h.ranker.RankOf(r.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to compute rank", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !rankOp.OK() {
		httpx.Error(w, httpx.StatusOf(rankOp.Status), rankOp.Code, rankOp.Message)
		return
	}

	user := userOp.Value
	httpx.Respond(w, http.StatusOK, statsResponse{
		UserID:      user.ID,
		Username:    user.Username,
		HighScore:   user.HighScore,
		GamesPlayed: user.GamesPlayed,
		Rank:        rankOp.Value,
	})
}
