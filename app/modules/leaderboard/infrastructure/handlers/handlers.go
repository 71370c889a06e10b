package leaderboardhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	leaderboardservice "github.com/snake-playground/backend/app/modules/leaderboard/application"
	sharedtypes "github.com/snake-playground/backend/app/shared"
	"github.com/snake-playground/backend/internal/httpx"
)

// Handlers exposes the leaderboard over HTTP.
type Handlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
}

// NewHandlers creates leaderboard handlers.
func NewHandlers(service leaderboardservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

type submitScoreRequest struct {
	Score int                  `json:"score"`
	Mode  sharedtypes.GameMode `json:"mode"`
}

type rankResponse struct {
	UserID sharedtypes.UserID `json:"userId"`
	Rank   int                `json:"rank"`
}

// GetLeaderboard handles GET /leaderboard?limit=&mode=.
func (h *Handlers) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := leaderboardservice.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpx.Error(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "limit must be an integer")
			return
		}
		limit = parsed
	}

	var mode *sharedtypes.GameMode
	if raw := r.URL.Query().Get("mode"); raw != "" {
		m := sharedtypes.GameMode(raw)
		mode = &m
	}

	op, err := h.service.GetLeaderboard(r.Context(), limit, mode)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get leaderboard", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !op.OK() {
		httpx.Error(w, httpx.StatusOf(op.Status), op.Code, op.Message)
		return
	}

	httpx.Respond(w, http.StatusOK, op.Value)
}

// SubmitScore handles POST /leaderboard/scores for the authenticated user.
func (h *Handlers) SubmitScore(w http.ResponseWriter, r *http.Request) {
	user, ok := httpx.UserFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var req submitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid request body")
		return
	}

	op, err := h.service.SubmitScore(r.Context(), user.ID, user.Username, req.Score, req.Mode)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to submit score", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !op.OK() {
		httpx.Error(w, httpx.StatusOf(op.Status), op.Code, op.Message)
		return
	}

	httpx.Respond(w, http.StatusCreated, op.Value)
}

// GetRank handles GET /leaderboard/rank/{userID}.
func (h *Handlers) GetRank(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	op, err := h.service.RankOf(r.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to compute rank", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !op.OK() {
		httpx.Error(w, httpx.StatusOf(op.Status), op.Code, op.Message)
		return
	}

	httpx.Respond(w, http.StatusOK, rankResponse{UserID: userID, Rank: op.Value})
}
