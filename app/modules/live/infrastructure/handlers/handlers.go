package livehandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	liveservice "github.com/snake-playground/backend/app/modules/live/application"
	livedomain "github.com/snake-playground/backend/app/modules/live/domain"
	sharedtypes "github.com/snake-playground/backend/app/shared"
	"github.com/snake-playground/backend/internal/httpx"
)

// Handlers exposes live session management over HTTP.
type Handlers struct {
	service liveservice.Service
	logger  *slog.Logger
}

// NewHandlers creates live session handlers.
func NewHandlers(service liveservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

type startSessionRequest struct {
	Mode sharedtypes.GameMode `json:"mode"`
}

// ListPlayers handles GET /live/players.
func (h *Handlers) ListPlayers(w http.ResponseWriter, r *http.Request) {
	op, err := h.service.ListSessions(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list live players", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}

	httpx.Respond(w, http.StatusOK, op.Value)
}

// GetPlayer handles GET /live/players/{userID}.
func (h *Handlers) GetPlayer(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	op, err := h.service.GetSession(r.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get live player", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !op.OK() {
		httpx.Error(w, httpx.StatusOf(op.Status), op.Code, op.Message)
		return
	}

	httpx.Respond(w, http.StatusOK, op.Value)
}

// StartSession handles POST /live/players for the authenticated user.
func (h *Handlers) StartSession(w http.ResponseWriter, r *http.Request) {
	user, ok := httpx.UserFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid request body")
		return
	}

	op, err := h.service.StartSession(r.Context(), user.ID, user.Username, req.Mode)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to start live session", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !op.OK() {
		httpx.Error(w, httpx.StatusOf(op.Status), op.Code, op.Message)
		return
	}

	httpx.Respond(w, http.StatusCreated, op.Value)
}

// UpdateState handles PUT /live/players/{userID}/state.
func (h *Handlers) UpdateState(w http.ResponseWriter, r *http.Request) {
	user, ok := httpx.UserFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}
	targetID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	var snap livedomain.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		httpx.Error(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid request body")
		return
	}

	op, err := h.service.UpdateState(r.Context(), user.ID, targetID, snap)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to update live state", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !op.OK() {
		httpx.Error(w, httpx.StatusOf(op.Status), op.Code, op.Message)
		return
	}

	httpx.Respond(w, http.StatusOK, op.Value)
}

// WatchPlayer handles POST /live/players/{userID}/watch.
func (h *Handlers) WatchPlayer(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	op, err := h.service.WatchSession(r.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to watch live session", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !op.OK() {
		httpx.Error(w, httpx.StatusOf(op.Status), op.Code, op.Message)
		return
	}

	httpx.Respond(w, http.StatusOK, op.Value)
}

// UnwatchPlayer handles DELETE /live/players/{userID}/watch.
func (h *Handlers) UnwatchPlayer(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	op, err := h.service.UnwatchSession(r.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to unwatch live session", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !op.OK() {
		httpx.Error(w, httpx.StatusOf(op.Status), op.Code, op.Message)
		return
	}

	httpx.Respond(w, http.StatusOK, op.Value)
}

// EndSession handles POST /live/players/{userID}/end.
func (h *Handlers) EndSession(w http.ResponseWriter, r *http.Request) {
	user, ok := httpx.UserFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}
	targetID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	op, err := h.service.EndSession(r.Context(), user.ID, targetID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to end live session", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !op.OK() {
		httpx.Error(w, httpx.StatusOf(op.Status), op.Code, op.Message)
		return
	}

	httpx.Respond(w, http.StatusOK, op.Value)
}
