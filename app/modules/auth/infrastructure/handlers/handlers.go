package authhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	authservice "github.com/snake-playground/backend/app/modules/auth/application"
	"github.com/snake-playground/backend/internal/httpx"
)

// Handlers exposes signup, login and session endpoints.
type Handlers struct {
	service authservice.Service
	logger  *slog.Logger
}

// NewHandlers creates auth handlers.
func NewHandlers(service authservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Signup handles POST /auth/signup.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid request body")
		return
	}

	op, err := h.service.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "signup failed", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !op.OK() {
		httpx.Error(w, httpx.StatusOf(op.Status), op.Code, op.Message)
		return
	}

	httpx.Respond(w, http.StatusCreated, op.Value)
}

// Login handles POST /auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid request body")
		return
	}

	op, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "login failed", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !op.OK() {
		httpx.Error(w, httpx.StatusOf(op.Status), op.Code, op.Message)
		return
	}

	httpx.Respond(w, http.StatusOK, op.Value)
}

// Logout handles POST /auth/logout. The bearer token itself is revoked.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := BearerToken(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	op, err := h.service.Logout(r.Context(), token)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "logout failed", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error")
		return
	}
	if !op.OK() {
		httpx.Error(w, httpx.StatusOf(op.Status), op.Code, op.Message)
		return
	}

	httpx.Respond(w, http.StatusOK, messageResponse{Message: op.Value})
}

// Me handles GET /auth/me for the authenticated user.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := httpx.UserFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	httpx.Respond(w, http.StatusOK, user)
}
