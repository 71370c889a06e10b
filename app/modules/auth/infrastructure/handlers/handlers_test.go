package authhandlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authservice "github.com/snake-playground/backend/app/modules/auth/application"
	userdb "github.com/snake-playground/backend/app/modules/user/infrastructure/repositories"
	"github.com/snake-playground/backend/internal/httpx"
	"github.com/snake-playground/backend/internal/metrics"
	"github.com/snake-playground/backend/internal/results"
)

func TestSignupHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		op         results.Operation[authservice.AuthPayload]
		wantStatus int
		wantCode   string
	}{
		{
			name:       "created",
			body:       `{"username":"player_one","email":"p1@example.com","password":"hunter2"}`,
			op:         results.Ok(authservice.AuthPayload{User: &userdb.User{ID: "u1", Username: "player_one"}, Token: "tok"}),
			wantStatus: http.StatusCreated,
		},
		{
			name:       "email conflict",
			body:       `{"username":"player_one","email":"p1@example.com","password":"hunter2"}`,
			op:         results.Conflict[authservice.AuthPayload]("EMAIL_EXISTS", "Email already registered"),
			wantStatus: http.StatusConflict,
			wantCode:   "EMAIL_EXISTS",
		},
		{
			name:       "malformed body",
			body:       `{"username":`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeAuthService{
				SignupFunc: func(ctx context.Context, username, email, password string) (results.Operation[authservice.AuthPayload], error) {
					return tt.op, nil
				},
			}
			h := NewHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Signup(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				var body httpx.ErrorBody
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body.Error)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	user := &userdb.User{ID: "u1", Username: "player_one"}
	svc := &FakeAuthService{
		AuthenticateFunc: func(ctx context.Context, rawToken string) (results.Operation[*userdb.User], error) {
			if rawToken == "good" {
				return results.Ok(user), nil
			}
			return results.Unauthorized[*userdb.User]("INVALID_TOKEN", "Invalid or expired token"), nil
		},
	}

	var seen *userdb.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = httpx.UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := RequireAuth(svc, metrics.New())(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   bool
	}{
		{"valid token", "Bearer good", http.StatusOK, true},
		{"rejected token", "Bearer bad", http.StatusUnauthorized, false},
		{"missing header", "", http.StatusUnauthorized, false},
		{"not bearer", "Basic abc", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantUser {
				require.NotNil(t, seen)
				assert.Equal(t, user.ID, seen.ID)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestLogoutHandlerRequiresToken(t *testing.T) {
	h := NewHandlers(&FakeAuthService{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
