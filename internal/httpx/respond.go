package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/snake-playground/backend/internal/results"
)

// ErrorBody is the wire shape for every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Respond writes v as JSON with the given status code.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Error writes the standard error body.
func Error(w http.ResponseWriter, status int, code, message string) {
	Respond(w, status, ErrorBody{Error: code, Message: message})
}

// StatusOf maps a service outcome status to an HTTP status code.
func StatusOf(s results.Status) int {
	switch s {
	case results.StatusNotFound:
		return http.StatusNotFound
	case results.StatusUnauthorized:
		return http.StatusUnauthorized
	case results.StatusForbidden:
		return http.StatusForbidden
	case results.StatusConflict:
		return http.StatusConflict
	case results.StatusInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusOK
	}
}
