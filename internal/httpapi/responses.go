package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Client-facing error messages.
const (
	ErrMsgInvalidRequest  = "Invalid request body"
	ErrMsgInvalidPlayerID = "Invalid player id"
	ErrMsgUnknownPlayer   = "Player not found"
	ErrMsgPityUnavailable = "Pity state is temporarily unavailable"
	ErrMsgReloadFailed    = "Failed to reload banner configuration"
	ErrMsgNotReady        = "Service not ready"
)

// ErrorResponse is the body of every non-pull error.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, details ...string) {
	respondJSON(w, status, ErrorResponse{Error: message, Details: details})
}
