package utils

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// APIError is an error with the status and client-facing message to send.
type APIError struct {
	Message    string `json:"error"`
	StatusCode int    `json:"-"`
	Details    any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// WithDetails returns a copy of the error with details attached.
func (e *APIError) WithDetails(details any) *APIError {
	return &APIError{Message: e.Message, StatusCode: e.StatusCode, Details: details}
}

// WithMessage returns a copy of the error with a custom message.
func (e *APIError) WithMessage(message string) *APIError {
	return &APIError{Message: message, StatusCode: e.StatusCode, Details: e.Details}
}

var (
	ErrUnauthorized = &APIError{Message: "Unauthorized", StatusCode: http.StatusUnauthorized}
	ErrForbidden    = &APIError{Message: "Forbidden", StatusCode: http.StatusForbidden}
	ErrNotFound     = &APIError{Message: "Not found", StatusCode: http.StatusNotFound}
	ErrValidation   = &APIError{Message: "Validation error", StatusCode: http.StatusBadRequest}
	ErrBadRequest   = &APIError{Message: "Invalid request", StatusCode: http.StatusBadRequest}
	ErrRateLimited  = &APIError{Message: "Too many requests. Please try again later.", StatusCode: http.StatusTooManyRequests}
	ErrInternal     = &APIError{Message: "Internal server error", StatusCode: http.StatusInternalServerError}
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func WriteError(w http.ResponseWriter, apiErr *APIError) {
	WriteJSON(w, apiErr.StatusCode, apiErr)
}
