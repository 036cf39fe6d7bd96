package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"inkwell/app/auth"
	"inkwell/app/services"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var validate = validator.New()

// messageResponse is the plain success envelope.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// errorResponse is the failure envelope; no internal detail leaks
// through it.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func sendJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func sendMessage(w http.ResponseWriter, message string) {
	sendJSON(w, http.StatusOK, messageResponse{Success: true, Message: message})
}

// sendError translates the service error taxonomy into status codes and
// envelope messages. Validation messages are user-fixable and pass
// through; everything else gets a generic message.
func sendError(w http.ResponseWriter, log zerolog.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, services.ErrInvalid):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
		message = "not found"
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "invalid email or password"
	case errors.Is(err, services.ErrUpstream):
		status = http.StatusBadGateway
		message = "upstream service failure"
	default:
		log.Error().Err(err).Msg("request failed")
	}

	sendJSON(w, status, errorResponse{Success: false, Message: message})
}

// decodeBody parses a JSON request body into a tagged request struct
// and validates it before any domain logic runs.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return services.ErrInvalid
	}
	if err := validate.Struct(dst); err != nil {
		return services.ErrInvalid
	}
	return nil
}
