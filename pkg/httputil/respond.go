package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/venntower/pkg/errors"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encode JSON response", "error", err)
	}
}

// WriteError writes err as an ErrorResponse. Server-side failures are
// logged with their details and answered with a generic message.
func WriteError(w http.ResponseWriter, logger *log.Logger, err error) {
	status := StatusOf(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		if logger == nil {
			logger = log.Default()
		}
		logger.Error("request failed", "code", code, "error", err)
		msg = http.StatusText(status)
	}

	WriteJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: msg,
		Code:    string(code),
	})
}

// StatusOf maps an error to an HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeBackend:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
