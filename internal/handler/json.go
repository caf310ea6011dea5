package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msomdec/songbook/internal/domain"
)

const (
	msgInvalidCredentials = "Invalid email or password."
	msgInternal           = "An unexpected error occurred. Please try again."
	msgInvalidBody        = "Invalid request body."
)

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// readJSON decodes the request body into the given destination.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// statusFor maps a service error onto an HTTP status and a message that is
// safe to show the client.
func statusFor(err error) (int, string) {
	var policy *domain.PolicyError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, "An account with that email already exists."
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "Conflict"
	case errors.As(err, &policy):
		return http.StatusBadRequest, "Password does not meet requirements."
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, detail(err, domain.ErrInvalidInput)
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// writeServiceError writes err as a JSON error. Internal errors are logged
// under op and never echoed to the client.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(op, "error", err)
	}
	writeError(w, status, msg)
}

// detail turns "invalid input: song name is required" into
// "Song name is required."
func detail(err, kind error) string {
	msg := strings.TrimPrefix(err.Error(), kind.Error()+": ")
	if msg == "" || msg == kind.Error() {
		return "Invalid input."
	}
	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}
