package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"shieldops/internal/auth"
)

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps the auth error taxonomy to a status code and client message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrMalformedRequest):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

// errorWriter returns the RejectFunc shared by handlers and auth middleware.
func errorWriter(logger *zap.SugaredLogger) auth.RejectFunc {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Errorw("request failed", "path", r.URL.Path, "request_id", requestID(r.Context()), "err", err)
		} else {
			logger.Debugw("request rejected", "path", r.URL.Path, "status", status, "err", err)
		}
		writeJSON(w, status, messageBody{Message: msg})
	}
}
