package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"loadboard/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors onto HTTP codes; anything unknown is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrLoadNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotAuthenticated), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidLoad),
		errors.Is(err, service.ErrInvalidTier),
		errors.Is(err, service.ErrInvalidUser),
		errors.Is(err, service.ErrUnknownRole):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
