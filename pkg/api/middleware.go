package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ssargent/pokepack/pkg/codec"
	"github.com/ssargent/pokepack/pkg/dex"
	"github.com/ssargent/pokepack/pkg/paste"
	"github.com/ssargent/pokepack/pkg/storage"
	"github.com/ssargent/pokepack/pkg/transform"
)

// apiKeyMiddleware validates the X-API-Key header
func apiKeyMiddleware(expectedKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				sendError(w, "Missing X-API-Key header", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expectedKey)) != 1 {
				sendError(w, "Invalid API key", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sendSuccess sends a successful JSON response
func sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	response := APIResponse{
		Success: true,
		Data:    data,
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

// sendError sends an error JSON response
func sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := APIResponse{
		Success: false,
		Error:   message,
	}
	_ = json.NewEncoder(w).Encode(response)
}

// statusFor maps a domain error to an HTTP status.
func statusFor(err error) int {
	var parseErr *paste.ParseError
	switch {
	case errors.As(err, &parseErr),
		errors.Is(err, transform.ErrInvalidText),
		errors.Is(err, transform.ErrPackedLength),
		errors.Is(err, transform.ErrFormat),
		errors.Is(err, codec.ErrOutOfRange),
		errors.Is(err, dex.ErrCodeOutOfRange),
		errors.Is(err, errRequest):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// sendFailure sends err with the status statusFor picks.
func sendFailure(w http.ResponseWriter, err error) {
	sendError(w, err.Error(), statusFor(err))
}
