package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/ssargent/mapcode/pkg/batch"
	"github.com/ssargent/mapcode/pkg/logger"
	"github.com/ssargent/mapcode/pkg/mapcode"
	"github.com/ssargent/mapcode/pkg/storage"
)

// apiKeyMiddleware validates the X-API-Key header. An empty expected key
// lets every request through.
func apiKeyMiddleware(expectedKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if expectedKey == "" {
			return next
		}
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

// errorStatus maps an engine or storage error to its HTTP status.
func errorStatus(err error) int {
	switch {
	case mapcode.IsFormatError(err),
		errors.Is(err, mapcode.ErrBadCoordinate),
		errors.Is(err, mapcode.ErrMissingTerritory):
		return http.StatusBadRequest
	case errors.Is(err, mapcode.ErrUnknownTerritory),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, mapcode.ErrMapcodeUndecodable),
		errors.Is(err, mapcode.ErrExtensionUndecodable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, batch.ErrTooManyPoints):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// sendErr sends err with its mapped status. Internal errors are logged and
// hidden from the client.
func sendErr(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.L().Error("request_failed", "path", r.URL.Path, "err", err)
		sendError(w, "internal error", status)
		return
	}
	sendError(w, err.Error(), status)
}

// sendSuccess sends a successful JSON response
func sendSuccess(w http.ResponseWriter, data interface{}) {
	sendJSON(w, data, http.StatusOK)
}

func sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
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
