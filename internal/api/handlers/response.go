package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/farmguru/backend/pkg/errors"
)

// Helper functions shared by all handlers.

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps a service error onto its HTTP status, hiding
// internal details behind a generic message.
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		msg := appErr.Message
		if appErr.Type == apperrors.ErrorTypeInternal {
			msg = "internal server error"
		}
		respondWithError(w, appErr.HTTPStatus(), msg)
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
