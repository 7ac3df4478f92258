package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"badgetrack/pkg/apperrors"
	"badgetrack/pkg/logger"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondServiceError maps a service error onto the HTTP response.
// Typed AppErrors carry their own status and optional echoed details;
// anything else is an unexpected store or runtime failure reported as
// 500 with the underlying message passed through.
func respondServiceError(w http.ResponseWriter, log *logger.Logger, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body := map[string]interface{}{"error": appErr.Message}
		for k, v := range appErr.Details {
			body[k] = v
		}
		respondJSON(w, appErr.StatusCode, body)
		return
	}

	log.WithError(err).Error("Unhandled request error")
	respondError(w, http.StatusInternalServerError, err.Error())
}
