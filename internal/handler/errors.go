package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"autoClassifieds/internal/models"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// StatusForKind maps an error kind to its HTTP status.
func StatusForKind(kind string) int {
	switch kind {
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindUnauthorized, models.KindTokenExpired, models.KindTokenMalformed, models.KindTokenSignatureInvalid:
		return http.StatusUnauthorized
	case models.KindForbidden:
		return http.StatusForbidden
	case models.KindInvalidInput:
		return http.StatusBadRequest
	case models.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err with its kind. Internal errors are logged and replaced by a generic message.
func WriteError(w http.ResponseWriter, err error) {
	kind := models.KindOf(err)
	status := StatusForKind(kind)

	message := err.Error()
	if kind == models.KindInternal {
		log.Error().Err(err).Msg("request failed")
		message = "internal server error"
	}

	writeErrorMessage(w, message, kind, status)
}

func writeErrorMessage(w http.ResponseWriter, message, kind string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message, Kind: kind}, statusCode)
}

func badRequest(w http.ResponseWriter, message string) {
	writeErrorMessage(w, message, models.KindInvalidInput, http.StatusBadRequest)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}
