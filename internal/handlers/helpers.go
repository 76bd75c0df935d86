package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"flashdeck-backend/internal/models"
	"flashdeck-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

// handleServiceError maps pipeline failures to their HTTP status. Anything
// that is not a PipelineError is an internal fault: it gets logged and
// collapsed to a generic retry message so callers never see raw
// diagnostics.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var pipelineErr *services.PipelineError
	if errors.As(err, &pipelineErr) {
		writeJSON(w, pipelineErr.Status, errorResp(pipelineErr.Code, pipelineErr.Message, r))
		return
	}

	log.Printf("internal error [%s]: %v", r.Header.Get("X-Request-ID"), err)
	writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Something went wrong. Please try again.", r))
}
