package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"flashdeck-backend/internal/middleware"
	"flashdeck-backend/internal/services"
)

type GenerationHandler struct {
	generation *services.GenerationService
}

func NewGenerationHandler(generation *services.GenerationService) *GenerationHandler {
	return &GenerationHandler{generation: generation}
}

// Generate runs the AI flashcard pipeline for a deck. The whole request is
// synchronous: the response carries the persisted cards or one user-safe
// taxonomy error.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	deckID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	plan := middleware.GetUserPlan(r.Context())

	result, err := h.generation.GenerateFlashcards(r.Context(), userID, plan, deckID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
