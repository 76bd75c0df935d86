package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"flashdeck-backend/internal/cache"
	"flashdeck-backend/internal/middleware"
	"flashdeck-backend/internal/models"
	"flashdeck-backend/internal/repository"
)

type DeckHandler struct {
	deckRepo  *repository.DeckRepo
	cardRepo  *repository.CardRepo
	viewCache *cache.DeckViewCache
}

func NewDeckHandler(deckRepo *repository.DeckRepo, cardRepo *repository.CardRepo, viewCache *cache.DeckViewCache) *DeckHandler {
	return &DeckHandler{
		deckRepo:  deckRepo,
		cardRepo:  cardRepo,
		viewCache: viewCache,
	}
}

func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	decks, err := h.deckRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch decks", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"decks": decks})
}

func (h *DeckHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Name is required", r))
		return
	}
	if len(req.Name) > 255 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Name must be 255 characters or fewer", r))
		return
	}

	deck := &models.Deck{
		UserID:      middleware.GetUserID(r.Context()),
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
	}

	if err := h.deckRepo.Create(r.Context(), deck); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create deck", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "deck": deck})
}

// Get returns the deck with its cards, served from the view cache when the
// cached copy is still fresh.
func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	deckID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	deck, err := h.deckRepo.GetByID(r.Context(), deckID, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch deck", r))
		return
	}
	if deck == nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	if payload, ok := h.viewCache.Get(r.Context(), deckID); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
		return
	}

	cards, err := h.cardRepo.ListByDeck(r.Context(), deckID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch cards", r))
		return
	}

	payload, err := json.Marshal(map[string]interface{}{"deck": deck, "cards": cards})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to render deck", r))
		return
	}
	h.viewCache.Set(r.Context(), deckID, payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func (h *DeckHandler) Update(w http.ResponseWriter, r *http.Request) {
	deckID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	var req models.UpdateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Name is required", r))
			return
		}
		if len(trimmed) > 255 {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Name must be 255 characters or fewer", r))
			return
		}
		req.Name = &trimmed
	}

	userID := middleware.GetUserID(r.Context())

	deck, err := h.deckRepo.Update(r.Context(), deckID, userID, req.Name, req.Description)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update deck", r))
		return
	}
	if deck == nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	h.viewCache.InvalidateDeck(r.Context(), deckID)

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "deck": deck})
}

func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deckID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	deck, err := h.deckRepo.GetByID(r.Context(), deckID, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch deck", r))
		return
	}
	if deck == nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	if err := h.deckRepo.Delete(r.Context(), deckID, userID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete deck", r))
		return
	}

	h.viewCache.InvalidateDeck(r.Context(), deckID)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Deck deleted"})
}
