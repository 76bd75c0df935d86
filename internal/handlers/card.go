package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"flashdeck-backend/internal/middleware"
	"flashdeck-backend/internal/models"
)

// DeckReader is the ownership-scoped deck lookup handlers use to authorize
// card and session mutations. A missing or foreign deck is (nil, nil).
type DeckReader interface {
	GetByID(ctx context.Context, deckID int64, userID uuid.UUID) (*models.Deck, error)
}

type CardStore interface {
	Create(ctx context.Context, c *models.Card) error
	GetByID(ctx context.Context, cardID int64) (*models.Card, error)
	Update(ctx context.Context, cardID int64, front, back *string) (*models.Card, error)
	Delete(ctx context.Context, cardID int64) error
}

type DeckCacheInvalidator interface {
	InvalidateDeck(ctx context.Context, deckID int64)
}

type CardHandler struct {
	cardRepo  CardStore
	deckRepo  DeckReader
	viewCache DeckCacheInvalidator
}

func NewCardHandler(cardRepo CardStore, deckRepo DeckReader, viewCache DeckCacheInvalidator) *CardHandler {
	return &CardHandler{
		cardRepo:  cardRepo,
		deckRepo:  deckRepo,
		viewCache: viewCache,
	}
}

// ownsDeck verifies the caller owns the deck before any card mutation.
func (h *CardHandler) ownsDeck(r *http.Request, deckID int64) (bool, error) {
	userID := middleware.GetUserID(r.Context())
	deck, err := h.deckRepo.GetByID(r.Context(), deckID, userID)
	if err != nil {
		return false, err
	}
	return deck != nil, nil
}

// loadOwnedCard fetches a card and verifies the caller owns its deck. The
// deck id is taken from the stored card, never from the request, so a
// caller cannot point the ownership check at a deck of their own while
// targeting someone else's card.
func (h *CardHandler) loadOwnedCard(w http.ResponseWriter, r *http.Request, cardID int64) *models.Card {
	card, err := h.cardRepo.GetByID(r.Context(), cardID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch card", r))
		return nil
	}
	if card == nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Card not found", r))
		return nil
	}

	owns, err := h.ownsDeck(r, card.DeckID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to verify deck", r))
		return nil
	}
	if !owns {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Card not found", r))
		return nil
	}
	return card
}

func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	req.Front = strings.TrimSpace(req.Front)
	req.Back = strings.TrimSpace(req.Back)
	if req.Front == "" || req.Back == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Front and back text are required", r))
		return
	}

	owns, err := h.ownsDeck(r, req.DeckID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to verify deck", r))
		return
	}
	if !owns {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	card := &models.Card{DeckID: req.DeckID, Front: req.Front, Back: req.Back}
	if err := h.cardRepo.Create(r.Context(), card); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create card", r))
		return
	}

	h.viewCache.InvalidateDeck(r.Context(), req.DeckID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "card": card})
}

func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	cardID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid card ID", r))
		return
	}

	var req models.UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	for _, field := range []*string{req.Front, req.Back} {
		if field != nil && strings.TrimSpace(*field) == "" {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Card text cannot be empty", r))
			return
		}
	}

	card := h.loadOwnedCard(w, r, cardID)
	if card == nil {
		return
	}

	updated, err := h.cardRepo.Update(r.Context(), cardID, req.Front, req.Back)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update card", r))
		return
	}
	if updated == nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Card not found", r))
		return
	}

	h.viewCache.InvalidateDeck(r.Context(), card.DeckID)

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "card": updated})
}

func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cardID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid card ID", r))
		return
	}

	card := h.loadOwnedCard(w, r, cardID)
	if card == nil {
		return
	}

	if err := h.cardRepo.Delete(r.Context(), cardID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete card", r))
		return
	}

	h.viewCache.InvalidateDeck(r.Context(), card.DeckID)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Card deleted"})
}
