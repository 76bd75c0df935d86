package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"flashdeck-backend/internal/middleware"
	"flashdeck-backend/internal/models"
	"flashdeck-backend/internal/services"
)

type SessionStore interface {
	Create(ctx context.Context, s *models.StudySession) error
	CountToday(ctx context.Context, userID uuid.UUID) (int, error)
}

type StudySessionHandler struct {
	sessionRepo SessionStore
	deckRepo    DeckReader
}

func NewStudySessionHandler(sessionRepo SessionStore, deckRepo DeckReader) *StudySessionHandler {
	return &StudySessionHandler{sessionRepo: sessionRepo, deckRepo: deckRepo}
}

// Start records a study session against one of the caller's decks. Plans
// without the unlimited-sessions entitlement are capped per UTC day; the
// rejection carries the current count and the limit.
func (h *StudySessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req models.StartStudySessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	deck, err := h.deckRepo.GetByID(r.Context(), req.DeckID, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to verify deck", r))
		return
	}
	if deck == nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	plan := middleware.GetUserPlan(r.Context())
	if !services.PlanHasFeature(plan, services.FeatureUnlimitedStudySessions) {
		count, err := h.sessionRepo.CountToday(r.Context(), userID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to count study sessions", r))
			return
		}
		if count >= services.DailyStudySessionLimit {
			resp := errorResp("RATE_LIMITED", fmt.Sprintf(
				"You've reached your daily limit of %d study sessions. Upgrade to Pro for unlimited study sessions.",
				services.DailyStudySessionLimit), r)
			resp.Error.Fields = map[string]string{
				"count": strconv.Itoa(count),
				"limit": strconv.Itoa(services.DailyStudySessionLimit),
			}
			writeJSON(w, http.StatusTooManyRequests, resp)
			return
		}
	}

	session := &models.StudySession{UserID: userID, DeckID: req.DeckID}
	if err := h.sessionRepo.Create(r.Context(), session); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to start study session", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "session": session})
}

func (h *StudySessionHandler) CountToday(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	count, err := h.sessionRepo.CountToday(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to count study sessions", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}
