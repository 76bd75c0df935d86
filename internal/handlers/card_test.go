package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"flashdeck-backend/internal/middleware"
	"flashdeck-backend/internal/models"
)

type stubCardRepo struct {
	cards   map[int64]*models.Card
	updated []int64
	deleted []int64
}

func (s *stubCardRepo) Create(ctx context.Context, c *models.Card) error {
	c.ID = int64(len(s.cards) + 1)
	s.cards[c.ID] = c
	return nil
}

func (s *stubCardRepo) GetByID(ctx context.Context, cardID int64) (*models.Card, error) {
	return s.cards[cardID], nil
}

func (s *stubCardRepo) Update(ctx context.Context, cardID int64, front, back *string) (*models.Card, error) {
	c, ok := s.cards[cardID]
	if !ok {
		return nil, nil
	}
	if front != nil {
		c.Front = *front
	}
	if back != nil {
		c.Back = *back
	}
	s.updated = append(s.updated, cardID)
	return c, nil
}

func (s *stubCardRepo) Delete(ctx context.Context, cardID int64) error {
	delete(s.cards, cardID)
	s.deleted = append(s.deleted, cardID)
	return nil
}

type recordingCache struct {
	invalidated []int64
}

func (c *recordingCache) InvalidateDeck(ctx context.Context, deckID int64) {
	c.invalidated = append(c.invalidated, deckID)
}

func newCardServer(t *testing.T, deck *models.Deck, cards *stubCardRepo, cache *recordingCache) (*httptest.Server, *middleware.JWTAuth) {
	t.Helper()

	jwtAuth := middleware.NewJWTAuth("test-secret")
	handler := NewCardHandler(cards, &fakeDeckStore{deck: deck}, cache)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtAuth.Middleware)
		r.Put("/cards/{id}", handler.Update)
		r.Delete("/cards/{id}", handler.Delete)
	})

	return httptest.NewServer(r), jwtAuth
}

// A caller who owns a deck of their own must not be able to edit a card
// that lives in someone else's deck, even when they name their own deck in
// the request body.
func TestCardUpdate_ForeignCard(t *testing.T) {
	victim := uuid.New()
	attacker := uuid.New()

	victimDeck := &models.Deck{ID: 9, UserID: victim, Name: "Victim", Description: "theirs"}
	cards := &stubCardRepo{cards: map[int64]*models.Card{
		5: {ID: 5, DeckID: 9, Front: "original front", Back: "original back"},
	}}
	cache := &recordingCache{}

	server, jwtAuth := newCardServer(t, victimDeck, cards, cache)
	defer server.Close()

	token, _ := jwtAuth.GenerateAccessToken(attacker, "free")

	body := strings.NewReader(`{"deck_id": 2, "front": "hijacked"}`)
	req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/v1/cards/5", body)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if cards.cards[5].Front != "original front" {
		t.Errorf("card was modified: %q", cards.cards[5].Front)
	}
	if len(cards.updated) != 0 {
		t.Errorf("update reached the store: %v", cards.updated)
	}
	if len(cache.invalidated) != 0 {
		t.Errorf("cache was invalidated: %v", cache.invalidated)
	}
}

func TestCardUpdate_OwnCard(t *testing.T) {
	owner := uuid.New()

	deck := &models.Deck{ID: 2, UserID: owner, Name: "Mine", Description: "mine"}
	cards := &stubCardRepo{cards: map[int64]*models.Card{
		5: {ID: 5, DeckID: 2, Front: "old", Back: "back"},
	}}
	cache := &recordingCache{}

	server, jwtAuth := newCardServer(t, deck, cards, cache)
	defer server.Close()

	token, _ := jwtAuth.GenerateAccessToken(owner, "free")

	body := strings.NewReader(`{"front": "new"}`)
	req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/v1/cards/5", body)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cards.cards[5].Front != "new" {
		t.Errorf("front = %q, want %q", cards.cards[5].Front, "new")
	}
	// Invalidation targets the deck the card belongs to.
	if len(cache.invalidated) != 1 || cache.invalidated[0] != 2 {
		t.Errorf("invalidated = %v, want [2]", cache.invalidated)
	}
}

func TestCardDelete_ForeignCard(t *testing.T) {
	victim := uuid.New()
	attacker := uuid.New()

	victimDeck := &models.Deck{ID: 9, UserID: victim, Name: "Victim", Description: "theirs"}
	cards := &stubCardRepo{cards: map[int64]*models.Card{
		5: {ID: 5, DeckID: 9, Front: "f", Back: "b"},
	}}

	server, jwtAuth := newCardServer(t, victimDeck, cards, &recordingCache{})
	defer server.Close()

	token, _ := jwtAuth.GenerateAccessToken(attacker, "free")

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/api/v1/cards/5", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if len(cards.deleted) != 0 {
		t.Errorf("delete reached the store: %v", cards.deleted)
	}
}
