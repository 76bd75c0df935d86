package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"flashdeck-backend/internal/middleware"
	"flashdeck-backend/internal/models"
	"flashdeck-backend/internal/services"
)

type fakeDeckStore struct {
	deck *models.Deck
}

func (f *fakeDeckStore) GetByID(ctx context.Context, deckID int64, userID uuid.UUID) (*models.Deck, error) {
	if f.deck == nil || f.deck.ID != deckID || f.deck.UserID != userID {
		return nil, nil
	}
	return f.deck, nil
}

type fakeCardStore struct {
	created []models.GeneratedCard
}

func (f *fakeCardStore) CreateGenerated(ctx context.Context, deckID int64, cards []models.GeneratedCard) error {
	f.created = append(f.created, cards...)
	return nil
}

type fakeUsageStore struct {
	count    int
	appended int
}

func (f *fakeUsageStore) CountToday(ctx context.Context, userID uuid.UUID) (int, error) {
	return f.count, nil
}

func (f *fakeUsageStore) Append(ctx context.Context, userID uuid.UUID, deckID int64) error {
	f.appended++
	return nil
}

type fakeGenerator struct {
	response string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return f.response, nil
}

type noopCache struct{}

func (noopCache) InvalidateDeck(ctx context.Context, deckID int64) {}

func newGenerateServer(t *testing.T, deck *models.Deck, rawResponse string, usage *fakeUsageStore) (*httptest.Server, *middleware.JWTAuth) {
	t.Helper()

	svc := services.NewGenerationService(
		&fakeDeckStore{deck: deck},
		&fakeCardStore{},
		usage,
		&fakeGenerator{response: rawResponse},
		noopCache{},
		"test-api-key",
	)

	jwtAuth := middleware.NewJWTAuth("test-secret")
	handler := NewGenerationHandler(svc)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtAuth.Middleware)
		r.Post("/decks/{id}/generate", handler.Generate)
	})

	return httptest.NewServer(r), jwtAuth
}

func TestGenerateEndpoint_Success(t *testing.T) {
	userID := uuid.New()
	deck := &models.Deck{ID: 7, UserID: userID, Name: "Biology", Description: "Intro to cells"}
	usage := &fakeUsageStore{}

	server, jwtAuth := newGenerateServer(t, deck, `{"cards":[{"front":"Mitochondria","back":"produces energy"}]}`, usage)
	defer server.Close()

	token, _ := jwtAuth.GenerateAccessToken(userID, "free")

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/decks/7/generate", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result models.GenerationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Success || result.Count != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	if usage.appended != 1 {
		t.Errorf("expected one usage record, got %d", usage.appended)
	}
}

func TestGenerateEndpoint_QuotaExceeded(t *testing.T) {
	userID := uuid.New()
	deck := &models.Deck{ID: 7, UserID: userID, Name: "Biology", Description: "Intro to cells"}
	usage := &fakeUsageStore{count: 20}

	server, jwtAuth := newGenerateServer(t, deck, `{"cards":[{"front":"a","back":"b"}]}`, usage)
	defer server.Close()

	token, _ := jwtAuth.GenerateAccessToken(userID, "free")

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/decks/7/generate", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}

	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Error.Code != "QUOTA_EXCEEDED" {
		t.Errorf("error code = %q, want QUOTA_EXCEEDED", errResp.Error.Code)
	}
}

func TestGenerateEndpoint_DeckNotOwned(t *testing.T) {
	deck := &models.Deck{ID: 7, UserID: uuid.New(), Name: "Biology", Description: "Intro to cells"}

	server, jwtAuth := newGenerateServer(t, deck, `{"cards":[{"front":"a","back":"b"}]}`, &fakeUsageStore{})
	defer server.Close()

	// Token for a different user than the deck owner
	token, _ := jwtAuth.GenerateAccessToken(uuid.New(), "free")

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/decks/7/generate", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGenerateEndpoint_NoToken(t *testing.T) {
	server, _ := newGenerateServer(t, nil, "", &fakeUsageStore{})
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/v1/decks/7/generate", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestGenerateEndpoint_InvalidDeckID(t *testing.T) {
	server, jwtAuth := newGenerateServer(t, nil, "", &fakeUsageStore{})
	defer server.Close()

	token, _ := jwtAuth.GenerateAccessToken(uuid.New(), "free")

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/decks/not-a-number/generate", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
