package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"flashdeck-backend/internal/middleware"
	"flashdeck-backend/internal/models"
)

type stubSessionRepo struct {
	count   int
	created []models.StudySession
}

func (s *stubSessionRepo) Create(ctx context.Context, session *models.StudySession) error {
	s.created = append(s.created, *session)
	return nil
}

func (s *stubSessionRepo) CountToday(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.count, nil
}

func newSessionServer(t *testing.T, deck *models.Deck, sessions *stubSessionRepo) (*httptest.Server, *middleware.JWTAuth) {
	t.Helper()

	jwtAuth := middleware.NewJWTAuth("test-secret")
	handler := NewStudySessionHandler(sessions, &fakeDeckStore{deck: deck})

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtAuth.Middleware)
		r.Post("/study-sessions", handler.Start)
	})

	return httptest.NewServer(r), jwtAuth
}

func startSession(t *testing.T, server *httptest.Server, token string) *http.Response {
	t.Helper()

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/study-sessions", strings.NewReader(`{"deck_id": 3}`))
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestStudySessionStart_UnderLimit(t *testing.T) {
	userID := uuid.New()
	deck := &models.Deck{ID: 3, UserID: userID, Name: "Spanish", Description: "vocab"}
	sessions := &stubSessionRepo{count: 39}

	server, jwtAuth := newSessionServer(t, deck, sessions)
	defer server.Close()

	token, _ := jwtAuth.GenerateAccessToken(userID, "free")
	resp := startSession(t, server, token)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if len(sessions.created) != 1 {
		t.Errorf("created %d sessions, want 1", len(sessions.created))
	}
}

func TestStudySessionStart_AtDailyLimit(t *testing.T) {
	userID := uuid.New()
	deck := &models.Deck{ID: 3, UserID: userID, Name: "Spanish", Description: "vocab"}
	sessions := &stubSessionRepo{count: 40}

	server, jwtAuth := newSessionServer(t, deck, sessions)
	defer server.Close()

	token, _ := jwtAuth.GenerateAccessToken(userID, "free")
	resp := startSession(t, server, token)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Error.Code != "RATE_LIMITED" {
		t.Errorf("code = %q, want RATE_LIMITED", errResp.Error.Code)
	}
	if errResp.Error.Fields["count"] != "40" || errResp.Error.Fields["limit"] != "40" {
		t.Errorf("fields = %v, want count=40 limit=40", errResp.Error.Fields)
	}
	if len(sessions.created) != 0 {
		t.Errorf("session was recorded past the limit: %v", sessions.created)
	}
}

func TestStudySessionStart_ProUnlimited(t *testing.T) {
	userID := uuid.New()
	deck := &models.Deck{ID: 3, UserID: userID, Name: "Spanish", Description: "vocab"}
	sessions := &stubSessionRepo{count: 120}

	server, jwtAuth := newSessionServer(t, deck, sessions)
	defer server.Close()

	token, _ := jwtAuth.GenerateAccessToken(userID, "pro")
	resp := startSession(t, server, token)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if len(sessions.created) != 1 {
		t.Errorf("created %d sessions, want 1", len(sessions.created))
	}
}
