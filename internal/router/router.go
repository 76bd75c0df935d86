package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"flashdeck-backend/internal/handlers"
	"flashdeck-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	deckHandler *handlers.DeckHandler,
	cardHandler *handlers.CardHandler,
	generationHandler *handlers.GenerationHandler,
	studySessionHandler *handlers.StudySessionHandler,
	frontendURL string,
	requestsPerMin int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Per-IP request limiter
	apiLimiter := middleware.NewRateLimiter(requestsPerMin, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiLimiter.Middleware)
		r.Use(jwtAuth.Middleware)

		// ──── Deck Routes ────
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.List)
			r.Post("/", deckHandler.Create)
			r.Get("/{id}", deckHandler.Get)
			r.Put("/{id}", deckHandler.Update)
			r.Delete("/{id}", deckHandler.Delete)
			r.Post("/{id}/generate", generationHandler.Generate)
		})

		// ──── Card Routes ────
		r.Route("/cards", func(r chi.Router) {
			r.Post("/", cardHandler.Create)
			r.Put("/{id}", cardHandler.Update)
			r.Delete("/{id}", cardHandler.Delete)
		})

		// ──── Study Session Routes ────
		r.Route("/study-sessions", func(r chi.Router) {
			r.Post("/", studySessionHandler.Start)
			r.Get("/today", studySessionHandler.CountToday)
		})
	})

	return r
}
