package services

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"flashdeck-backend/internal/models"
)

// Plan entitlements. FeatureAIGeneration gates the pipeline;
// FeatureUnlimitedStudySessions lifts the daily study-session cap.
const (
	FeatureAIGeneration           = "ai_flashcard_generation"
	FeatureUnlimitedStudySessions = "unlimited_study_sessions"
)

var planFeatures = map[string][]string{
	"free": {FeatureAIGeneration},
	"pro":  {FeatureAIGeneration, FeatureUnlimitedStudySessions},
}

// PlanHasFeature reports whether a subscription plan carries a feature.
// Unknown or empty plans carry nothing.
func PlanHasFeature(plan, feature string) bool {
	for _, f := range planFeatures[plan] {
		if f == feature {
			return true
		}
	}
	return false
}

// Generated card counts are drawn uniformly from this range per request.
const (
	minGeneratedCards = 20
	maxGeneratedCards = 40
)

// DeckStore is the ownership-scoped deck lookup. A missing or foreign deck
// is (nil, nil), not an error.
type DeckStore interface {
	GetByID(ctx context.Context, deckID int64, userID uuid.UUID) (*models.Deck, error)
}

type CardStore interface {
	CreateGenerated(ctx context.Context, deckID int64, cards []models.GeneratedCard) error
}

// UsageStore is the append-only generation log backing the daily quota.
type UsageStore interface {
	CountToday(ctx context.Context, userID uuid.UUID) (int, error)
	Append(ctx context.Context, userID uuid.UUID, deckID int64) error
}

// ViewCache invalidates the cached deck-detail view after new cards land.
type ViewCache interface {
	InvalidateDeck(ctx context.Context, deckID int64)
}

// GenerationService runs the AI flashcard pipeline end to end: guards,
// prompt construction, model call, parse/repair, output filtering, and
// persistence. Each request is one sequential pass; concurrent requests
// from the same user near the quota boundary may both pass the count check,
// a slight overshoot the design accepts rather than serializing per user.
type GenerationService struct {
	decks     DeckStore
	cards     CardStore
	usage     UsageStore
	generator TextGenerator
	cache     ViewCache
	apiKey    string

	// cardCount picks the requested card count; replaced in tests.
	cardCount func() int
}

func NewGenerationService(
	decks DeckStore,
	cards CardStore,
	usage UsageStore,
	generator TextGenerator,
	cache ViewCache,
	apiKey string,
) *GenerationService {
	return &GenerationService{
		decks:     decks,
		cards:     cards,
		usage:     usage,
		generator: generator,
		cache:     cache,
		apiKey:    apiKey,
		cardCount: func() int {
			return minGeneratedCards + rand.IntN(maxGeneratedCards-minGeneratedCards+1)
		},
	}
}

// GenerateFlashcards is the sole public operation of the pipeline. Every
// guard failure is terminal and maps to one user-safe PipelineError; no
// side effect happens until all guards pass and the filtered card set is
// non-empty.
func (s *GenerationService) GenerateFlashcards(ctx context.Context, userID uuid.UUID, plan string, deckID int64) (*models.GenerationResult, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if !PlanHasFeature(plan, FeatureAIGeneration) {
		return nil, ErrNotEntitled
	}

	deck, err := s.decks.GetByID(ctx, deckID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load deck: %w", err)
	}
	if deck == nil {
		return nil, ErrDeckNotFound
	}

	name := strings.TrimSpace(deck.Name)
	description := strings.TrimSpace(deck.Description)
	if name == "" || description == "" {
		return nil, ErrIncompleteMetadata
	}

	if ContainsInappropriateContent(name) || ContainsInappropriateContent(description) {
		return nil, ErrContentRejected
	}

	count, err := s.usage.CountToday(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count generation requests: %w", err)
	}
	limits := GetRateLimitConfig(plan == "pro")
	if ExceedsDailyLimit(count, limits.DailyLimit) {
		return nil, ErrQuotaExceeded
	}

	prompt := BuildPrompt(SanitizeForPrompt(name), SanitizeForPrompt(description), s.cardCount())

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("flashcard generation: model call failed: %s", s.redact(err.Error()))
		return nil, ErrModelUnavailable
	}

	parsed, err := ParseCards(raw)
	if err != nil {
		log.Printf("flashcard generation: %v", err)
		return nil, ErrUnparsableResponse
	}

	valid := validateGeneratedCards(parsed)
	if len(valid) == 0 {
		return nil, ErrSchemaInvalid
	}

	filtered := FilterInappropriateCards(valid)
	if len(filtered) == 0 {
		return nil, ErrAllOutputRejected
	}

	if err := s.cards.CreateGenerated(ctx, deckID, filtered); err != nil {
		return nil, fmt.Errorf("failed to persist generated cards: %w", err)
	}

	if err := s.usage.Append(ctx, userID, deckID); err != nil {
		return nil, fmt.Errorf("failed to record generation request: %w", err)
	}

	if s.cache != nil {
		s.cache.InvalidateDeck(ctx, deckID)
	}

	return &models.GenerationResult{
		Success: true,
		Cards:   filtered,
		Count:   len(filtered),
	}, nil
}

// validateGeneratedCards enforces the persisted card shape: trimmed,
// non-empty front and back.
func validateGeneratedCards(cards []models.GeneratedCard) []models.GeneratedCard {
	var valid []models.GeneratedCard
	for _, c := range cards {
		front := strings.TrimSpace(c.Front)
		back := strings.TrimSpace(c.Back)
		if front == "" || back == "" {
			continue
		}
		valid = append(valid, models.GeneratedCard{Front: front, Back: back})
	}
	return valid
}

// redact scrubs the configured credential from text destined for the log.
func (s *GenerationService) redact(text string) string {
	if s.apiKey == "" {
		return text
	}
	return strings.ReplaceAll(text, s.apiKey, "[REDACTED]")
}
