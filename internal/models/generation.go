package models

import (
	"time"

	"github.com/google/uuid"
)

// GeneratedCard is a transient front/back pair recovered from model output.
// It has no identity until persisted as a Card.
type GeneratedCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// GenerationRequest is an append-only usage-log entry, written once per
// successful generation and read back only for the daily quota count.
type GenerationRequest struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	DeckID    int64     `json:"deck_id"`
	CreatedAt time.Time `json:"created_at"`
}

type GenerationResult struct {
	Success bool            `json:"success"`
	Cards   []GeneratedCard `json:"cards"`
	Count   int             `json:"count"`
}
