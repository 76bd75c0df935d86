package models

import (
	"time"

	"github.com/google/uuid"
)

type StudySession struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	DeckID    int64     `json:"deck_id"`
	CreatedAt time.Time `json:"created_at"`
}

type StartStudySessionRequest struct {
	DeckID int64 `json:"deck_id"`
}
