package models

import (
	"time"

	"github.com/google/uuid"
)

type Deck struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CardCount   int       `json:"card_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateDeckRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateDeckRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
