package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"flashdeck-backend/internal/models"
)

type StudySessionRepo struct {
	pool *pgxpool.Pool
}

func NewStudySessionRepo(pool *pgxpool.Pool) *StudySessionRepo {
	return &StudySessionRepo{pool: pool}
}

func (r *StudySessionRepo) Create(ctx context.Context, s *models.StudySession) error {
	query := `INSERT INTO study_sessions (user_id, deck_id)
		VALUES ($1, $2) RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, s.UserID, s.DeckID).Scan(&s.ID, &s.CreatedAt)
}

// CountToday counts a user's study sessions since 00:00:00 UTC, the same
// calendar-day window the generation quota uses.
func (r *StudySessionRepo) CountToday(ctx context.Context, userID uuid.UUID) (int, error) {
	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)

	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM study_sessions WHERE user_id = $1 AND created_at >= $2",
		userID, startOfDay,
	).Scan(&count)
	return count, err
}
