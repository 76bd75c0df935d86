package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GenerationRepo stores the append-only AI generation log used for the
// daily quota. Records are written once per successful generation and are
// never updated or deleted here (deck deletion cascades at the schema
// level).
type GenerationRepo struct {
	pool *pgxpool.Pool
}

func NewGenerationRepo(pool *pgxpool.Pool) *GenerationRepo {
	return &GenerationRepo{pool: pool}
}

// CountToday counts a user's generation requests since 00:00:00 UTC.
func (r *GenerationRepo) CountToday(ctx context.Context, userID uuid.UUID) (int, error) {
	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)

	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM ai_generation_requests WHERE user_id = $1 AND created_at >= $2",
		userID, startOfDay,
	).Scan(&count)
	return count, err
}

func (r *GenerationRepo) Append(ctx context.Context, userID uuid.UUID, deckID int64) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO ai_generation_requests (user_id, deck_id) VALUES ($1, $2)",
		userID, deckID,
	)
	return err
}
