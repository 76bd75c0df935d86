package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"flashdeck-backend/internal/models"
)

type CardRepo struct {
	pool *pgxpool.Pool
}

func NewCardRepo(pool *pgxpool.Pool) *CardRepo {
	return &CardRepo{pool: pool}
}

func (r *CardRepo) Create(ctx context.Context, c *models.Card) error {
	query := `INSERT INTO cards (deck_id, front, back)
		VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query, c.DeckID, c.Front, c.Back).Scan(
		&c.ID, &c.CreatedAt, &c.UpdatedAt,
	)
}

// CreateGenerated persists a batch of AI-generated cards in one round trip.
func (r *CardRepo) CreateGenerated(ctx context.Context, deckID int64, cards []models.GeneratedCard) error {
	batch := &pgx.Batch{}
	for _, c := range cards {
		batch.Queue("INSERT INTO cards (deck_id, front, back) VALUES ($1, $2, $3)", deckID, c.Front, c.Back)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range cards {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return results.Close()
}

func (r *CardRepo) GetByID(ctx context.Context, cardID int64) (*models.Card, error) {
	c := &models.Card{}
	query := `SELECT id, deck_id, front, back, created_at, updated_at FROM cards WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, cardID).Scan(
		&c.ID, &c.DeckID, &c.Front, &c.Back, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CardRepo) ListByDeck(ctx context.Context, deckID int64) ([]models.Card, error) {
	query := `SELECT id, deck_id, front, back, created_at, updated_at
		FROM cards WHERE deck_id = $1 ORDER BY updated_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c := models.Card{}
		err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *CardRepo) Update(ctx context.Context, cardID int64, front, back *string) (*models.Card, error) {
	c := &models.Card{}
	query := `UPDATE cards
		SET front = COALESCE($2, front),
			back = COALESCE($3, back),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, deck_id, front, back, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, cardID, front, back).Scan(
		&c.ID, &c.DeckID, &c.Front, &c.Back, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CardRepo) Delete(ctx context.Context, cardID int64) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM cards WHERE id = $1", cardID)
	return err
}
