package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"flashdeck-backend/internal/models"
)

type DeckRepo struct {
	pool *pgxpool.Pool
}

func NewDeckRepo(pool *pgxpool.Pool) *DeckRepo {
	return &DeckRepo{pool: pool}
}

func (r *DeckRepo) Create(ctx context.Context, d *models.Deck) error {
	query := `INSERT INTO decks (user_id, name, description)
		VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query, d.UserID, d.Name, d.Description).Scan(
		&d.ID, &d.CreatedAt, &d.UpdatedAt,
	)
}

// GetByID is an ownership-scoped lookup; a deck that is missing or owned by
// another user yields (nil, nil).
func (r *DeckRepo) GetByID(ctx context.Context, deckID int64, userID uuid.UUID) (*models.Deck, error) {
	d := &models.Deck{}
	query := `SELECT d.id, d.user_id, d.name, d.description,
			(SELECT COUNT(*) FROM cards c WHERE c.deck_id = d.id),
			d.created_at, d.updated_at
		FROM decks d WHERE d.id = $1 AND d.user_id = $2`

	err := r.pool.QueryRow(ctx, query, deckID, userID).Scan(
		&d.ID, &d.UserID, &d.Name, &d.Description, &d.CardCount, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DeckRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Deck, error) {
	query := `SELECT d.id, d.user_id, d.name, d.description,
			(SELECT COUNT(*) FROM cards c WHERE c.deck_id = d.id),
			d.created_at, d.updated_at
		FROM decks d WHERE d.user_id = $1 ORDER BY d.updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []*models.Deck
	for rows.Next() {
		d := &models.Deck{}
		err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Description, &d.CardCount, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (r *DeckRepo) Update(ctx context.Context, deckID int64, userID uuid.UUID, name, description *string) (*models.Deck, error) {
	d := &models.Deck{}
	query := `UPDATE decks
		SET name = COALESCE($3, name),
			description = COALESCE($4, description),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, description, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, deckID, userID, name, description).Scan(
		&d.ID, &d.UserID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the deck; cards, study sessions, and generation records
// cascade at the schema level.
func (r *DeckRepo) Delete(ctx context.Context, deckID int64, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM decks WHERE id = $1 AND user_id = $2", deckID, userID)
	return err
}
