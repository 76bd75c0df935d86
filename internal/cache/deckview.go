package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// DeckViewCache holds the rendered deck-detail payload in Redis so repeat
// reads skip the database. Writes are fire-and-forget: a cache failure is
// logged and never fails the request.
type DeckViewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDeckViewCache(rdb *redis.Client) *DeckViewCache {
	return &DeckViewCache{rdb: rdb, ttl: 5 * time.Minute}
}

func deckViewKey(deckID int64) string {
	return fmt.Sprintf("deck_view:%d", deckID)
}

func (c *DeckViewCache) Get(ctx context.Context, deckID int64) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, deckViewKey(deckID)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *DeckViewCache) Set(ctx context.Context, deckID int64, payload []byte) {
	if err := c.rdb.Set(ctx, deckViewKey(deckID), payload, c.ttl).Err(); err != nil {
		log.Printf("deck view cache: set failed for deck %d: %v", deckID, err)
	}
}

func (c *DeckViewCache) InvalidateDeck(ctx context.Context, deckID int64) {
	if err := c.rdb.Del(ctx, deckViewKey(deckID)).Err(); err != nil {
		log.Printf("deck view cache: invalidate failed for deck %d: %v", deckID, err)
	}
}
