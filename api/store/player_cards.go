/* player_cards.go
 * Contains the methods for interacting with the player_cards collection
 */

package store

import (
	"context"
	"dwz-bot/api/external"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetPlayerCard fetches a cached player card from the db
// Preconditions: Receives a context and the federation id of the player
// Postconditions: Returns the cached card, ErrCacheMiss if there is no entry or it has expired, or another error
func (s *Store) GetPlayerCard(ctx context.Context, id string) (*external.PlayerCard, error) {
	var doc PlayerCardDoc
	err := s.Collections.PlayerCards.FindOne(ctx, bson.D{{Key: "player_id", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("error fetching player card from db: %w", err)
	}
	if doc.IsExpired(time.Now()) {
		return nil, ErrCacheMiss
	}
	return &doc.Card, nil
}

// StorePlayerCard inserts or replaces the cached card of a player
// Preconditions: Receives a context and a card with a non empty ID
// Postconditions: Updates the data stored in the db, returns error message if the operation was unsuccessful
func (s *Store) StorePlayerCard(ctx context.Context, card external.PlayerCard) error {
	if card.ID == "" {
		return fmt.Errorf("player card has no id")
	}

	doc := NewPlayerCardDoc(card, time.Now(), s.TTL)
	filter := bson.M{"player_id": card.ID}
	log.Printf("caching player card %s\n", card.ID)

	_, err := s.Collections.PlayerCards.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to cache player card: %w", err)
	}
	return nil
}
