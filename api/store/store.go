/* store.go
 * Contains the store struct and NewStore function. The store caches player cards fetched from the federation so
 * repeated lookups of the same player do not hit the website again until the cache entry expires.
 */

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	TTL         time.Duration
	Collections struct {
		PlayerCards *mongo.Collection
	}
}

// Function for initialising Store. Connects to the db and sets the collection values
// Preconditions: Receives a context, the db name, mongo uri and the cache ttl
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(ctx context.Context, dbName string, mongoURI string, ttl time.Duration) (*Store, error) {
	if dbName == "" || mongoURI == "" {
		return nil, fmt.Errorf("dbName and mongoURI cannot be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, received %s", ttl)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
		TTL:      ttl,
	}
	s.Collections.PlayerCards = db.Collection("player_cards")
	return s, nil
}

// Close disconnects the mongo client
func (s *Store) Close(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}
