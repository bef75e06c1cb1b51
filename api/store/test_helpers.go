/* test_helpers.go
 * Contains test helper functions for store package tests
 */

package store

import (
	"context"
	"dwz-bot/api/external"
	"os"
	"time"
)

// TestMongoURI returns the mongo uri used by integration tests, or an empty string if none is configured
func TestMongoURI() string {
	return os.Getenv("MONGO_TEST_URI")
}

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function that drops the database.
func CreateTestStore(mongoURI string, ttl time.Duration) (*Store, func(), error) {
	store, err := NewStore(context.TODO(), "test_dwz_bot", mongoURI, ttl)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		store.Database.Drop(context.TODO())
		store.Close(context.TODO())
	}
	return store, cleanup, nil
}

// CreateSamplePlayerCard creates sample PlayerCard data for testing.
func CreateSamplePlayerCard(id string) external.PlayerCard {
	before, after, games, points := "1532", "1607", "7", "5.5"
	return external.PlayerCard{
		ID:   id,
		Name: "Mustermann, Max",
		Club: "SK Musterstadt 1920",
		DWZ:  "1607",
		Tournaments: []external.TournamentRow{
			{Index: 1, Name: "Vereinsmeisterschaft", RatingBefore: &before, RatingAfter: &after, Games: &games, Points: &points},
		},
	}
}
