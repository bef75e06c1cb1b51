/* store_test.go
 * Contains unit tests for the store package. Tests that need a database are skipped unless MONGO_TEST_URI is set.
 */

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region NewStore tests

func TestNewStore_MissingArguments(t *testing.T) {
	_, err := NewStore(context.Background(), "", "mongodb://localhost:27017", time.Hour)
	assert.Error(t, err)

	_, err = NewStore(context.Background(), "db", "", time.Hour)
	assert.Error(t, err)
}

func TestNewStore_InvalidTTL(t *testing.T) {
	_, err := NewStore(context.Background(), "db", "mongodb://localhost:27017", 0)

	assert.Error(t, err)
}

func TestStore_CloseWithoutClient(t *testing.T) {
	s := &Store{}

	assert.NoError(t, s.Close(context.Background()))
}

// endregion

// region PlayerCardDoc tests

func TestPlayerCardDoc_Expiry(t *testing.T) {
	now := time.Unix(1700000000, 0)
	doc := NewPlayerCardDoc(CreateSamplePlayerCard("42"), now, time.Hour)

	assert.Equal(t, "42", doc.PlayerID)
	assert.Equal(t, now.Add(time.Hour).Unix(), doc.TTL)
	assert.False(t, doc.IsExpired(now))
	assert.False(t, doc.IsExpired(now.Add(time.Hour)))
	assert.True(t, doc.IsExpired(now.Add(time.Hour+time.Second)))
}

// endregion

// region NoopStore tests

func TestNoopStore(t *testing.T) {
	var s Interface = NoopStore{}

	_, err := s.GetPlayerCard(context.Background(), "1")
	assert.True(t, errors.Is(err, ErrCacheMiss))
	assert.NoError(t, s.StorePlayerCard(context.Background(), CreateSamplePlayerCard("1")))
	assert.NoError(t, s.Close(context.Background()))
}

// endregion

// region integration tests

func TestPlayerCards_Integration(t *testing.T) {
	mongoURI := TestMongoURI()
	if mongoURI == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	s, cleanup, err := CreateTestStore(mongoURI, time.Hour)
	require.NoError(t, err)
	defer cleanup()
	ctx := context.Background()

	_, err = s.GetPlayerCard(ctx, "10157565")
	assert.True(t, errors.Is(err, ErrCacheMiss))

	card := CreateSamplePlayerCard("10157565")
	require.NoError(t, s.StorePlayerCard(ctx, card))

	cached, err := s.GetPlayerCard(ctx, "10157565")
	require.NoError(t, err)
	assert.Equal(t, card.Name, cached.Name)
	require.Len(t, cached.Tournaments, 1)
	assert.Equal(t, "1607", *cached.Tournaments[0].RatingAfter)

	card.DWZ = "1650"
	require.NoError(t, s.StorePlayerCard(ctx, card))
	cached, err = s.GetPlayerCard(ctx, "10157565")
	require.NoError(t, err)
	assert.Equal(t, "1650", cached.DWZ)
}

func TestStorePlayerCard_MissingID(t *testing.T) {
	s := &Store{}

	err := s.StorePlayerCard(context.Background(), CreateSamplePlayerCard(""))

	assert.Error(t, err)
}

// endregion
