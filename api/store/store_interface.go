/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"context"
	"dwz-bot/api/external"
	"errors"
)

// ErrCacheMiss is returned when a player card is not cached or the cached entry has expired
var ErrCacheMiss = errors.New("player card not cached")

// Interface defines the methods that Store implements.
// This allows for mocking in tests and running without a database.
type Interface interface {
	GetPlayerCard(ctx context.Context, id string) (*external.PlayerCard, error)
	StorePlayerCard(ctx context.Context, card external.PlayerCard) error
	Close(ctx context.Context) error
}

// Ensure Store and NoopStore implement Interface
var (
	_ Interface = (*Store)(nil)
	_ Interface = NoopStore{}
)

// NoopStore is used when no database is configured. Every lookup is a cache miss and nothing is stored.
type NoopStore struct{}

func (NoopStore) GetPlayerCard(ctx context.Context, id string) (*external.PlayerCard, error) {
	return nil, ErrCacheMiss
}

func (NoopStore) StorePlayerCard(ctx context.Context, card external.PlayerCard) error {
	return nil
}

func (NoopStore) Close(ctx context.Context) error {
	return nil
}
