/* test_mocks.go
 * Contains mock structures for testing the API package and its consumers
 */

package api

import (
	"context"
	"dwz-bot/api/external"
	"dwz-bot/api/rating"
	"dwz-bot/api/store"
)

// MockStore implements the store Interface for testing
type MockStore struct {
	Cards map[string]external.PlayerCard

	// Error injection for testing error paths
	GetPlayerCardError   error
	StorePlayerCardError error

	StoreCalls int
}

// NewMockStore creates an empty MockStore
func NewMockStore() *MockStore {
	return &MockStore{Cards: make(map[string]external.PlayerCard)}
}

// GetPlayerCard mock implementation
func (m *MockStore) GetPlayerCard(ctx context.Context, id string) (*external.PlayerCard, error) {
	if m.GetPlayerCardError != nil {
		return nil, m.GetPlayerCardError
	}
	card, ok := m.Cards[id]
	if !ok {
		return nil, store.ErrCacheMiss
	}
	return &card, nil
}

// StorePlayerCard mock implementation
func (m *MockStore) StorePlayerCard(ctx context.Context, card external.PlayerCard) error {
	m.StoreCalls++
	if m.StorePlayerCardError != nil {
		return m.StorePlayerCardError
	}
	m.Cards[card.ID] = card
	return nil
}

// Close mock implementation
func (m *MockStore) Close(ctx context.Context) error {
	return nil
}

// MockProvider implements external.Provider for testing
type MockProvider struct {
	// SearchResults maps the federation search name (e.g. "Mustermann,Max") to its results
	SearchResults map[string][]external.PlayerSummary
	Cards         map[string]external.PlayerCard

	SearchError error
	FetchError  error

	SearchCalls []string
	FetchCalls  []string
}

// NewMockProvider creates an empty MockProvider
func NewMockProvider() *MockProvider {
	return &MockProvider{
		SearchResults: make(map[string][]external.PlayerSummary),
		Cards:         make(map[string]external.PlayerCard),
	}
}

// SearchPlayers mock implementation
func (m *MockProvider) SearchPlayers(ctx context.Context, name string) ([]external.PlayerSummary, error) {
	m.SearchCalls = append(m.SearchCalls, name)
	if m.SearchError != nil {
		return nil, m.SearchError
	}
	return m.SearchResults[name], nil
}

// FetchPlayer mock implementation
func (m *MockProvider) FetchPlayer(ctx context.Context, id string) (*external.PlayerCard, error) {
	m.FetchCalls = append(m.FetchCalls, id)
	if m.FetchError != nil {
		return nil, m.FetchError
	}
	card, ok := m.Cards[id]
	if !ok {
		return nil, external.ErrPlayerNotFound
	}
	return &card, nil
}

// AddPlayer registers a player under a search name and returns the provider for chaining
func (m *MockProvider) AddPlayer(searchName string, card external.PlayerCard) *MockProvider {
	m.SearchResults[searchName] = append(m.SearchResults[searchName], external.PlayerSummary{
		ID:   card.ID,
		Name: card.Name,
		Club: card.Club,
		DWZ:  card.DWZ,
	})
	m.Cards[card.ID] = card
	return m
}

// NewMockAPI creates an API backed by the given mock provider and store
func NewMockAPI(provider *MockProvider, s *MockStore) *API {
	return &API{
		Store:    s,
		Provider: provider,
		Limits:   rating.DefaultLimits(),
		Style:    rating.DefaultChartStyle(),
	}
}

// SampleCard creates a player card with a rated tournament history for testing
func SampleCard(id string, name string, club string) external.PlayerCard {
	row := func(index int, name, before, after, games, points string) external.TournamentRow {
		return external.TournamentRow{
			Index:        index,
			Name:         name,
			RatingBefore: &before,
			RatingAfter:  &after,
			Games:        &games,
			Points:       &points,
		}
	}
	return external.PlayerCard{
		ID:   id,
		Name: name,
		Club: club,
		DWZ:  "1550",
		Tournaments: []external.TournamentRow{
			row(2, "Bezirksliga Nord", "1520", "1550", "6", "4"),
			row(1, "Vereinsmeisterschaft", "1500", "1520", "5", "3.5"),
		},
	}
}

// SparseCard creates a player card with a single rated tournament, too little for a chart
func SparseCard(id string, name string, club string) external.PlayerCard {
	before, after := "1500", "1520"
	return external.PlayerCard{
		ID:   id,
		Name: name,
		Club: club,
		DWZ:  "1520",
		Tournaments: []external.TournamentRow{
			{Index: 1, Name: "Open", RatingBefore: &before, RatingAfter: &after},
		},
	}
}
