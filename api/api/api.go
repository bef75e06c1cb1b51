/* api.go
 * This file contains the public methods for interacting with this package. The bot, web server and command line all
 * go through these methods rather than the sub packages.
 */

package api

import (
	"context"
	"dwz-bot/api/external"
	"dwz-bot/api/logic"
	"dwz-bot/api/metrics"
	"dwz-bot/api/rating"
	"dwz-bot/api/shared"
	"dwz-bot/api/store"
	"errors"
	"fmt"
	"log"
	"time"
)

// API provides methods for looking up players and building their reports
type API struct {
	Store    store.Interface
	Provider external.Provider
	Limits   rating.Limits
	Style    rating.ChartStyle
	Metrics  *metrics.Metrics
}

// NewAPI creates a new API instance
// Preconditions: Receives the player search provider, an optional cache store, display limits and chart style
// Postconditions: Returns the API, or an error if no provider is given. A nil store disables caching.
func NewAPI(provider external.Provider, s store.Interface, limits rating.Limits, style rating.ChartStyle, m *metrics.Metrics) (*API, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider is required but none was provided")
	}
	if s == nil {
		s = store.NoopStore{}
	}
	return &API{
		Store:    s,
		Provider: provider,
		Limits:   limits,
		Style:    style,
		Metrics:  m,
	}, nil
}

// SearchPlayers searches the federation for a query
// Preconditions: Receives a context and a query with a name and optional club
// Postconditions: Returns the candidates matching the name (and club if given), or an error if it occurs.
// If the club rules out every candidate the name and club are searched again as one name, so an unquoted
// `$dwz Max Mustermann` still finds "Mustermann, Max".
func (a *API) SearchPlayers(ctx context.Context, query shared.Query) ([]external.PlayerSummary, error) {
	if query.IsEmpty() {
		return nil, fmt.Errorf("name is required")
	}

	candidates, err := a.search(ctx, query.Name)
	if err != nil {
		return nil, err
	}
	filtered := logic.FilterByClub(candidates, query.Club)
	if len(filtered) > 0 || query.Club == "" {
		return filtered, nil
	}

	return a.search(ctx, query.Name+" "+query.Club)
}

func (a *API) search(ctx context.Context, name string) ([]external.PlayerSummary, error) {
	start := time.Now()
	candidates, err := a.Provider.SearchPlayers(ctx, logic.SearchName(name))
	a.Metrics.ObserveProvider("search", start)
	return candidates, err
}

// ResolvePlayer narrows a query down to a single player
// Preconditions: Receives a context and a query
// Postconditions: Returns the player, ErrPlayerNotFound if nothing matches, *AmbiguousPlayerError if several players
// match, or another error
func (a *API) ResolvePlayer(ctx context.Context, query shared.Query) (external.PlayerSummary, error) {
	candidates, err := a.SearchPlayers(ctx, query)
	if err != nil {
		return external.PlayerSummary{}, err
	}

	switch len(candidates) {
	case 0:
		return external.PlayerSummary{}, ErrPlayerNotFound
	case 1:
		return candidates[0], nil
	}

	// A search for "Müller, Hans" also finds "Müller, Hans-Peter", prefer the exact name when it is unique
	if exact := logic.ExactName(candidates, query.Name); len(exact) == 1 {
		return exact[0], nil
	}
	return external.PlayerSummary{}, &AmbiguousPlayerError{Candidates: candidates}
}

// LookupPlayer resolves a query and builds the report of the matched player
// Preconditions: Receives a context and a query
// Postconditions: Returns the PlayerReport, or the errors described by ResolvePlayer and PlayerReportByID
func (a *API) LookupPlayer(ctx context.Context, query shared.Query) (*PlayerReport, error) {
	player, err := a.ResolvePlayer(ctx, query)
	if err != nil {
		a.observeLookupError(err)
		return nil, err
	}

	report, err := a.PlayerReportByID(ctx, player.ID)
	if err != nil {
		a.observeLookupError(err)
		return nil, err
	}
	a.Metrics.ObserveLookup(metrics.OutcomeFound)
	return report, nil
}

// PlayerReportByID builds the report for a player
// Preconditions: Receives a context and the federation id of the player
// Postconditions: Returns the PlayerReport, ErrPlayerNotFound if the federation has no such player, or another error.
// The report's series, statistics and chart are nil when the tournament history is too sparse for them.
func (a *API) PlayerReportByID(ctx context.Context, id string) (*PlayerReport, error) {
	card, err := a.PlayerCard(ctx, id)
	if err != nil {
		return nil, err
	}

	records := card.TournamentRecords()
	report := &PlayerReport{
		Player:     *card,
		Series:     rating.BuildSeries(rating.Normalize(records), a.Limits),
		Statistics: rating.ComputeStatistics(records),
	}

	if report.Series != nil {
		chart, err := rating.RenderPNG(rating.ToRenderConfig(*report.Series, a.Limits), a.Style)
		if err != nil {
			// The report is still useful without the chart
			log.Printf("error rendering chart for player %s: %v\n", id, err)
		} else {
			report.Chart = chart
			a.Metrics.ObserveChart()
		}
	}
	return report, nil
}

// PlayerCard returns the card of a player from the cache, or from the federation when it is not cached
// Preconditions: Receives a context and the federation id of the player
// Postconditions: Returns the card, ErrPlayerNotFound if the federation has no such player, or another error.
// Cache failures are logged and never fail the request.
func (a *API) PlayerCard(ctx context.Context, id string) (*external.PlayerCard, error) {
	card, err := a.Store.GetPlayerCard(ctx, id)
	if err == nil {
		a.Metrics.ObserveCache(true)
		return card, nil
	}
	a.Metrics.ObserveCache(false)
	if !errors.Is(err, store.ErrCacheMiss) {
		log.Println("player card cache lookup failed:", err)
	}

	start := time.Now()
	card, err = a.Provider.FetchPlayer(ctx, id)
	a.Metrics.ObserveProvider("fetch", start)
	if err != nil {
		if errors.Is(err, external.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if err := a.Store.StorePlayerCard(ctx, *card); err != nil {
		log.Println("failed to cache player card:", err)
	}
	return card, nil
}

func (a *API) observeLookupError(err error) {
	var ambiguous *AmbiguousPlayerError
	switch {
	case errors.Is(err, ErrPlayerNotFound):
		a.Metrics.ObserveLookup(metrics.OutcomeNotFound)
	case errors.As(err, &ambiguous):
		a.Metrics.ObserveLookup(metrics.OutcomeAmbiguous)
	default:
		a.Metrics.ObserveLookup(metrics.OutcomeError)
	}
}
