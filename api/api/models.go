/* models.go
 * This file contains the structs and errors that are used by api consumers
 */

package api

import (
	"dwz-bot/api/external"
	"dwz-bot/api/rating"
	"errors"
	"fmt"
)

// ErrPlayerNotFound is returned when a query matches no player
var ErrPlayerNotFound = errors.New("player not found")

// AmbiguousPlayerError is returned when a query matches more than one player
type AmbiguousPlayerError struct {
	Candidates []external.PlayerSummary
}

func (e *AmbiguousPlayerError) Error() string {
	return fmt.Sprintf("query matches %d players", len(e.Candidates))
}

// PlayerReport is everything the presentation layer shows for a player.
// Series, Statistics and Chart are nil when there is not enough data for them.
type PlayerReport struct {
	Player     external.PlayerCard
	Series     *rating.Series
	Statistics *rating.Statistics
	Chart      []byte
}

// HasChart reports whether the report contains a rendered chart
func (r *PlayerReport) HasChart() bool {
	return r != nil && len(r.Chart) > 0
}
