/* models.go
 * This file contains the models used by the external package when fetching player data from the federation
 */

package external

import (
	"context"
	"dwz-bot/api/rating"
)

// Provider is the player search provider used by the api package. DewisClient is the production implementation.
type Provider interface {
	SearchPlayers(ctx context.Context, name string) ([]PlayerSummary, error)
	FetchPlayer(ctx context.Context, id string) (*PlayerCard, error)
}

// PlayerSummary is a single row of a federation player search
type PlayerSummary struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Club string `bson:"club,omitempty" json:"club,omitempty"`
	DWZ  string `bson:"dwz,omitempty" json:"dwz,omitempty"`
}

// PlayerCard is the detailed player record including the rated tournament history
type PlayerCard struct {
	ID          string          `bson:"id" json:"id"`
	Name        string          `bson:"name" json:"name"`
	Club        string          `bson:"club,omitempty" json:"club,omitempty"`
	DWZ         string          `bson:"dwz,omitempty" json:"dwz,omitempty"`
	DWZIndex    string          `bson:"dwz_index,omitempty" json:"dwzIndex,omitempty"`
	Elo         string          `bson:"elo,omitempty" json:"elo,omitempty"`
	FideID      string          `bson:"fide_id,omitempty" json:"fideId,omitempty"`
	Tournaments []TournamentRow `bson:"tournaments,omitempty" json:"tournaments,omitempty"`
}

// TournamentRow is a tournament as listed on the player card. All fields other than Index are copied verbatim from
// the federation and may be missing or malformed.
type TournamentRow struct {
	Index        int     `bson:"index" json:"index"`
	Code         string  `bson:"code,omitempty" json:"code,omitempty"`
	Name         string  `bson:"name,omitempty" json:"name,omitempty"`
	RatingBefore *string `bson:"rating_before,omitempty" json:"ratingBefore,omitempty"`
	RatingAfter  *string `bson:"rating_after,omitempty" json:"ratingAfter,omitempty"`
	Games        *string `bson:"games,omitempty" json:"games,omitempty"`
	Points       *string `bson:"points,omitempty" json:"points,omitempty"`
}

// TournamentRecords converts the tournament rows into the records used by the rating package
func (p PlayerCard) TournamentRecords() []rating.TournamentRecord {
	records := make([]rating.TournamentRecord, 0, len(p.Tournaments))
	for _, row := range p.Tournaments {
		records = append(records, rating.TournamentRecord{
			SequenceIndex: row.Index,
			Name:          row.Name,
			RatingBefore:  row.RatingBefore,
			RatingAfter:   row.RatingAfter,
			GamesPlayed:   row.Games,
			PointsScored:  row.Points,
		})
	}
	return records
}
