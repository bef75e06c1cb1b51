/* statistics.go
 * Contains the statistics calculator. It works on the raw tournament records and only counts tournaments where both
 * the starting and the ending rating are known, which is stricter than the chart. A tournament without a starting
 * rating can still be plotted but never contributes to a rating delta here.
 */

package rating

import (
	"math"
	"sort"
)

// Statistics summarises a player's rated tournament history
type Statistics struct {
	StartingRating      int     `json:"startingRating"`
	CurrentRating       int     `json:"currentRating"`
	NetChange           int     `json:"netChange"`
	BestGain            int     `json:"bestGain"`
	WorstLoss           int     `json:"worstLoss"`
	TournamentCount     int     `json:"tournamentCount"`
	TotalGames          int     `json:"totalGames"`
	TotalPoints         float64 `json:"totalPoints"`
	AverageScorePercent float64 `json:"averageScorePercent"`
}

type ratedTournament struct {
	sequenceIndex int
	before        int
	after         int
	games         int
	points        float64
}

// ComputeStatistics calculates summary statistics from raw tournament records
// Preconditions: Receives a slice of TournamentRecord in any order and of any completeness
// Postconditions: Returns nil if no record has both a usable starting and ending rating, otherwise returns the
// statistics over those records
func ComputeStatistics(records []TournamentRecord) *Statistics {
	var rated []ratedTournament
	for _, record := range records {
		before, ok := ParseRating(record.RatingBefore)
		if !ok {
			continue
		}
		after, ok := ParseRating(record.RatingAfter)
		if !ok {
			continue
		}
		rated = append(rated, ratedTournament{
			sequenceIndex: record.SequenceIndex,
			before:        before,
			after:         after,
			games:         ParseGames(record.GamesPlayed),
			points:        ParsePoints(record.PointsScored),
		})
	}
	if len(rated) == 0 {
		return nil
	}

	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].sequenceIndex < rated[j].sequenceIndex
	})

	stats := &Statistics{
		StartingRating:  rated[0].before,
		CurrentRating:   rated[len(rated)-1].after,
		BestGain:        math.MinInt,
		WorstLoss:       math.MaxInt,
		TournamentCount: len(rated),
	}
	stats.NetChange = stats.CurrentRating - stats.StartingRating

	for _, t := range rated {
		change := t.after - t.before
		stats.BestGain = max(stats.BestGain, change)
		stats.WorstLoss = min(stats.WorstLoss, change)
		stats.TotalGames += t.games
		stats.TotalPoints += t.points
	}

	if stats.TotalGames > 0 {
		stats.AverageScorePercent = math.Round(stats.TotalPoints/float64(stats.TotalGames)*1000) / 10
	}
	return stats
}
