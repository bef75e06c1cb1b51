/* records.go
 * Contains the tournament record types consumed by the rating package and the helpers that coerce the federation's
 * loosely typed string fields into numbers. Every consumer in this package parses through these helpers.
 */

package rating

import (
	"fmt"
	"strconv"
	"strings"
)

// TournamentRecord is a single tournament row as received from the player search provider.
// A nil pointer means the field was absent in the source data.
type TournamentRecord struct {
	SequenceIndex int
	Name          string
	RatingBefore  *string
	RatingAfter   *string
	GamesPlayed   *string
	PointsScored  *string
}

// NormalizedRecord is a TournamentRecord with a usable ending rating and parsed numeric fields.
// RatingBefore is nil when the starting rating is unknown, which is not the same as zero.
type NormalizedRecord struct {
	SequenceIndex int
	Name          string
	RatingBefore  *int
	RatingAfter   int
	Games         int
	Points        float64
}

// ParseRating converts a textual rating into an integer
// Preconditions: Receives an optional string
// Postconditions: Returns the rating and true if the string is present, non-empty, not "0" and parses to a positive
// integer, otherwise returns 0 and false
func ParseRating(value *string) (int, bool) {
	if value == nil {
		return 0, false
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" || trimmed == "0" {
		return 0, false
	}
	rating, err := strconv.Atoi(trimmed)
	if err != nil || rating <= 0 {
		return 0, false
	}
	return rating, true
}

// ParseGames converts a textual game count into an integer, defaulting to 0
func ParseGames(value *string) int {
	if value == nil {
		return 0
	}
	games, err := strconv.Atoi(strings.TrimSpace(*value))
	if err != nil || games < 0 {
		return 0
	}
	return games
}

// ParsePoints converts a textual score into a float. Half points may be written as "4.5" or "4,5".
// Unparseable values default to 0.
func ParsePoints(value *string) float64 {
	if value == nil {
		return 0
	}
	trimmed := strings.ReplaceAll(strings.TrimSpace(*value), ",", ".")
	points, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || points < 0 {
		return 0
	}
	return points
}

// displayName returns the tournament name, or a placeholder when the source had none
func displayName(record TournamentRecord) string {
	name := strings.TrimSpace(record.Name)
	if name == "" {
		return fmt.Sprintf("Tournament %d", record.SequenceIndex)
	}
	return name
}
