/* normalize.go
 * Contains the record normalizer which turns the raw tournament list into the ordered working set used to build the
 * rating chart
 */

package rating

import "sort"

// Normalize filters and orders raw tournament records
// Preconditions: Receives a slice of TournamentRecord in any order and of any completeness
// Postconditions: Returns the records with a usable ending rating, parsed and sorted oldest first by sequence index.
// The sort is stable so records sharing an index keep their input order. The input is not modified.
func Normalize(records []TournamentRecord) []NormalizedRecord {
	normalized := make([]NormalizedRecord, 0, len(records))
	for _, record := range records {
		after, ok := ParseRating(record.RatingAfter)
		if !ok {
			continue
		}

		entry := NormalizedRecord{
			SequenceIndex: record.SequenceIndex,
			Name:          displayName(record),
			RatingAfter:   after,
			Games:         ParseGames(record.GamesPlayed),
			Points:        ParsePoints(record.PointsScored),
		}
		if before, ok := ParseRating(record.RatingBefore); ok {
			entry.RatingBefore = &before
		}
		normalized = append(normalized, entry)
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].SequenceIndex < normalized[j].SequenceIndex
	})
	return normalized
}
