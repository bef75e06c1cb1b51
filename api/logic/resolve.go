/* resolve.go
 * Contains the logic for narrowing federation search results down to the player a user asked for
 */

package logic

import (
	"dwz-bot/api/external"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// CleanInput removes the quote characters Discord clients insert around arguments and trims whitespace
func CleanInput(input string) string {
	input = strings.ReplaceAll(input, "\"", "")
	input = strings.ReplaceAll(input, "“", "")
	input = strings.ReplaceAll(input, "”", "")
	input = strings.ReplaceAll(input, "„", "")
	return strings.TrimSpace(input)
}

// SearchName converts a user supplied name into the form the federation search expects.
// "Max Mustermann" becomes "Mustermann,Max" while "Mustermann, Max" and "Mustermann" only lose extra spaces.
func SearchName(name string) string {
	name = CleanInput(name)
	if last, first, ok := strings.Cut(name, ","); ok {
		return strings.TrimSpace(last) + "," + strings.TrimSpace(first)
	}
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	return parts[len(parts)-1] + "," + strings.Join(parts[:len(parts)-1], " ")
}

// FilterByClub narrows search results down to players of a club
// Preconditions: receives the candidates returned by the federation search and a (possibly empty) club name
// Postconditions: returns all candidates if club is empty. Otherwise returns the candidates whose club exactly
// matches (case insensitive) or, if there is none, the candidates of the best fuzzy matched club. Returns an empty
// slice if no club matches at all.
func FilterByClub(candidates []external.PlayerSummary, club string) []external.PlayerSummary {
	club = strings.ToLower(CleanInput(club))
	if club == "" {
		return candidates
	}

	var clubs []string
	seen := make(map[string]bool)
	for _, candidate := range candidates {
		lower := strings.ToLower(candidate.Club)
		if lower == "" || seen[lower] {
			continue
		}
		seen[lower] = true
		clubs = append(clubs, lower)
	}

	target := ""
	fuzzyResults := fuzzy.RankFindNormalizedFold(club, clubs)
	if len(fuzzyResults) == 0 {
		return []external.PlayerSummary{}
	}
	// Prefer an exact match, otherwise take the best ranked one
	for _, result := range fuzzyResults {
		if result.Target == club {
			target = result.Target
		}
	}
	if target == "" {
		best := fuzzyResults[0]
		for _, result := range fuzzyResults[1:] {
			if result.Distance < best.Distance {
				best = result
			}
		}
		target = best.Target
	}

	var filtered []external.PlayerSummary
	for _, candidate := range candidates {
		if strings.ToLower(candidate.Club) == target {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}

// ExactName returns the candidates whose name equals the query, ignoring case, commas and spacing.
// It is used to pick a single player when a search also returns players with longer names.
func ExactName(candidates []external.PlayerSummary, name string) []external.PlayerSummary {
	want := nameKey(name)
	var exact []external.PlayerSummary
	for _, candidate := range candidates {
		if nameKey(candidate.Name) == want {
			exact = append(exact, candidate)
		}
	}
	return exact
}

func nameKey(name string) string {
	name = strings.ToLower(SearchName(name))
	name = strings.ReplaceAll(name, ",", " ")
	return strings.Join(strings.Fields(name), " ")
}
