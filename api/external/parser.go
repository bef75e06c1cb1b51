/* parser.go
 * Contains the logic used to parse the federation's search page HTML and serialized player cards into the models
 * used by the rest of the application
 */

package external

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

var (
	searchRowPattern = regexp.MustCompile(`(?is)<tr[^>]*>\s*<td[^>]*>\s*<a[^>]*href="[^"]*pkz=(\d+)[^"]*"[^>]*>(.*?)</a>\s*</td>\s*<td[^>]*>(.*?)</td>\s*<td[^>]*>(.*?)</td>`)
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	spacePattern     = regexp.MustCompile(`\s+`)
)

// ParseSearchResults extracts players from the federation's search result page
// Preconditions: Receives the html of a search result page
// Postconditions: Returns a slice of PlayerSummary in page order. Rows that do not match the expected layout are
// skipped, so an unrelated page yields an empty slice.
func ParseSearchResults(page string) []PlayerSummary {
	var players []PlayerSummary
	seen := make(map[string]bool)
	for _, match := range searchRowPattern.FindAllStringSubmatch(page, -1) {
		id := match[1]
		if seen[id] {
			continue
		}
		seen[id] = true

		dwz, _, _ := strings.Cut(cleanText(match[4]), "-")
		players = append(players, PlayerSummary{
			ID:   id,
			Name: cleanText(match[2]),
			Club: cleanText(match[3]),
			DWZ:  strings.TrimSpace(dwz),
		})
	}
	return players
}

// cleanText strips tags, unescapes entities and collapses whitespace
func cleanText(fragment string) string {
	text := tagPattern.ReplaceAllString(fragment, " ")
	text = strings.ReplaceAll(html.UnescapeString(text), "\u00a0", " ")
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

// ParsePlayerCard decodes a serialized DeWIS player card
// Preconditions: Receives the serialized PHP array returned by spieler.php?format=array
// Postconditions: Returns the player card, ErrPlayerNotFound if the payload has no player section, or an error if the
// payload cannot be decoded
func ParsePlayerCard(data []byte) (*PlayerCard, error) {
	decoded, err := unserializePHP(data)
	if err != nil {
		return nil, err
	}
	root, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected array at top level, got %T", decoded)
	}
	member, ok := root["spieler"].(map[string]any)
	if !ok {
		return nil, ErrPlayerNotFound
	}

	card := &PlayerCard{
		ID:       field(member, "pkz"),
		Name:     joinName(field(member, "nachname"), field(member, "vorname")),
		DWZ:      zeroAsEmpty(field(member, "dwz")),
		DWZIndex: zeroAsEmpty(field(member, "dwzindex")),
		Elo:      zeroAsEmpty(field(member, "fideelo")),
		FideID:   zeroAsEmpty(field(member, "fideid")),
	}

	for _, entry := range phpList(root["mitgliedschaft"]) {
		if membership, ok := entry.(map[string]any); ok {
			if club := field(membership, "vereinsname"); club != "" {
				card.Club = club
				break
			}
		}
	}

	for i, entry := range phpList(root["turniere"]) {
		tournament, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		index, err := strconv.Atoi(field(tournament, "laufendenummer"))
		if err != nil {
			index = i + 1
		}
		card.Tournaments = append(card.Tournaments, TournamentRow{
			Index:        index,
			Code:         field(tournament, "turniercode"),
			Name:         field(tournament, "turniername"),
			RatingBefore: phpString(tournament["dwzalt"]),
			RatingAfter:  phpString(tournament["dwzneu"]),
			Games:        phpString(tournament["partien"]),
			Points:       phpString(tournament["punkte"]),
		})
	}
	return card, nil
}

func field(values map[string]any, key string) string {
	if s := phpString(values[key]); s != nil {
		return strings.TrimSpace(*s)
	}
	return ""
}

func zeroAsEmpty(value string) string {
	if value == "0" {
		return ""
	}
	return value
}

func joinName(last, first string) string {
	switch {
	case last == "":
		return first
	case first == "":
		return last
	}
	return last + ", " + first
}
