/* models.go
 * This file contains the structs that relate to DB objects
 */

package store

import (
	"dwz-bot/api/external"
	"time"
)

// PlayerCardDoc is the cached form of a player card
type PlayerCardDoc struct {
	PlayerID string              `bson:"player_id"`
	Card     external.PlayerCard `bson:"card"`
	TTL      int64               `bson:"ttl"`
}

// IsExpired reports whether the document's TTL has passed at the given time
func (d PlayerCardDoc) IsExpired(now time.Time) bool {
	return d.TTL < now.Unix()
}

// NewPlayerCardDoc wraps a card in a document that expires after ttl
func NewPlayerCardDoc(card external.PlayerCard, now time.Time, ttl time.Duration) PlayerCardDoc {
	return PlayerCardDoc{
		PlayerID: card.ID,
		Card:     card,
		TTL:      now.Add(ttl).Unix(),
	}
}
