/* entry.go
 * Contains the queue Entry: one waiting player or registered team
 * Authors: Ahasuerus
 */

package queue

import (
	"time"

	"ravens-nest/api/elo"
	"ravens-nest/api/registry"
	"ravens-nest/api/shared"
)

// Entry is a waiting participant. Exactly one of Player and Team is set: Team for the 3v3 reg queue, Player otherwise.
type Entry struct {
	Player         *registry.Player
	Team           *registry.Team
	RankRestricted bool
	// PartyID is empty for an unconstrained individual
	PartyID  string
	QueuedAt time.Time
}

// Name returns the player or team name the entry is keyed by
func (e Entry) Name() string {
	if e.Team != nil {
		return e.Team.Name
	}
	return e.Player.Name
}

// Rating returns the rating the entry is matched on in the given format
func (e Entry) Rating(format shared.Format) int {
	if e.Team != nil {
		return e.Team.Rating
	}
	return e.Player.Rating(format)
}

// Rank returns the rank tier the entry is matched on in the given format
func (e Entry) Rank(format shared.Format) elo.Rank {
	return elo.RankFor(e.Rating(format))
}

// permits reports whether e's rank restriction, if any, accepts an opponent of the given rank
func (e Entry) permits(format shared.Format, opponent elo.Rank) bool {
	return !e.RankRestricted || opponent <= e.Rank(format)
}
