/* side.go
 * Contains the Side variants a match can be played between. Which variant is valid depends on the match format:
 * Solo for 1v1, Registered for 3v3 reg and Flex for 3v3 flex
 * Authors: Ahasuerus
 */

package match

import (
	"ravens-nest/api/registry"
	"ravens-nest/api/shared"
)

// Side is one half of a match. The set of implementations is closed.
type Side interface {
	// Names returns the identities reported for this side: the player, the team, or the three flex players
	Names() []string
	// Contains reports whether name identifies this side or one of its players
	Contains(name string) bool
	format() shared.Format
}

// Solo is a single player side for 1v1 matches
type Solo struct {
	Player *registry.Player
}

func (s Solo) Names() []string { return []string{s.Player.Name} }

func (s Solo) Contains(name string) bool { return s.Player.Name == name }

func (Solo) format() shared.Format { return shared.FormatSingles }

// Registered is a registered team side for 3v3 reg matches
type Registered struct {
	Team *registry.Team
}

func (r Registered) Names() []string { return []string{r.Team.Name} }

// Contains matches the team name or any roster member
func (r Registered) Contains(name string) bool {
	return r.Team.Name == name || r.Team.HasMember(name)
}

func (Registered) format() shared.Format { return shared.FormatRegistered }

// Flex is an ad-hoc group of three players for 3v3 flex matches. It has no team entity behind it.
type Flex struct {
	Players [3]*registry.Player
}

func (f Flex) Names() []string {
	names := make([]string, 0, len(f.Players))
	for _, p := range f.Players {
		names = append(names, p.Name)
	}
	return names
}

func (f Flex) Contains(name string) bool {
	for _, p := range f.Players {
		if p != nil && p.Name == name {
			return true
		}
	}
	return false
}

func (Flex) format() shared.Format { return shared.FormatFlex }
