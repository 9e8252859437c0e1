/* models.go
 * Contains the Player and Team entities owned by the registries, and the flat records used to export and import them
 * Authors: Ahasuerus
 */

package registry

import (
	"fmt"
	"math"

	"ravens-nest/api/elo"
	"ravens-nest/api/shared"
)

// Player is an individual participant. A player carries one rating per axis: singles for 1v1 and teams for 3v3
// flex matches. Ratings are only changed through the setters so the ranks never go stale.
type Player struct {
	ID            string
	Name          string
	Team          string
	SinglesRating int
	TeamsRating   int
	SinglesRank   elo.Rank
	TeamsRank     elo.Rank
	SinglesWins   int
	SinglesLosses int
	TeamsWins     int
	TeamsLosses   int
}

// NewPlayer creates a player with the initial rating on both axes
func NewPlayer(id string, name string, team string) *Player {
	p := &Player{
		ID:   id,
		Name: name,
		Team: team,
	}
	p.SetSinglesRating(elo.InitialRating)
	p.SetTeamsRating(elo.InitialRating)
	return p
}

// Key returns the registry key for the player
func (p *Player) Key() string {
	return p.Name
}

// SetSinglesRating clamps and stores the 1v1 rating and recomputes the 1v1 rank
func (p *Player) SetSinglesRating(rating int) {
	p.SinglesRating = elo.Clamp(rating)
	p.SinglesRank = elo.RankFor(p.SinglesRating)
}

// SetTeamsRating clamps and stores the 3v3 rating and recomputes the 3v3 rank
func (p *Player) SetTeamsRating(rating int) {
	p.TeamsRating = elo.Clamp(rating)
	p.TeamsRank = elo.RankFor(p.TeamsRating)
}

// Rating returns the rating the player is matched on for a format
func (p *Player) Rating(format shared.Format) int {
	if format == shared.FormatSingles {
		return p.SinglesRating
	}
	return p.TeamsRating
}

// Rank returns the rank tier for a format
func (p *Player) Rank(format shared.Format) elo.Rank {
	if format == shared.FormatSingles {
		return p.SinglesRank
	}
	return p.TeamsRank
}

// Record returns the wins and losses for a format
func (p *Player) Record(format shared.Format) (int, int) {
	if format == shared.FormatSingles {
		return p.SinglesWins, p.SinglesLosses
	}
	return p.TeamsWins, p.TeamsLosses
}

// WinLossRatio returns wins / losses for a format, +Inf when the player has wins but no losses and 0 with no games
func (p *Player) WinLossRatio(format shared.Format) float64 {
	wins, losses := p.Record(format)
	return ratio(wins, losses)
}

// Team is a registered 3 player unit with its own rating, independent of its members' individual ratings
type Team struct {
	Name   string
	Roster [3]*Player
	Rating int
	Rank   elo.Rank
	Wins   int
	Losses int
}

// NewTeam creates a team at the initial rating
// Preconditions: Receives the team name and exactly 3 distinct players
// Postconditions: Returns the team, or an error wrapping ErrInvalidSideComposition
func NewTeam(name string, members []*Player) (*Team, error) {
	if len(members) != 3 {
		return nil, fmt.Errorf("%w: team %s needs exactly 3 players, got %d", shared.ErrInvalidSideComposition, name, len(members))
	}
	t := &Team{Name: name}
	seen := make(map[string]bool)
	for i, member := range members {
		if member == nil {
			return nil, fmt.Errorf("%w: team %s has an empty roster slot", shared.ErrInvalidSideComposition, name)
		}
		if seen[member.Name] {
			return nil, fmt.Errorf("%w: '%s' appears twice on team %s", shared.ErrInvalidSideComposition, member.Name, name)
		}
		seen[member.Name] = true
		t.Roster[i] = member
	}
	t.SetRating(elo.InitialRating)
	return t, nil
}

// Key returns the registry key for the team
func (t *Team) Key() string {
	return t.Name
}

// SetRating clamps and stores the team rating and recomputes the team rank
func (t *Team) SetRating(rating int) {
	t.Rating = elo.Clamp(rating)
	t.Rank = elo.RankFor(t.Rating)
}

// MemberNames returns the roster names in roster order
func (t *Team) MemberNames() []string {
	names := make([]string, 0, len(t.Roster))
	for _, member := range t.Roster {
		names = append(names, member.Name)
	}
	return names
}

// HasMember reports whether name is on the roster
func (t *Team) HasMember(name string) bool {
	for _, member := range t.Roster {
		if member != nil && member.Name == name {
			return true
		}
	}
	return false
}

// WinLossRatio returns wins / losses, +Inf when the team has wins but no losses and 0 with no games
func (t *Team) WinLossRatio() float64 {
	return ratio(t.Wins, t.Losses)
}

func ratio(wins, losses int) float64 {
	if losses == 0 {
		if wins == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return float64(wins) / float64(losses)
}

// PlayerRecord is the flat export form of a Player
type PlayerRecord struct {
	ID            string `bson:"id" json:"id"`
	Name          string `bson:"name" json:"name"`
	SinglesRating int    `bson:"singles_rating" json:"singlesRating"`
	TeamsRating   int    `bson:"teams_rating" json:"teamsRating"`
	SinglesRank   string `bson:"singles_rank" json:"singlesRank"`
	TeamsRank     string `bson:"teams_rank" json:"teamsRank"`
	Team          string `bson:"team,omitempty" json:"team,omitempty"`
	SinglesWins   int    `bson:"singles_wins" json:"singlesWins"`
	SinglesLosses int    `bson:"singles_losses" json:"singlesLosses"`
	TeamsWins     int    `bson:"teams_wins" json:"teamsWins"`
	TeamsLosses   int    `bson:"teams_losses" json:"teamsLosses"`
}

// ToRecord exports the player
func (p *Player) ToRecord() PlayerRecord {
	return PlayerRecord{
		ID:            p.ID,
		Name:          p.Name,
		SinglesRating: p.SinglesRating,
		TeamsRating:   p.TeamsRating,
		SinglesRank:   p.SinglesRank.String(),
		TeamsRank:     p.TeamsRank.String(),
		Team:          p.Team,
		SinglesWins:   p.SinglesWins,
		SinglesLosses: p.SinglesLosses,
		TeamsWins:     p.TeamsWins,
		TeamsLosses:   p.TeamsLosses,
	}
}

// PlayerFromRecord rebuilds a player. Ranks are derived from the ratings, the stored rank names are only validated.
func PlayerFromRecord(r PlayerRecord) (*Player, error) {
	if r.Name == "" {
		return nil, fmt.Errorf("player record has no name")
	}
	for _, rank := range []string{r.SinglesRank, r.TeamsRank} {
		if rank == "" {
			continue
		}
		if _, err := elo.ParseRank(rank); err != nil {
			return nil, fmt.Errorf("player %s: %w", r.Name, err)
		}
	}
	p := &Player{
		ID:            r.ID,
		Name:          r.Name,
		Team:          r.Team,
		SinglesWins:   r.SinglesWins,
		SinglesLosses: r.SinglesLosses,
		TeamsWins:     r.TeamsWins,
		TeamsLosses:   r.TeamsLosses,
	}
	p.SetSinglesRating(r.SinglesRating)
	p.SetTeamsRating(r.TeamsRating)
	return p, nil
}

// TeamRecord is the flat export form of a Team
type TeamRecord struct {
	Name    string    `bson:"name" json:"name"`
	Members [3]string `bson:"members" json:"members"`
	Rating  int       `bson:"rating" json:"rating"`
	Rank    string    `bson:"rank" json:"rank"`
	Wins    int       `bson:"wins" json:"wins"`
	Losses  int       `bson:"losses" json:"losses"`
}

// ToRecord exports the team
func (t *Team) ToRecord() TeamRecord {
	record := TeamRecord{
		Name:   t.Name,
		Rating: t.Rating,
		Rank:   t.Rank.String(),
		Wins:   t.Wins,
		Losses: t.Losses,
	}
	for i, member := range t.Roster {
		if member != nil {
			record.Members[i] = member.Name
		}
	}
	return record
}
