/* match.go
 * Contains the Match value and its lifecycle: not_started -> pending (map and keyword assigned) -> completed
 * (ratings applied). Ratings live on the registry entities the sides point at, a Match never copies them
 * Authors: Ahasuerus
 */

package match

import (
	"fmt"
	"time"

	"ravens-nest/api/elo"
	"ravens-nest/api/registry"
	"ravens-nest/api/shared"

	"github.com/rs/zerolog/log"
)

// Status is the lifecycle state of a match
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusPending    Status = "pending"
	StatusCompleted  Status = "completed"
)

// Match is one scheduled contest between two sides
type Match struct {
	ID        uint64
	Format    shared.Format
	Alpha     Side
	Beta      Side
	Status    Status
	Map       string
	Keyword   string
	Winners   []string
	Losers    []string
	CreatedAt time.Time
}

// New creates a match after checking that both sides have the shape the format requires
// Preconditions: Receives a unique id, the format and the two sides
// Postconditions: Returns a not_started match, or an error wrapping ErrInvalidFormat or ErrInvalidSideComposition
func New(id uint64, format shared.Format, alpha Side, beta Side) (*Match, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: '%s'", shared.ErrInvalidFormat, format)
	}
	if err := validateSides(format, alpha, beta); err != nil {
		return nil, err
	}
	return &Match{
		ID:        id,
		Format:    format,
		Alpha:     alpha,
		Beta:      beta,
		Status:    StatusNotStarted,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}, nil
}

func validateSides(format shared.Format, alpha Side, beta Side) error {
	if alpha == nil || beta == nil {
		return fmt.Errorf("%w: a %s match needs two sides", shared.ErrInvalidSideComposition, format)
	}
	if alpha.format() != format || beta.format() != format {
		return fmt.Errorf("%w: sides do not match format %s", shared.ErrInvalidSideComposition, format)
	}

	switch a := alpha.(type) {
	case Solo:
		b := beta.(Solo)
		if a.Player == nil || b.Player == nil {
			return fmt.Errorf("%w: missing player", shared.ErrInvalidSideComposition)
		}
		if a.Player == b.Player || a.Player.Name == b.Player.Name {
			return fmt.Errorf("%w: %s cannot play against themselves", shared.ErrInvalidSideComposition, a.Player.Name)
		}
	case Registered:
		b := beta.(Registered)
		if a.Team == nil || b.Team == nil {
			return fmt.Errorf("%w: missing team", shared.ErrInvalidSideComposition)
		}
		if a.Team == b.Team || a.Team.Name == b.Team.Name {
			return fmt.Errorf("%w: team %s cannot play against itself", shared.ErrInvalidSideComposition, a.Team.Name)
		}
		for _, p := range a.Team.Roster {
			if p != nil && b.Team.HasMember(p.Name) {
				return fmt.Errorf("%w: '%s' is on both teams", shared.ErrInvalidSideComposition, p.Name)
			}
		}
	case Flex:
		b := beta.(Flex)
		seen := make(map[string]bool)
		for _, p := range append(a.Players[:], b.Players[:]...) {
			if p == nil {
				return fmt.Errorf("%w: flex sides need exactly 3 players each", shared.ErrInvalidSideComposition)
			}
			if seen[p.Name] {
				return fmt.Errorf("%w: '%s' appears more than once", shared.ErrInvalidSideComposition, p.Name)
			}
			seen[p.Name] = true
		}
	}
	return nil
}

// SetupParameters picks the map and lobby keyword and moves the match to pending
// Preconditions: Receives the map pools and a source of randomness
// Postconditions: Map and Keyword are set and Status is pending, or an error is returned and nothing changes
func (m *Match) SetupParameters(pools MapPools, rnd Randomizer) error {
	if m.Status == StatusCompleted {
		return fmt.Errorf("%w: match %d", shared.ErrAlreadyCompleted, m.ID)
	}
	if !m.Format.Valid() {
		return fmt.Errorf("%w: '%s'", shared.ErrInvalidFormat, m.Format)
	}
	pool := pools[m.Format]
	if len(pool) == 0 {
		return fmt.Errorf("%w: no approved maps for %s", shared.ErrInvalidFormat, m.Format)
	}

	m.Map = pool[rnd.IntN(len(pool))]
	m.Keyword = GenerateKeyword(rnd, KeywordLength)
	m.Status = StatusPending
	return nil
}

// SidesOf returns the side containing name and its opponent
func (m *Match) SidesOf(name string) (Side, Side, bool) {
	switch {
	case m.Alpha != nil && m.Alpha.Contains(name):
		return m.Alpha, m.Beta, true
	case m.Beta != nil && m.Beta.Contains(name):
		return m.Beta, m.Alpha, true
	}
	return nil, nil, false
}

// ReportResult records the winner and applies the rating model once per rating axis
// Preconditions: Receives this match's two sides as winner and loser, and the K-Factor
// Postconditions: Ratings, win/loss counters, Winners/Losers and Status are updated. On error nothing changes:
// ErrAlreadyCompleted for a completed match, ErrInvalidSideComposition if the sides are not this match's
func (m *Match) ReportResult(winner Side, loser Side, k int) error {
	if m.Status == StatusCompleted {
		return fmt.Errorf("%w: match %d", shared.ErrAlreadyCompleted, m.ID)
	}
	if !((winner == m.Alpha && loser == m.Beta) || (winner == m.Beta && loser == m.Alpha)) {
		return fmt.Errorf("%w: reported sides do not belong to match %d", shared.ErrInvalidSideComposition, m.ID)
	}

	switch w := winner.(type) {
	case Solo:
		l := loser.(Solo)
		applySingles(w.Player, l.Player, k)
	case Registered:
		l := loser.(Registered)
		newW, newL := elo.ApplyResult(w.Team.Rating, l.Team.Rating, k)
		w.Team.SetRating(newW)
		l.Team.SetRating(newL)
		w.Team.Wins++
		l.Team.Losses++
	case Flex:
		l := loser.(Flex)
		for i := range w.Players {
			applyTeams(w.Players[i], l.Players[i], k)
		}
	}

	m.Winners = winner.Names()
	m.Losers = loser.Names()
	m.Status = StatusCompleted

	log.Info().
		Uint64("match", m.ID).
		Str("format", string(m.Format)).
		Strs("winners", m.Winners).
		Strs("losers", m.Losers).
		Msg("match result reported")
	return nil
}

func applySingles(winner *registry.Player, loser *registry.Player, k int) {
	newW, newL := elo.ApplyResult(winner.SinglesRating, loser.SinglesRating, k)
	winner.SetSinglesRating(newW)
	loser.SetSinglesRating(newL)
	winner.SinglesWins++
	loser.SinglesLosses++
}

func applyTeams(winner *registry.Player, loser *registry.Player, k int) {
	newW, newL := elo.ApplyResult(winner.TeamsRating, loser.TeamsRating, k)
	winner.SetTeamsRating(newW)
	loser.SetTeamsRating(newL)
	winner.TeamsWins++
	loser.TeamsLosses++
}
