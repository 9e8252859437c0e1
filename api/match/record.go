/* record.go
 * Contains the flat record form of a match used for export and import
 * Authors: Ahasuerus
 */

package match

import (
	"fmt"
	"time"

	"ravens-nest/api/registry"
	"ravens-nest/api/shared"
)

// Record is the flat export form of a Match. Sides are stored by name: one player name for 1v1, one team name for
// 3v3 reg and three player names for 3v3 flex.
type Record struct {
	ID        uint64    `bson:"id" json:"id"`
	Format    string    `bson:"format" json:"format"`
	Map       string    `bson:"map,omitempty" json:"map,omitempty"`
	Keyword   string    `bson:"keyword,omitempty" json:"keyword,omitempty"`
	Status    string    `bson:"status" json:"status"`
	Alpha     []string  `bson:"alpha" json:"alpha"`
	Beta      []string  `bson:"beta" json:"beta"`
	Winners   []string  `bson:"winners,omitempty" json:"winners,omitempty"`
	Losers    []string  `bson:"losers,omitempty" json:"losers,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// ToRecord exports the match
func (m *Match) ToRecord() Record {
	record := Record{
		ID:        m.ID,
		Format:    string(m.Format),
		Map:       m.Map,
		Keyword:   m.Keyword,
		Status:    string(m.Status),
		Winners:   m.Winners,
		Losers:    m.Losers,
		CreatedAt: m.CreatedAt,
	}
	if m.Alpha != nil {
		record.Alpha = m.Alpha.Names()
	}
	if m.Beta != nil {
		record.Beta = m.Beta.Names()
	}
	return record
}

// FromRecord rebuilds a match, resolving side names through the registries
// Preconditions: Receives a record produced by ToRecord and the imported registries
// Postconditions: Returns the match, or an error if the format or status is unknown or a participant no longer exists
func FromRecord(r Record, players *registry.Players, teams *registry.Teams) (*Match, error) {
	format, err := shared.ParseFormat(r.Format)
	if err != nil {
		return nil, fmt.Errorf("match %d: %w", r.ID, err)
	}
	status := Status(r.Status)
	switch status {
	case StatusNotStarted, StatusPending, StatusCompleted:
	default:
		return nil, fmt.Errorf("match %d: unknown status '%s'", r.ID, r.Status)
	}

	alpha, err := resolveSide(format, r.Alpha, players, teams)
	if err != nil {
		return nil, fmt.Errorf("match %d: %w", r.ID, err)
	}
	beta, err := resolveSide(format, r.Beta, players, teams)
	if err != nil {
		return nil, fmt.Errorf("match %d: %w", r.ID, err)
	}

	m, err := New(r.ID, format, alpha, beta)
	if err != nil {
		return nil, fmt.Errorf("match %d: %w", r.ID, err)
	}
	m.Map = r.Map
	m.Keyword = r.Keyword
	m.Status = status
	m.Winners = r.Winners
	m.Losers = r.Losers
	m.CreatedAt = r.CreatedAt
	return m, nil
}

func resolveSide(format shared.Format, names []string, players *registry.Players, teams *registry.Teams) (Side, error) {
	switch format {
	case shared.FormatSingles:
		if len(names) != 1 {
			return nil, fmt.Errorf("%w: 1v1 side needs one player", shared.ErrInvalidSideComposition)
		}
		p, err := players.Get(names[0])
		if err != nil {
			return nil, err
		}
		return Solo{Player: p}, nil
	case shared.FormatRegistered:
		if len(names) != 1 {
			return nil, fmt.Errorf("%w: 3v3 reg side needs one team", shared.ErrInvalidSideComposition)
		}
		t, err := teams.Get(names[0])
		if err != nil {
			return nil, err
		}
		return Registered{Team: t}, nil
	case shared.FormatFlex:
		if len(names) != 3 {
			return nil, fmt.Errorf("%w: 3v3 flex side needs three players", shared.ErrInvalidSideComposition)
		}
		var side Flex
		for i, name := range names {
			p, err := players.Get(name)
			if err != nil {
				return nil, err
			}
			side.Players[i] = p
		}
		return side, nil
	}
	return nil, fmt.Errorf("%w: '%s'", shared.ErrInvalidFormat, format)
}
