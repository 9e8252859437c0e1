/* queue.go
 * Contains the per-format match queue. Entries flow waiting -> paired -> removed; dequeueing removes a waiting
 * entry directly
 * Authors: Ahasuerus
 */

package queue

import (
	"fmt"
	"time"

	"ravens-nest/api/match"
	"ravens-nest/api/registry"
	"ravens-nest/api/shared"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
)

// Queue holds the waiting entries of one format and pairs them into matches
type Queue struct {
	mutex   deadlock.Mutex
	format  shared.Format
	builder *match.Builder
	entries []Entry
	now     func() time.Time
}

// New creates an empty queue for format. Matches it forms are created through builder.
func New(format shared.Format, builder *match.Builder) (*Queue, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: '%s'", shared.ErrInvalidFormat, format)
	}
	return &Queue{
		format:  format,
		builder: builder,
		now:     time.Now,
	}, nil
}

// Format returns the queue's format
func (q *Queue) Format() shared.Format {
	return q.format
}

func (q *Queue) indexOf(name string) int {
	for i, e := range q.entries {
		if e.Name() == name {
			return i
		}
	}
	return -1
}

// EnqueueIndividual adds a waiting entry for player
// Preconditions: Receives a registered player and whether they only accept opponents of their rank or lower
// Postconditions: The player is waiting, or an error wrapping ErrAlreadyQueued or ErrInvalidQueueOperation is returned
func (q *Queue) EnqueueIndividual(player *registry.Player, restricted bool) error {
	if q.format == shared.FormatRegistered {
		return fmt.Errorf("%w: players queue for %s as a registered team", shared.ErrInvalidQueueOperation, q.format)
	}

	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.indexOf(player.Name) >= 0 {
		return fmt.Errorf("%w: %s in %s", shared.ErrAlreadyQueued, player.Name, q.format)
	}
	q.entries = append(q.entries, Entry{Player: player, RankRestricted: restricted, QueuedAt: q.now()})
	log.Debug().Str("format", string(q.format)).Str("player", player.Name).Msg("player queued")
	return nil
}

// EnqueueParty adds three players who must land on the same side, tagged with a fresh party id
// Preconditions: Receives exactly three distinct registered players
// Postconditions: Returns the party id with every member waiting, or an error and no member is added
func (q *Queue) EnqueueParty(players []*registry.Player, restricted bool) (string, error) {
	if q.format != shared.FormatFlex {
		return "", fmt.Errorf("%w: %s", shared.ErrPartyEnqueueNotAllowed, q.format)
	}
	if len(players) != 3 {
		return "", fmt.Errorf("%w: a party needs exactly 3 players, got %d", shared.ErrInvalidSideComposition, len(players))
	}
	seen := make(map[string]bool)
	for _, p := range players {
		if p == nil {
			return "", fmt.Errorf("%w: missing party member", shared.ErrInvalidSideComposition)
		}
		if seen[p.Name] {
			return "", fmt.Errorf("%w: '%s' appears more than once", shared.ErrInvalidSideComposition, p.Name)
		}
		seen[p.Name] = true
	}

	q.mutex.Lock()
	defer q.mutex.Unlock()

	for _, p := range players {
		if q.indexOf(p.Name) >= 0 {
			return "", fmt.Errorf("%w: %s in %s", shared.ErrAlreadyQueued, p.Name, q.format)
		}
	}

	partyID := uuid.NewString()
	queuedAt := q.now()
	for _, p := range players {
		q.entries = append(q.entries, Entry{Player: p, RankRestricted: restricted, PartyID: partyID, QueuedAt: queuedAt})
	}
	log.Debug().Str("format", string(q.format)).Str("party", partyID).Msg("party queued")
	return partyID, nil
}

// EnqueueTeam adds a registered team as a single entry
// Preconditions: Receives a registered team
// Postconditions: The team is waiting, or an error wrapping ErrAlreadyQueued or ErrInvalidQueueOperation is returned.
// A team is also refused while another waiting team shares one of its players
func (q *Queue) EnqueueTeam(team *registry.Team, restricted bool) error {
	if q.format != shared.FormatRegistered {
		return fmt.Errorf("%w: teams only queue for %s", shared.ErrInvalidQueueOperation, shared.FormatRegistered)
	}

	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.indexOf(team.Name) >= 0 {
		return fmt.Errorf("%w: team %s in %s", shared.ErrAlreadyQueued, team.Name, q.format)
	}
	for _, e := range q.entries {
		for _, member := range team.Roster {
			if member != nil && e.Team.HasMember(member.Name) {
				return fmt.Errorf("%w: %s is waiting with team %s", shared.ErrAlreadyQueued, member.Name, e.Team.Name)
			}
		}
	}
	q.entries = append(q.entries, Entry{Team: team, RankRestricted: restricted, QueuedAt: q.now()})
	log.Debug().Str("format", string(q.format)).Str("team", team.Name).Msg("team queued")
	return nil
}

// Dequeue removes the waiting entry for name. A party member takes the whole party out with them.
// Postconditions: Returns the names removed, or an error wrapping ErrNotFound
func (q *Queue) Dequeue(name string) ([]string, error) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	i := q.indexOf(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s is not queued for %s", shared.ErrNotFound, name, q.format)
	}

	partyID := q.entries[i].PartyID
	if partyID == "" {
		q.entries = append(q.entries[:i], q.entries[i+1:]...)
		return []string{name}, nil
	}

	var removed []string
	kept := q.entries[:0]
	for _, e := range q.entries {
		if e.PartyID == partyID {
			removed = append(removed, e.Name())
			continue
		}
		kept = append(kept, e)
	}
	q.entries = kept
	return removed, nil
}

// Entries returns a snapshot of the waiting entries in queue order
func (q *Queue) Entries() []Entry {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	entries := make([]Entry, len(q.entries))
	copy(entries, q.entries)
	return entries
}

// Len returns the number of waiting entries
func (q *Queue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.entries)
}

// Contains reports whether name has a waiting entry
func (q *Queue) Contains(name string) bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.indexOf(name) >= 0
}
