/* log.go
 * Contains the match log: every match that has been formed and not cancelled, in creation order
 * Authors: Ahasuerus
 */

package match

import (
	"fmt"

	"ravens-nest/api/registry"
	"ravens-nest/api/shared"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
)

// Log owns the Match records keyed by id
type Log struct {
	mutex   deadlock.Mutex
	matches []*Match
}

// NewLog creates an empty match log
func NewLog() *Log {
	return &Log{}
}

func (l *Log) indexOf(id uint64) int {
	for i, m := range l.matches {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Add stores a match, failing with ErrDuplicateKey if the id is already logged
func (l *Log) Add(m *Match) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.indexOf(m.ID) >= 0 {
		return fmt.Errorf("%w: match %d", shared.ErrDuplicateKey, m.ID)
	}
	l.matches = append(l.matches, m)
	return nil
}

// Remove deletes a match whatever its status, used for cancellation
func (l *Log) Remove(id uint64) (*Match, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: match %d", shared.ErrNotFound, id)
	}
	m := l.matches[i]
	l.matches = append(l.matches[:i], l.matches[i+1:]...)
	return m, nil
}

// Get looks a match up by id
func (l *Log) Get(id uint64) opt.Option[*Match] {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return opt.None[*Match]()
	}
	return opt.Some(l.matches[i])
}

// All returns every logged match in creation order
func (l *Log) All() []*Match {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	matches := make([]*Match, len(l.matches))
	copy(matches, l.matches)
	return matches
}

// Len returns the number of logged matches
func (l *Log) Len() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.matches)
}

// Records exports every logged match
func (l *Log) Records() []Record {
	matches := l.All()
	records := make([]Record, 0, len(matches))
	for _, m := range matches {
		records = append(records, m.ToRecord())
	}
	return records
}

// Import replaces the log with the given records. Records whose participants are no longer registered are skipped
// and counted, everything else must be valid. Every imported id is passed to ids so new matches never reuse one.
func (l *Log) Import(records []Record, players *registry.Players, teams *registry.Teams, ids *IDGenerator) (int, error) {
	matches := make([]*Match, 0, len(records))
	seen := make(map[uint64]bool)
	skipped := 0
	for _, record := range records {
		if seen[record.ID] {
			return 0, fmt.Errorf("%w: match %d in import", shared.ErrDuplicateKey, record.ID)
		}
		seen[record.ID] = true

		m, err := FromRecord(record, players, teams)
		if err != nil {
			log.Warn().Err(err).Uint64("match", record.ID).Msg("skipping match on import")
			skipped++
			continue
		}
		matches = append(matches, m)
	}

	if ids != nil {
		for id := range seen {
			ids.Observe(id)
		}
	}

	l.mutex.Lock()
	l.matches = matches
	l.mutex.Unlock()
	return skipped, nil
}
