/* players.go
 * Contains the player registry. The registry owns every Player; queues and matches only hold references into it
 * Authors: Ahasuerus
 */

package registry

import (
	"fmt"

	"ravens-nest/api/shared"
)

// Players is the registry of individual participants keyed by display name
type Players struct {
	c collection[*Player]
}

// NewPlayers creates an empty player registry
func NewPlayers() *Players {
	return &Players{c: collection[*Player]{kind: "player"}}
}

// Add registers a player
// Preconditions: Receives a player whose name is not registered yet
// Postconditions: The player is registered, or an error wrapping ErrDuplicateKey is returned and nothing changes
func (r *Players) Add(p *Player) error {
	return r.c.add(p)
}

// AddMany registers several players. A duplicate only skips that player; the errors for skipped players are returned.
func (r *Players) AddMany(players []*Player) []error {
	return r.c.addMany(players)
}

// Remove deletes a player by name and returns it
func (r *Players) Remove(name string) (*Player, error) {
	return r.c.remove(name)
}

// RemoveMany deletes several players. An unknown name only skips that name; the errors for skipped names are returned.
func (r *Players) RemoveMany(names []string) []error {
	return r.c.removeMany(names)
}

// Get looks a player up by display name
func (r *Players) Get(name string) (*Player, error) {
	return r.c.get(name)
}

// GetByID looks a player up by external id
func (r *Players) GetByID(id string) (*Player, error) {
	p, ok := r.c.find(func(p *Player) bool { return id != "" && p.ID == id })
	if !ok {
		return nil, fmt.Errorf("%w: player with id '%s'", shared.ErrNotFound, id)
	}
	return p, nil
}

// GetMany returns the registered players among names, in the order given. Unknown names are skipped.
func (r *Players) GetMany(names []string) []*Player {
	var players []*Player
	for _, name := range names {
		if p, err := r.c.get(name); err == nil {
			players = append(players, p)
		}
	}
	return players
}

// All returns every player in insertion order
func (r *Players) All() []*Player {
	return r.c.all()
}

// Len returns the number of registered players
func (r *Players) Len() int {
	return r.c.len()
}

// Top returns the n best players on the format's rating axis. A negative n returns every player.
func (r *Players) Top(n int, format shared.Format) []*Player {
	return r.c.top(n, func(p *Player) int { return p.Rating(format) })
}

// Suggest returns up to limit registered names close to name
func (r *Players) Suggest(name string, limit int) []string {
	return r.c.suggest(name, limit)
}

// Records exports every player
func (r *Players) Records() []PlayerRecord {
	players := r.c.all()
	records := make([]PlayerRecord, 0, len(players))
	for _, p := range players {
		records = append(records, p.ToRecord())
	}
	return records
}

// Import replaces the registry contents with the given records
// Preconditions: Receives the records produced by Records
// Postconditions: The registry holds exactly the imported players, or an error is returned and nothing changes
func (r *Players) Import(records []PlayerRecord) error {
	players := make([]*Player, 0, len(records))
	seen := make(map[string]bool)
	for _, record := range records {
		p, err := PlayerFromRecord(record)
		if err != nil {
			return err
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: player '%s' in import", shared.ErrDuplicateKey, p.Name)
		}
		seen[p.Name] = true
		players = append(players, p)
	}
	r.c.replace(players)
	return nil
}
