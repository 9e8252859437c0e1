/* teams.go
 * Contains the registered team registry
 * Authors: Ahasuerus
 */

package registry

import (
	"fmt"

	"ravens-nest/api/shared"
)

// Teams is the registry of registered 3 player teams keyed by team name
type Teams struct {
	c collection[*Team]
}

// NewTeams creates an empty team registry
func NewTeams() *Teams {
	return &Teams{c: collection[*Team]{kind: "team"}}
}

// Add registers a team, failing with ErrDuplicateKey if the name is taken
func (r *Teams) Add(t *Team) error {
	return r.c.add(t)
}

// AddMany registers several teams, skipping duplicates
func (r *Teams) AddMany(teams []*Team) []error {
	return r.c.addMany(teams)
}

// Remove deletes a team by name and returns it
func (r *Teams) Remove(name string) (*Team, error) {
	return r.c.remove(name)
}

// Get looks a team up by name
func (r *Teams) Get(name string) (*Team, error) {
	return r.c.get(name)
}

// All returns every team in insertion order
func (r *Teams) All() []*Team {
	return r.c.all()
}

// Len returns the number of registered teams
func (r *Teams) Len() int {
	return r.c.len()
}

// Top returns the n best teams by team rating
func (r *Teams) Top(n int) []*Team {
	return r.c.top(n, func(t *Team) int { return t.Rating })
}

// Suggest returns up to limit registered team names close to name
func (r *Teams) Suggest(name string, limit int) []string {
	return r.c.suggest(name, limit)
}

// Records exports every team
func (r *Teams) Records() []TeamRecord {
	teams := r.c.all()
	records := make([]TeamRecord, 0, len(teams))
	for _, t := range teams {
		records = append(records, t.ToRecord())
	}
	return records
}

// Import replaces the registry contents with the given records, resolving roster names through players
// Preconditions: Receives the records produced by Records and the already imported player registry
// Postconditions: The registry holds exactly the imported teams, or an error is returned and nothing changes
func (r *Teams) Import(records []TeamRecord, players *Players) error {
	teams := make([]*Team, 0, len(records))
	seen := make(map[string]bool)
	for _, record := range records {
		members := make([]*Player, 0, len(record.Members))
		for _, name := range record.Members {
			member, err := players.Get(name)
			if err != nil {
				return fmt.Errorf("team %s: %w", record.Name, err)
			}
			members = append(members, member)
		}
		t, err := NewTeam(record.Name, members)
		if err != nil {
			return err
		}
		if seen[t.Name] {
			return fmt.Errorf("%w: team '%s' in import", shared.ErrDuplicateKey, t.Name)
		}
		seen[t.Name] = true
		t.SetRating(record.Rating)
		t.Wins = record.Wins
		t.Losses = record.Losses
		teams = append(teams, t)
	}
	r.c.replace(teams)
	return nil
}
