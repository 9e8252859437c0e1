/* collection.go
 * Contains the generic keyed collection shared by the player and team registries. Entities are kept in insertion
 * order so lookups are deterministic and ties on the leaderboard fall back to who was added first
 * Authors: Ahasuerus
 */

package registry

import (
	"fmt"
	"sort"

	"ravens-nest/api/shared"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sasha-s/go-deadlock"
)

type entity interface {
	Key() string
}

type collection[E entity] struct {
	mutex deadlock.Mutex
	kind  string
	items []E
}

func (c *collection[E]) indexOf(name string) int {
	for i, item := range c.items {
		if item.Key() == name {
			return i
		}
	}
	return -1
}

func (c *collection[E]) add(item E) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.addLocked(item)
}

func (c *collection[E]) addLocked(item E) error {
	if c.indexOf(item.Key()) >= 0 {
		return fmt.Errorf("%w: %s '%s'", shared.ErrDuplicateKey, c.kind, item.Key())
	}
	c.items = append(c.items, item)
	return nil
}

func (c *collection[E]) addMany(items []E) []error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var errs []error
	for _, item := range items {
		if err := c.addLocked(item); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (c *collection[E]) remove(name string) (E, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.removeLocked(name)
}

func (c *collection[E]) removeLocked(name string) (E, error) {
	var zero E
	i := c.indexOf(name)
	if i < 0 {
		return zero, fmt.Errorf("%w: %s '%s'", shared.ErrNotFound, c.kind, name)
	}
	item := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	return item, nil
}

func (c *collection[E]) removeMany(names []string) []error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var errs []error
	for _, name := range names {
		if _, err := c.removeLocked(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (c *collection[E]) get(name string) (E, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var zero E
	i := c.indexOf(name)
	if i < 0 {
		return zero, fmt.Errorf("%w: %s '%s'", shared.ErrNotFound, c.kind, name)
	}
	return c.items[i], nil
}

func (c *collection[E]) find(match func(E) bool) (E, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, item := range c.items {
		if match(item) {
			return item, true
		}
	}
	var zero E
	return zero, false
}

func (c *collection[E]) all() []E {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	items := make([]E, len(c.items))
	copy(items, c.items)
	return items
}

func (c *collection[E]) len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.items)
}

// top sorts a copy of the collection by rating, descending. SliceStable keeps insertion order for equal ratings.
func (c *collection[E]) top(n int, rating func(E) int) []E {
	items := c.all()
	sort.SliceStable(items, func(i, j int) bool {
		return rating(items[i]) > rating(items[j])
	})
	if n >= 0 && n < len(items) {
		items = items[:n]
	}
	return items
}

// replace swaps the whole collection, used on import
func (c *collection[E]) replace(items []E) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.items = items
}

// suggest returns up to limit names that fuzzy match the input, closest first
func (c *collection[E]) suggest(name string, limit int) []string {
	items := c.all()
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Key())
	}

	ranks := fuzzy.RankFindNormalizedFold(name, names)
	sort.Stable(ranks)

	var suggestions []string
	for _, rank := range ranks {
		if limit > 0 && len(suggestions) == limit {
			break
		}
		suggestions = append(suggestions, rank.Target)
	}
	return suggestions
}
