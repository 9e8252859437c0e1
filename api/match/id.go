/* id.go
 * Contains the match id generator
 * Authors: Ahasuerus
 */

package match

import "sync/atomic"

// IDGenerator hands out match ids from a monotonically increasing counter, so ids never repeat within a process.
// Observe must be called with every id loaded from storage so restored matches keep their ids unique too.
type IDGenerator struct {
	last atomic.Uint64
}

// Next returns a new id
func (g *IDGenerator) Next() uint64 {
	return g.last.Add(1)
}

// Observe moves the counter past id if it is not already
func (g *IDGenerator) Observe(id uint64) {
	for {
		current := g.last.Load()
		if id <= current || g.last.CompareAndSwap(current, id) {
			return
		}
	}
}
