/* builder.go
 * Contains the Builder used by the queues to turn a pairing into a pending match
 * Authors: Ahasuerus
 */

package match

import "ravens-nest/api/shared"

// Builder creates matches with fresh ids and sets up their parameters
type Builder struct {
	IDs   *IDGenerator
	Pools MapPools
	Rand  Randomizer
}

// NewBuilder creates a Builder over the given map pools with a new id generator and the default randomizer
func NewBuilder(pools MapPools) *Builder {
	return &Builder{
		IDs:   &IDGenerator{},
		Pools: pools,
		Rand:  DefaultRandomizer,
	}
}

// Build creates a match between alpha and beta and sets it up, returning it in the pending state
func (b *Builder) Build(format shared.Format, alpha Side, beta Side) (*Match, error) {
	m, err := New(b.IDs.Next(), format, alpha, beta)
	if err != nil {
		return nil, err
	}
	if err := m.SetupParameters(b.Pools, b.Rand); err != nil {
		return nil, err
	}
	return m, nil
}
