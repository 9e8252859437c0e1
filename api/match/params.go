/* params.go
 * Contains the match parameters chosen at setup time: the map pools and the lobby keyword generator
 * Authors: Ahasuerus
 */

package match

import (
	"math/rand/v2"
	"strings"

	"ravens-nest/api/shared"
)

// KeywordLength is the length of generated lobby keywords
const KeywordLength = 6

const keywordCharacters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MapPools holds the approved maps for each format
type MapPools map[shared.Format][]string

// Randomizer is the source of randomness for map and keyword selection
type Randomizer interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRandomizer uses the process wide math/rand generator
var DefaultRandomizer Randomizer = globalRand{}

// GenerateKeyword returns a random alphanumeric keyword of the given length
func GenerateKeyword(rnd Randomizer, length int) string {
	var keyword strings.Builder
	keyword.Grow(length)
	for range length {
		keyword.WriteByte(keywordCharacters[rnd.IntN(len(keywordCharacters))])
	}
	return keyword.String()
}
