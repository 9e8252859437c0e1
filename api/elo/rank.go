/* rank.go
 * Contains the rank tiers and the rating bands that define them
 * Authors: Ahasuerus
 */

package elo

import (
	"fmt"
	"strings"
)

// Rank is a coarse skill tier. Ranks are ordered, so D < C < B < A < S < SS can be compared directly.
type Rank int

const (
	RankD Rank = iota
	RankC
	RankB
	RankA
	RankS
	RankSS
)

type band struct {
	rank Rank
	name string
	min  int
}

// bands are ordered by floor; each band runs up to the next band's floor - 1, the last one up to MaxRating
var bands = []band{
	{RankD, "D", MinRating},
	{RankC, "C", 700},
	{RankB, "B", 950},
	{RankA, "A", 1250},
	{RankS, "S", 1500},
	{RankSS, "SS", 1700},
}

// RankFor returns the rank tier for a rating. Out of range ratings are clamped first so every int has a rank.
func RankFor(rating int) Rank {
	rating = Clamp(rating)
	for i := len(bands) - 1; i > 0; i-- {
		if rating >= bands[i].min {
			return bands[i].rank
		}
	}
	return RankD
}

// Floor returns the lowest rating of the rank's band
func (r Rank) Floor() int {
	if r < RankD || r > RankSS {
		return MinRating
	}
	return bands[r].min
}

// Ceiling returns the highest rating of the rank's band
func (r Rank) Ceiling() int {
	if r >= RankSS {
		return MaxRating
	}
	if r < RankD {
		return bands[RankC].min - 1
	}
	return bands[r+1].min - 1
}

func (r Rank) String() string {
	if r < RankD || r > RankSS {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return bands[r].name
}

// ParseRank converts a rank name back into a Rank. The display form "SS_<rating>" is accepted as SS.
func ParseRank(s string) (Rank, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if strings.HasPrefix(s, "SS_") {
		return RankSS, nil
	}
	for _, b := range bands {
		if b.name == s {
			return b.rank, nil
		}
	}
	return RankD, fmt.Errorf("unknown rank '%s'", s)
}
