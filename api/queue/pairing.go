/* pairing.go
 * Contains the pairing engine. Both searches relax the allowed rating difference in steps of baseEloDiff up to
 * maxEloDiff and take the first eligible pairing in queue order, which is stable but not rating-optimal
 * Authors: Ahasuerus
 */

package queue

import (
	"math"
	"sort"

	"ravens-nest/api/elo"
	"ravens-nest/api/match"
	"ravens-nest/api/registry"
	"ravens-nest/api/shared"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
)

// diffSchedule returns the rating differences tried in order: base, 2*base, ... while below max, then max itself
func diffSchedule(base int, ceiling int) []int {
	if ceiling < 0 {
		return nil
	}
	if base <= 0 || base > ceiling {
		return []int{ceiling}
	}
	var schedule []int
	for diff := base; diff < ceiling; diff += base {
		schedule = append(schedule, diff)
	}
	return append(schedule, ceiling)
}

// FindMatch looks for the first eligible pairing at the smallest relaxation step
// Preconditions: Receives the starting and the ceiling rating difference
// Postconditions: On success the paired entries are removed and a pending match is returned. Returns None with the
// queue unchanged if nothing is eligible up to maxEloDiff. An error means the match could not be set up and the
// queue is unchanged
func (q *Queue) FindMatch(baseEloDiff int, maxEloDiff int) (opt.Option[*match.Match], error) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	schedule := diffSchedule(baseEloDiff, maxEloDiff)

	var (
		alpha, beta match.Side
		paired      []int
		found       bool
	)
	if q.format == shared.FormatFlex {
		alpha, beta, paired, found = q.findFlex(schedule)
	} else {
		alpha, beta, paired, found = q.findPair(schedule)
	}
	if !found {
		return opt.None[*match.Match](), nil
	}

	m, err := q.builder.Build(q.format, alpha, beta)
	if err != nil {
		return opt.None[*match.Match](), err
	}
	q.removeIndices(paired)

	log.Info().
		Uint64("match", m.ID).
		Str("format", string(q.format)).
		Strs("alpha", alpha.Names()).
		Strs("beta", beta.Names()).
		Msg("match formed")
	return opt.Some(m), nil
}

func (q *Queue) removeIndices(indices []int) {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	kept := make([]Entry, 0, len(q.entries)-len(indices))
	for i, e := range q.entries {
		if !drop[i] {
			kept = append(kept, e)
		}
	}
	q.entries = kept
}

// findPair scans unordered pairs for the 1v1 and 3v3 reg queues
func (q *Queue) findPair(schedule []int) (match.Side, match.Side, []int, bool) {
	n := len(q.entries)
	if n < 2 {
		return nil, nil, nil, false
	}
	for _, diff := range schedule {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				a, b := q.entries[i], q.entries[j]
				if !q.eligible(a, b, diff) {
					continue
				}
				return q.sideOf(a), q.sideOf(b), []int{i, j}, true
			}
		}
	}
	return nil, nil, nil, false
}

func (q *Queue) eligible(a Entry, b Entry, diff int) bool {
	ra, rb := a.Rating(q.format), b.Rating(q.format)
	if abs(ra-rb) > diff {
		return false
	}
	return a.permits(q.format, elo.RankFor(rb)) && b.permits(q.format, elo.RankFor(ra))
}

func (q *Queue) sideOf(e Entry) match.Side {
	if e.Team != nil {
		return match.Registered{Team: e.Team}
	}
	return match.Solo{Player: e.Player}
}

// group is a candidate flex side of three queue indices
type group struct {
	members [3]int
	mean    float64
	cost    int
}

func (q *Queue) newGroup(i, j, k int) group {
	g := group{members: [3]int{i, j, k}}
	lo, hi, sum := math.MaxInt, math.MinInt, 0
	for _, idx := range g.members {
		r := q.entries[idx].Player.TeamsRating
		sum += r
		lo = min(lo, r)
		hi = max(hi, r)
	}
	g.mean = float64(sum) / 3
	g.cost = hi - lo
	return g
}

// candidateGroups lists complete parties in order of their first member, then every trio of untagged entries
func (q *Queue) candidateGroups() []group {
	var groups []group

	parties := make(map[string][]int)
	var order []string
	var untagged []int
	for i, e := range q.entries {
		if e.PartyID == "" {
			untagged = append(untagged, i)
			continue
		}
		if _, ok := parties[e.PartyID]; !ok {
			order = append(order, e.PartyID)
		}
		parties[e.PartyID] = append(parties[e.PartyID], i)
	}
	for _, id := range order {
		if members := parties[id]; len(members) == 3 {
			groups = append(groups, q.newGroup(members[0], members[1], members[2]))
		}
	}

	for a := 0; a < len(untagged); a++ {
		for b := a + 1; b < len(untagged); b++ {
			for c := b + 1; c < len(untagged); c++ {
				groups = append(groups, q.newGroup(untagged[a], untagged[b], untagged[c]))
			}
		}
	}
	return groups
}

// findFlex pairs two disjoint candidate groups, trying the least cohesive groups first
func (q *Queue) findFlex(schedule []int) (match.Side, match.Side, []int, bool) {
	if len(q.entries) < 6 {
		return nil, nil, nil, false
	}
	groups := q.candidateGroups()
	sort.SliceStable(groups, func(a, b int) bool { return groups[a].cost > groups[b].cost })

	for _, diff := range schedule {
		for a := 0; a < len(groups); a++ {
			for b := a + 1; b < len(groups); b++ {
				ga, gb := groups[a], groups[b]
				if math.Abs(ga.mean-gb.mean) > float64(diff) || !disjoint(ga, gb) {
					continue
				}
				if !q.groupPermits(ga, gb) || !q.groupPermits(gb, ga) {
					continue
				}
				indices := append(ga.members[:], gb.members[:]...)
				return q.flexSide(ga), q.flexSide(gb), indices, true
			}
		}
	}
	return nil, nil, nil, false
}

// groupPermits checks every restricted member of g against the rank of the opposing group's mean rating
func (q *Queue) groupPermits(g group, opponent group) bool {
	opponentRank := elo.RankFor(int(math.Round(opponent.mean)))
	for _, idx := range g.members {
		if !q.entries[idx].permits(q.format, opponentRank) {
			return false
		}
	}
	return true
}

func (q *Queue) flexSide(g group) match.Flex {
	var players [3]*registry.Player
	for i, idx := range g.members {
		players[i] = q.entries[idx].Player
	}
	return match.Flex{Players: players}
}

func disjoint(a group, b group) bool {
	for _, x := range a.members {
		for _, y := range b.members {
			if x == y {
				return false
			}
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
