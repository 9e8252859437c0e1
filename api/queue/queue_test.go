/* queue_test.go
 * Contains unit tests for queueing and dequeueing
 * Authors: Ahasuerus
 */

package queue

import (
	"errors"
	"testing"

	"ravens-nest/api/match"
	"ravens-nest/api/registry"
	"ravens-nest/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPools = match.MapPools{
	shared.FormatSingles:    {"Grid 086 A", "Watchpoint Delta A"},
	shared.FormatFlex:       {"Bona Dea Dunes A"},
	shared.FormatRegistered: {"Old Bertram Spaceport"},
}

func newQueue(t *testing.T, format shared.Format) *Queue {
	t.Helper()
	q, err := New(format, match.NewBuilder(testPools))
	require.NoError(t, err)
	return q
}

// singles creates a player with the given 1v1 rating
func singles(name string, rating int) *registry.Player {
	p := registry.NewPlayer("", name, "")
	p.SetSinglesRating(rating)
	return p
}

// teams creates a player with the given 3v3 rating
func teams(name string, rating int) *registry.Player {
	p := registry.NewPlayer("", name, "")
	p.SetTeamsRating(rating)
	return p
}

func regTeam(t *testing.T, name string, rating int, members ...string) *registry.Team {
	t.Helper()
	var roster []*registry.Player
	for _, m := range members {
		roster = append(roster, teams(m, 825))
	}
	tm, err := registry.NewTeam(name, roster)
	require.NoError(t, err)
	tm.SetRating(rating)
	return tm
}

// region New tests

// TestNew_InvalidFormat tests that a queue needs a supported format
func TestNew_InvalidFormat(t *testing.T) {
	_, err := New(shared.Format("5v5"), match.NewBuilder(testPools))
	assert.True(t, errors.Is(err, shared.ErrInvalidFormat))
}

// endregion

// region EnqueueIndividual tests

// TestEnqueueIndividual_AlreadyQueued tests that a second enqueue of the same player fails
func TestEnqueueIndividual_AlreadyQueued(t *testing.T) {
	q := newQueue(t, shared.FormatSingles)
	p := singles("Sheen", 1000)

	require.NoError(t, q.EnqueueIndividual(p, false))
	err := q.EnqueueIndividual(p, true)
	assert.True(t, errors.Is(err, shared.ErrAlreadyQueued))
	assert.Equal(t, 1, q.Len())
	assert.False(t, q.Entries()[0].RankRestricted)
}

// TestEnqueueIndividual_Registered tests that individuals cannot join the reg queue
func TestEnqueueIndividual_Registered(t *testing.T) {
	q := newQueue(t, shared.FormatRegistered)

	err := q.EnqueueIndividual(singles("Sheen", 1000), false)
	assert.True(t, errors.Is(err, shared.ErrInvalidQueueOperation))
	assert.Zero(t, q.Len())
}

// TestEnqueueIndividual_Flex tests that individuals join the flex queue untagged
func TestEnqueueIndividual_Flex(t *testing.T) {
	q := newQueue(t, shared.FormatFlex)

	require.NoError(t, q.EnqueueIndividual(teams("Sheen", 1000), true))
	entry := q.Entries()[0]
	assert.Empty(t, entry.PartyID)
	assert.True(t, entry.RankRestricted)
	assert.False(t, entry.QueuedAt.IsZero())
	assert.True(t, q.Contains("Sheen"))
}

// endregion

// region EnqueueParty tests

// TestEnqueueParty_FreshIDs tests that every member shares a party id that no earlier party used
func TestEnqueueParty_FreshIDs(t *testing.T) {
	q := newQueue(t, shared.FormatFlex)

	first, err := q.EnqueueParty([]*registry.Player{teams("a", 825), teams("b", 825), teams("c", 825)}, false)
	require.NoError(t, err)
	second, err := q.EnqueueParty([]*registry.Player{teams("d", 825), teams("e", 825), teams("f", 825)}, false)
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	entries := q.Entries()
	require.Len(t, entries, 6)
	for _, e := range entries[:3] {
		assert.Equal(t, first, e.PartyID)
	}
	for _, e := range entries[3:] {
		assert.Equal(t, second, e.PartyID)
	}
}

// TestEnqueueParty_NotFlex tests that parties are refused outside 3v3 flex
func TestEnqueueParty_NotFlex(t *testing.T) {
	for _, format := range []shared.Format{shared.FormatSingles, shared.FormatRegistered} {
		q := newQueue(t, format)
		_, err := q.EnqueueParty([]*registry.Player{teams("a", 825), teams("b", 825), teams("c", 825)}, false)
		assert.True(t, errors.Is(err, shared.ErrPartyEnqueueNotAllowed), format)
	}
}

// TestEnqueueParty_Composition tests that a party needs three distinct players
func TestEnqueueParty_Composition(t *testing.T) {
	q := newQueue(t, shared.FormatFlex)
	a := teams("a", 825)

	_, err := q.EnqueueParty([]*registry.Player{a, teams("b", 825)}, false)
	assert.True(t, errors.Is(err, shared.ErrInvalidSideComposition))

	_, err = q.EnqueueParty([]*registry.Player{a, teams("b", 825), a}, false)
	assert.True(t, errors.Is(err, shared.ErrInvalidSideComposition))
	assert.Zero(t, q.Len())
}

// TestEnqueueParty_AllOrNothing tests that a party with a queued member adds nobody
func TestEnqueueParty_AllOrNothing(t *testing.T) {
	q := newQueue(t, shared.FormatFlex)
	c := teams("c", 825)
	require.NoError(t, q.EnqueueIndividual(c, false))

	_, err := q.EnqueueParty([]*registry.Player{teams("a", 825), teams("b", 825), c}, false)
	assert.True(t, errors.Is(err, shared.ErrAlreadyQueued))
	assert.Equal(t, 1, q.Len())
	assert.False(t, q.Contains("a"))
}

// endregion

// region EnqueueTeam tests

// TestEnqueueTeam_Registered tests that a team is queued as one entry
func TestEnqueueTeam_Registered(t *testing.T) {
	q := newQueue(t, shared.FormatRegistered)
	tm := regTeam(t, "Koolish", 1000, "a", "b", "c")

	require.NoError(t, q.EnqueueTeam(tm, false))
	assert.Equal(t, 1, q.Len())
	assert.True(t, q.Contains("Koolish"))
	assert.False(t, q.Contains("a"))

	err := q.EnqueueTeam(tm, false)
	assert.True(t, errors.Is(err, shared.ErrAlreadyQueued))
}

// TestEnqueueTeam_SharedMember tests that two waiting teams cannot share a player
func TestEnqueueTeam_SharedMember(t *testing.T) {
	q := newQueue(t, shared.FormatRegistered)
	koolish := regTeam(t, "Koolish", 1000, "a", "b", "c")
	other, err := registry.NewTeam("Other", []*registry.Player{koolish.Roster[0], teams("d", 825), teams("e", 825)})
	require.NoError(t, err)

	require.NoError(t, q.EnqueueTeam(koolish, false))
	err = q.EnqueueTeam(other, false)
	assert.True(t, errors.Is(err, shared.ErrAlreadyQueued))
}

// TestEnqueueTeam_NotRegistered tests that teams only join the reg queue
func TestEnqueueTeam_NotRegistered(t *testing.T) {
	q := newQueue(t, shared.FormatFlex)

	err := q.EnqueueTeam(regTeam(t, "Koolish", 1000, "a", "b", "c"), false)
	assert.True(t, errors.Is(err, shared.ErrInvalidQueueOperation))
}

// endregion

// region Dequeue tests

// TestDequeue_Individual tests removing a waiting player
func TestDequeue_Individual(t *testing.T) {
	q := newQueue(t, shared.FormatSingles)
	require.NoError(t, q.EnqueueIndividual(singles("a", 825), false))
	require.NoError(t, q.EnqueueIndividual(singles("b", 825), false))

	removed, err := q.Dequeue("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, removed)
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, "b", q.Entries()[0].Name())
}

// TestDequeue_NotFound tests that dequeueing someone who is not waiting fails
func TestDequeue_NotFound(t *testing.T) {
	q := newQueue(t, shared.FormatSingles)

	_, err := q.Dequeue("ghost")
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

// TestDequeue_Party tests that a party member leaves with the whole party
func TestDequeue_Party(t *testing.T) {
	q := newQueue(t, shared.FormatFlex)
	require.NoError(t, q.EnqueueIndividual(teams("solo", 825), false))
	_, err := q.EnqueueParty([]*registry.Player{teams("a", 825), teams("b", 825), teams("c", 825)}, false)
	require.NoError(t, err)

	removed, err := q.Dequeue("b")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, removed)
	assert.Equal(t, 1, q.Len())
	assert.True(t, q.Contains("solo"))
}

// endregion
