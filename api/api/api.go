/* api.go
 * This file contains the public methods for interacting with the matchmaking engine. Front ends should only call
 * the methods in this package, not the registry, queue and match packages directly. Every method that touches more
 * than one component holds the API mutex for its whole duration
 * Authors: Ahasuerus
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"ravens-nest/api/match"
	"ravens-nest/api/queue"
	"ravens-nest/api/registry"
	"ravens-nest/api/shared"
	"ravens-nest/api/store"

	"github.com/go-co-op/gocron/v2"
	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
)

// API provides methods for interacting with the matchmaking data layer
type API struct {
	Store store.Interface

	mutex     deadlock.Mutex
	settings  Settings
	players   *registry.Players
	teams     *registry.Teams
	matches   *match.Log
	builder   *match.Builder
	queues    map[shared.Format]*queue.Queue
	scheduler gocron.Scheduler
}

// NewAPI creates a new API instance with empty registries and one queue per format
// Preconditions: Receives the store to persist to (may be nil to run without persistence) and the settings
// Postconditions: Returns the API, or an error if a format has no map pool
func NewAPI(s store.Interface, settings Settings) (*API, error) {
	for _, format := range shared.Formats {
		if len(settings.Pools[format]) == 0 {
			return nil, fmt.Errorf("%w: no approved maps for %s", shared.ErrInvalidFormat, format)
		}
	}

	a := &API{
		Store:    s,
		settings: settings,
		players:  registry.NewPlayers(),
		teams:    registry.NewTeams(),
		matches:  match.NewLog(),
		builder:  match.NewBuilder(settings.Pools),
	}
	if err := a.resetQueues(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *API) resetQueues() error {
	queues := make(map[shared.Format]*queue.Queue, len(shared.Formats))
	for _, format := range shared.Formats {
		q, err := queue.New(format, a.builder)
		if err != nil {
			return err
		}
		queues[format] = q
	}
	a.queues = queues
	return nil
}

// queueFor resolves a format name to its queue. Callers hold the API mutex.
func (a *API) queueFor(format string) (*queue.Queue, error) {
	f, err := shared.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return a.queues[f], nil
}

// region Registry

// OnboardPlayer registers a new player at the starting rating
// Preconditions: Receives the player's external id (may be empty), unique name and optional team affiliation
// Postconditions: Returns the new player's stats, or an error wrapping ErrDuplicateKey
func (a *API) OnboardPlayer(id string, name string, team string) (PlayerStats, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if name == "" {
		return PlayerStats{}, fmt.Errorf("player name cannot be empty")
	}
	if id != "" {
		if existing, err := a.players.GetByID(id); err == nil {
			return PlayerStats{}, fmt.Errorf("%w: id %s is already onboarded as %s", shared.ErrDuplicateKey, id, existing.Name)
		}
	}

	p := registry.NewPlayer(id, name, team)
	if err := a.players.Add(p); err != nil {
		return PlayerStats{}, err
	}
	log.Info().Str("player", name).Msg("player onboarded")
	return playerStats(p), nil
}

// OnboardPlayers registers several players without external ids. Duplicates are skipped and reported.
func (a *API) OnboardPlayers(names []string) []error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	players := make([]*registry.Player, 0, len(names))
	for _, name := range names {
		players = append(players, registry.NewPlayer("", name, ""))
	}
	return a.players.AddMany(players)
}

// OnboardTeam registers a team of three onboarded players and sets their affiliation
// Preconditions: Receives a unique team name and three distinct onboarded player names not on another registered team
// Postconditions: Returns the team, or an error wrapping ErrNotFound, ErrDuplicateKey or ErrInvalidSideComposition
func (a *API) OnboardTeam(name string, members []string) (TeamStats, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	roster := make([]*registry.Player, 0, len(members))
	for _, member := range members {
		p, err := a.players.Get(member)
		if err != nil {
			return TeamStats{}, err
		}
		roster = append(roster, p)
	}

	for _, p := range roster {
		for _, existing := range a.teams.All() {
			if existing.HasMember(p.Name) {
				return TeamStats{}, fmt.Errorf("%w: %s is already on team %s", shared.ErrInvalidSideComposition, p.Name, existing.Name)
			}
		}
	}

	t, err := registry.NewTeam(name, roster)
	if err != nil {
		return TeamStats{}, err
	}
	if err := a.teams.Add(t); err != nil {
		return TeamStats{}, err
	}
	for _, p := range roster {
		p.Team = name
	}
	log.Info().Str("team", name).Strs("members", members).Msg("team onboarded")
	return teamStats(t), nil
}

// RemovePlayer deletes a player and drops their waiting queue entries. Players on a registered team cannot be
// removed until the team is, and players in a logged match cannot be removed until the match is cancelled.
// Postconditions: The player is gone, or an error wrapping ErrNotFound, ErrInvalidSideComposition or
// ErrParticipantInMatch is returned and nothing changes
func (a *API) RemovePlayer(name string) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.removePlayer(name)
}

// RemovePlayers deletes several players. A player that cannot be removed is skipped and its error returned.
func (a *API) RemovePlayers(names []string) []error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	var errs []error
	for _, name := range names {
		if err := a.removePlayer(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (a *API) removePlayer(name string) error {
	if _, err := a.players.Get(name); err != nil {
		return err
	}
	for _, t := range a.teams.All() {
		if t.HasMember(name) {
			return fmt.Errorf("%w: %s is on team %s, remove the team first", shared.ErrInvalidSideComposition, name, t.Name)
		}
	}
	if id, ok := a.loggedMatchOf(name, false); ok {
		return fmt.Errorf("%w: %s is in match %d, cancel it first", shared.ErrParticipantInMatch, name, id)
	}

	for _, format := range []shared.Format{shared.FormatSingles, shared.FormatFlex} {
		if _, err := a.queues[format].Dequeue(name); err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
	}
	_, err := a.players.Remove(name)
	return err
}

// RemoveTeam deletes a team, drops its waiting queue entry and clears the members' affiliation. Teams in a logged
// match cannot be removed until the match is cancelled.
func (a *API) RemoveTeam(name string) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if _, err := a.teams.Get(name); err != nil {
		return err
	}
	if id, ok := a.loggedMatchOf(name, true); ok {
		return fmt.Errorf("%w: team %s is in match %d, cancel it first", shared.ErrParticipantInMatch, name, id)
	}

	t, err := a.teams.Remove(name)
	if err != nil {
		return err
	}
	if _, err := a.queues[shared.FormatRegistered].Dequeue(name); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	for _, member := range t.Roster {
		if member.Team == name {
			member.Team = ""
		}
	}
	return nil
}

// loggedMatchOf returns the id of the first logged match with name on a side. team selects registered team sides,
// otherwise player sides are searched.
func (a *API) loggedMatchOf(name string, team bool) (uint64, bool) {
	for _, m := range a.matches.All() {
		for _, side := range []match.Side{m.Alpha, m.Beta} {
			if side == nil {
				continue
			}
			if _, registered := side.(match.Registered); registered != team {
				continue
			}
			if slices.Contains(side.Names(), name) {
				return m.ID, true
			}
		}
	}
	return 0, false
}

// GetPlayer returns a player's stats by name
func (a *API) GetPlayer(name string) (PlayerStats, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	p, err := a.players.Get(name)
	if err != nil {
		return PlayerStats{}, err
	}
	return playerStats(p), nil
}

// GetPlayerByID returns a player's stats by external id
func (a *API) GetPlayerByID(id string) (PlayerStats, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	p, err := a.players.GetByID(id)
	if err != nil {
		return PlayerStats{}, err
	}
	return playerStats(p), nil
}

// GetTeam returns a registered team's stats by name
func (a *API) GetTeam(name string) (TeamStats, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	t, err := a.teams.Get(name)
	if err != nil {
		return TeamStats{}, err
	}
	return teamStats(t), nil
}

// Suggest returns registered player and team names close to name, best first
func (a *API) Suggest(name string, limit int) []string {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	suggestions := append(a.players.Suggest(name, limit), a.teams.Suggest(name, limit)...)
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// Leaderboard returns the top n of a format, by singles rating for 1v1, teams rating for 3v3 flex and team rating
// for 3v3 reg. A negative n returns everyone.
func (a *API) Leaderboard(format string, n int) ([]LeaderboardEntry, error) {
	f, err := shared.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	var entries []LeaderboardEntry
	if f == shared.FormatRegistered {
		for i, t := range a.teams.Top(n) {
			entries = append(entries, LeaderboardEntry{
				Position: i + 1, Name: t.Name, Rating: t.Rating, Rank: t.Rank.String(), Wins: t.Wins, Losses: t.Losses,
			})
		}
		return entries, nil
	}
	for i, p := range a.players.Top(n, f) {
		wins, losses := p.Record(f)
		entries = append(entries, LeaderboardEntry{
			Position: i + 1, Name: p.Name, Rating: p.Rating(f), Rank: p.Rank(f).String(), Wins: wins, Losses: losses,
		})
	}
	return entries, nil
}

// endregion

// region Queues

// QueuePlayer queues a player for 1v1 or 3v3 flex and attempts a pairing
// Preconditions: Receives the format, an onboarded player's name and the rank restriction flag
// Postconditions: Returns the pending match if one was formed. The player stays queued when none was
func (a *API) QueuePlayer(format string, name string, restricted bool) (opt.Option[match.Record], error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	q, err := a.queueFor(format)
	if err != nil {
		return opt.None[match.Record](), err
	}

	p, err := a.players.Get(name)
	if err != nil {
		return opt.None[match.Record](), err
	}
	if err := q.EnqueueIndividual(p, restricted); err != nil {
		return opt.None[match.Record](), err
	}
	return a.pair(q)
}

// QueueParty queues three players together for 3v3 flex and attempts a pairing
// Postconditions: Returns the party id and the pending match if one was formed
func (a *API) QueueParty(names []string, restricted bool) (string, opt.Option[match.Record], error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	members := make([]*registry.Player, 0, len(names))
	for _, name := range names {
		p, err := a.players.Get(name)
		if err != nil {
			return "", opt.None[match.Record](), err
		}
		members = append(members, p)
	}

	q := a.queues[shared.FormatFlex]
	partyID, err := q.EnqueueParty(members, restricted)
	if err != nil {
		return "", opt.None[match.Record](), err
	}
	found, err := a.pair(q)
	return partyID, found, err
}

// QueueTeam queues a registered team for 3v3 reg and attempts a pairing
func (a *API) QueueTeam(name string, restricted bool) (opt.Option[match.Record], error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	t, err := a.teams.Get(name)
	if err != nil {
		return opt.None[match.Record](), err
	}
	q := a.queues[shared.FormatRegistered]
	if err := q.EnqueueTeam(t, restricted); err != nil {
		return opt.None[match.Record](), err
	}
	return a.pair(q)
}

// Dequeue removes a player or team from a format's queue and returns every name removed
func (a *API) Dequeue(format string, name string) ([]string, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	q, err := a.queueFor(format)
	if err != nil {
		return nil, err
	}
	return q.Dequeue(name)
}

// RequestPairing runs the pairing engine on a format's queue without enqueueing anyone
func (a *API) RequestPairing(format string) (opt.Option[match.Record], error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	q, err := a.queueFor(format)
	if err != nil {
		return opt.None[match.Record](), err
	}
	return a.pair(q)
}

// pair runs FindMatch and logs the match it forms. Callers hold the API mutex.
func (a *API) pair(q *queue.Queue) (opt.Option[match.Record], error) {
	found, err := q.FindMatch(a.settings.BaseEloDiff, a.settings.MaxEloDiff)
	if err != nil {
		return opt.None[match.Record](), fmt.Errorf("pairing %s failed: %w", q.Format(), err)
	}
	if opt.IsNone(found) {
		return opt.None[match.Record](), nil
	}

	m := found.Value
	if err := a.matches.Add(m); err != nil {
		return opt.None[match.Record](), err
	}
	return opt.Some(m.ToRecord()), nil
}

// QueueEntries returns the waiting entries of a format's queue in queue order
func (a *API) QueueEntries(format string) ([]QueueEntry, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	q, err := a.queueFor(format)
	if err != nil {
		return nil, err
	}

	entries := []QueueEntry{}
	for _, e := range q.Entries() {
		entries = append(entries, QueueEntry{
			Name:           e.Name(),
			Rating:         e.Rating(q.Format()),
			Rank:           e.Rank(q.Format()).String(),
			RankRestricted: e.RankRestricted,
			PartyID:        e.PartyID,
			QueuedAt:       e.QueuedAt,
		})
	}
	return entries, nil
}

// endregion

// region Matches

// CreateTeamMatch sets up a 3v3 reg match between two named teams directly, taking them out of the queue
// Postconditions: Returns the pending match, or an error wrapping ErrNotFound or ErrInvalidSideComposition
func (a *API) CreateTeamMatch(alpha string, beta string) (match.Record, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	ta, err := a.teams.Get(alpha)
	if err != nil {
		return match.Record{}, err
	}
	tb, err := a.teams.Get(beta)
	if err != nil {
		return match.Record{}, err
	}

	m, err := a.builder.Build(shared.FormatRegistered, match.Registered{Team: ta}, match.Registered{Team: tb})
	if err != nil {
		return match.Record{}, err
	}
	if err := a.matches.Add(m); err != nil {
		return match.Record{}, err
	}

	q := a.queues[shared.FormatRegistered]
	for _, name := range []string{alpha, beta} {
		if _, err := q.Dequeue(name); err != nil && !errors.Is(err, shared.ErrNotFound) {
			return match.Record{}, err
		}
	}
	log.Info().Uint64("match", m.ID).Str("alpha", alpha).Str("beta", beta).Msg("team match created")
	return m.ToRecord(), nil
}

// ReportResult completes a match with the side containing winner as the winning side
// Preconditions: Receives the match id and a player or team name on the winning side
// Postconditions: Returns the completed match, or an error wrapping ErrNotFound, ErrInvalidSideComposition or
// ErrAlreadyCompleted with nothing changed
func (a *API) ReportResult(id uint64, winner string) (match.Record, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	found := a.matches.Get(id)
	if opt.IsNone(found) {
		return match.Record{}, fmt.Errorf("%w: match %d", shared.ErrNotFound, id)
	}
	m := found.Value

	winning, losing, ok := m.SidesOf(winner)
	if !ok {
		return match.Record{}, fmt.Errorf("%w: %s is not playing in match %d", shared.ErrInvalidSideComposition, winner, id)
	}
	if err := m.ReportResult(winning, losing, a.settings.KFactor); err != nil {
		return match.Record{}, err
	}
	return m.ToRecord(), nil
}

// CancelMatch removes a match from the log whatever its status. Ratings already applied are kept.
func (a *API) CancelMatch(id uint64) (match.Record, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	m, err := a.matches.Remove(id)
	if err != nil {
		return match.Record{}, err
	}
	log.Info().Uint64("match", id).Msg("match cancelled")
	return m.ToRecord(), nil
}

// GetMatch returns a logged match by id
func (a *API) GetMatch(id uint64) (match.Record, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	found := a.matches.Get(id)
	if opt.IsNone(found) {
		return match.Record{}, fmt.Errorf("%w: match %d", shared.ErrNotFound, id)
	}
	return found.Value.ToRecord(), nil
}

// Matches returns every logged match in creation order
func (a *API) Matches() []match.Record {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.matches.Records()
}

// endregion

// region Persistence

// Save writes players, teams and the match log to the store
func (a *API) Save(ctx context.Context) error {
	if a.Store == nil {
		return nil
	}

	a.mutex.Lock()
	players := a.players.Records()
	teams := a.teams.Records()
	matches := a.matches.Records()
	a.mutex.Unlock()

	if err := a.Store.SavePlayers(ctx, players); err != nil {
		return err
	}
	if err := a.Store.SaveTeams(ctx, teams); err != nil {
		return err
	}
	if err := a.Store.SaveMatches(ctx, matches); err != nil {
		return err
	}
	log.Debug().Int("players", len(players)).Int("teams", len(teams)).Int("matches", len(matches)).Msg("saved")
	return nil
}

// Load replaces players, teams and the match log with the stored ones and empties every queue
// Postconditions: On error the current state is kept
func (a *API) Load(ctx context.Context) error {
	if a.Store == nil {
		return nil
	}

	playerRecords, err := a.Store.LoadPlayers(ctx)
	if err != nil {
		return err
	}
	teamRecords, err := a.Store.LoadTeams(ctx)
	if err != nil {
		return err
	}
	matchRecords, err := a.Store.LoadMatches(ctx)
	if err != nil {
		return err
	}

	players := registry.NewPlayers()
	if err := players.Import(playerRecords); err != nil {
		return fmt.Errorf("importing players: %w", err)
	}
	teams := registry.NewTeams()
	if err := teams.Import(teamRecords, players); err != nil {
		return fmt.Errorf("importing teams: %w", err)
	}
	matches := match.NewLog()
	skipped, err := matches.Import(matchRecords, players, teams, a.builder.IDs)
	if err != nil {
		return fmt.Errorf("importing matches: %w", err)
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.players, a.teams, a.matches = players, teams, matches
	if err := a.resetQueues(); err != nil {
		return err
	}
	log.Info().
		Int("players", players.Len()).
		Int("teams", teams.Len()).
		Int("matches", matches.Len()).
		Int("skipped", skipped).
		Msg("loaded")
	return nil
}

// StartAutosave saves to the store every interval until StopAutosave is called or ctx is done
func (a *API) StartAutosave(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("autosave interval must be positive, got %s", interval)
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := a.Save(ctx); err != nil {
				log.Error().Err(err).Msg("autosave failed")
			}
		}),
	)
	if err != nil {
		return err
	}
	sched.Start()

	a.mutex.Lock()
	a.scheduler = sched
	a.mutex.Unlock()

	go func() {
		<-ctx.Done()
		_ = a.StopAutosave()
	}()
	return nil
}

// StopAutosave stops the autosave job if one is running
func (a *API) StopAutosave() error {
	a.mutex.Lock()
	sched := a.scheduler
	a.scheduler = nil
	a.mutex.Unlock()

	if sched == nil {
		return nil
	}
	return sched.Shutdown()
}

// endregion

func playerStats(p *registry.Player) PlayerStats {
	return PlayerStats{
		ID:            p.ID,
		Name:          p.Name,
		Team:          p.Team,
		SinglesRating: p.SinglesRating,
		SinglesRank:   p.SinglesRank.String(),
		SinglesWins:   p.SinglesWins,
		SinglesLosses: p.SinglesLosses,
		SinglesRatio:  p.WinLossRatio(shared.FormatSingles),
		TeamsRating:   p.TeamsRating,
		TeamsRank:     p.TeamsRank.String(),
		TeamsWins:     p.TeamsWins,
		TeamsLosses:   p.TeamsLosses,
		TeamsRatio:    p.WinLossRatio(shared.FormatFlex),
	}
}

func teamStats(t *registry.Team) TeamStats {
	return TeamStats{
		Name:    t.Name,
		Members: t.MemberNames(),
		Rating:  t.Rating,
		Rank:    t.Rank.String(),
		Wins:    t.Wins,
		Losses:  t.Losses,
		Ratio:   t.WinLossRatio(),
	}
}
